package authflowrepo

import "time"

// AuthFlowState is kept between the redirect to the consent screen and the callback.
type AuthFlowState struct {
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
}
