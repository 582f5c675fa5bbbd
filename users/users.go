package users

import (
	"time"

	"golang.org/x/oauth2"
)

// User is the record kept for a signed-in account, keyed by the identity
// provider's subject id.
type User struct {
	ID        string        `json:"id"`                // Provider-assigned user id (OIDC "sub")
	Email     string        `json:"email,omitempty"`   // Email from the provider profile
	Name      string        `json:"name,omitempty"`    // Display name
	Picture   string        `json:"picture,omitempty"` // Avatar URL
	Token     *oauth2.Token `json:"-"`                 // Provider token used for spreadsheet calls - never serialize
	CreatedAt time.Time     `json:"created_at"`        // First login
	LastLogin time.Time     `json:"last_login"`        // Most recent login
}

// HasToken reports whether the user carries a usable access token.
func (u *User) HasToken() bool {
	return u != nil && u.Token != nil && u.Token.AccessToken != ""
}
