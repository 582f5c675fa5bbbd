package server

import (
	"net/http"
	"sync"

	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// persistingTokenSource writes refreshed tokens back to the user store so the
// next request starts from the newest access token.
type persistingTokenSource struct {
	mu    sync.Mutex
	base  oauth2.TokenSource
	user  users.User
	repo  users.UserRepo
	saved string
}

func (s *Server) userTokenSource(r *http.Request, user *users.User) oauth2.TokenSource {
	return &persistingTokenSource{
		base:  s.provider.TokenSource(r.Context(), user.Token),
		user:  *user,
		repo:  s.users,
		saved: user.Token.AccessToken,
	}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken == p.saved {
		return token, nil
	}

	updated := p.user
	updated.Token = token
	if token.RefreshToken == "" && p.user.Token != nil {
		kept := *token
		kept.RefreshToken = p.user.Token.RefreshToken
		updated.Token = &kept
	}
	if err := p.repo.Upsert(&updated); err != nil {
		// The refreshed token still serves this request.
		log.Warn().Err(err).Str("user", p.user.ID).Msg("[persistingTokenSource] storing refreshed token")
		return token, nil
	}
	p.saved = token.AccessToken
	return token, nil
}
