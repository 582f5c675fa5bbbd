package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
)

// SessionGateMiddleware redirects every request outside /auth to the login route
// unless the session cookie names a known user.
func (s *Server) SessionGateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAuthPath(r.URL.Path) {
			next(w, r)
			return
		}

		user, err := s.sessionUser(r)
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("[SessionGateMiddleware] no session")
			if !errors.Is(err, errors.ErrSessionNotFound) {
				s.clearSessionCookie(w, r)
			}
			http.Redirect(w, r, RouteAuthLogin, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) sessionUser(r *http.Request) (*users.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errors.ErrSessionNotFound
	}

	userID, err := s.sessions.Decode(cookie.Value)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if !user.HasToken() {
		return nil, errors.Wrapf(errors.ErrInvalidSession, "user %s has no stored token", userID)
	}
	return user, nil
}

func isAuthPath(path string) bool {
	return path == RouteAuthPrefix || strings.HasPrefix(path, RouteAuthPrefix+"/")
}

// userFromContext returns the user placed in the request context by the session gate.
func userFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok && user != nil
}
