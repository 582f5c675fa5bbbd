package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/server/authflowrepo"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
	}
}

// ConsentRedirectHandler starts the provider flow with a fresh single-use state.
func (s *Server) ConsentRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		if err := s.authState.Upsert(state, &authflowrepo.AuthFlowState{CreatedAt: s.now()}); err != nil {
			log.Error().Err(err).Msg("[ConsentRedirectHandler] storing auth state")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}
		s.setStateCookie(w, r, state)
		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}

func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")

		// Check for authorization errors
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, r.FormValue("error_description")), http.StatusBadRequest)
			return
		}

		if state == "" {
			http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
			return
		}
		if !stateMatchesBrowser(r, state) {
			log.Warn().Msg("[OAuthCallbackHandler] state does not match this browser, restarting login")
			s.clearStateCookie(w, r)
			http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
			return
		}
		s.clearStateCookie(w, r)
		if _, err := s.authState.Get(state); err != nil {
			log.Warn().Err(err).Msg("[OAuthCallbackHandler] unknown state, restarting login")
			http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
			return
		}
		// State is single use
		if err := s.authState.Delete(state); err != nil {
			log.Error().Err(err).Msg("[OAuthCallbackHandler] deleting auth state")
		}

		if code == "" {
			http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
			return
		}

		token, err := s.provider.Exchange(r.Context(), code)
		if err != nil {
			if errors.Is(err, errors.ErrTokenExchange) {
				log.Warn().Err(err).Msg("[OAuthCallbackHandler] code exchange failed, restarting login")
				http.Redirect(w, r, RouteAuthGoogle, http.StatusFound)
				return
			}
			log.Error().Err(err).Msg("[OAuthCallbackHandler] exchange")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		user, err := s.upsertLogin(r, token)
		if err != nil {
			log.Error().Err(err).Msg("[OAuthCallbackHandler] storing user")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		value, err := s.sessions.Encode(user.ID)
		if err != nil {
			log.Error().Err(err).Msg("[OAuthCallbackHandler] encoding session")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.setSessionCookie(w, r, value)

		log.Info().Str("user", user.ID).Str("email", user.Email).Msg("user logged in")
		http.Redirect(w, r, s.postLoginRedirect(), http.StatusFound)
	}
}

// upsertLogin stores the profile and the freshly issued token. A repeat login
// replaces the stored token; the previous refresh token is kept only when the
// provider did not issue a new one.
func (s *Server) upsertLogin(r *http.Request, token *oauth2.Token) (*users.User, error) {
	profile, err := s.provider.Profile(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("[Server upsertLogin] profile: %w", err)
	}

	now := s.now()
	user := &users.User{
		ID:        profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Picture:   profile.Picture,
		Token:     token,
		CreatedAt: now,
		LastLogin: now,
	}

	existing, err := s.users.Get(profile.ID)
	switch {
	case err == nil:
		user.CreatedAt = existing.CreatedAt
		if token.RefreshToken == "" && existing.Token != nil {
			refreshed := *token
			refreshed.RefreshToken = existing.Token.RefreshToken
			user.Token = &refreshed
		}
	case !errors.Is(err, errors.ErrUserNotFound):
		return nil, fmt.Errorf("[Server upsertLogin] get user: %w", err)
	}

	if err := s.users.Upsert(user); err != nil {
		return nil, fmt.Errorf("[Server upsertLogin] upsert user: %w", err)
	}
	return user, nil
}

func (s *Server) postLoginRedirect() string {
	if redirect := s.config.GetDevRedirect(); redirect != "" && !s.config.IsProduction() {
		return redirect
	}
	return "/"
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.clearSessionCookie(w, r)
		http.Redirect(w, r, RouteAuthLogin, http.StatusFound)
	}
}
