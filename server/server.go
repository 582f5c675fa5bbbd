package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/auth"
	"github.com/jrsteele09/go-expenses-tracker/internal/config"
	"github.com/jrsteele09/go-expenses-tracker/server/authflowrepo"
	"github.com/jrsteele09/go-expenses-tracker/server/session"
	"github.com/jrsteele09/go-expenses-tracker/sheets"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	handler   http.HandlerFunc
	routes    []string
	config    config.Config
	provider  auth.Provider
	users     users.UserRepo
	authState authflowrepo.Repo
	sessions  *session.Codec
	sheets    *sheets.Factory
	now       func() time.Time
}

func New(config config.Config, provider auth.Provider, userRepo users.UserRepo, authStateRepo authflowrepo.Repo, factory *sheets.Factory) (*Server, error) {
	if provider == nil || userRepo == nil || authStateRepo == nil || factory == nil {
		return nil, errors.New("[Server New] provider, user repo, auth state repo and sheets factory are required")
	}

	codec, err := newSessionCodec(config)
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		provider:  provider,
		users:     userRepo,
		authState: authStateRepo,
		sessions:  codec,
		sheets:    factory,
		now:       time.Now,
	}

	s.initRoutes()
	s.logRoutes()

	s.handler = ChainMiddleware(s.mux.ServeHTTP,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.FrameSecurityMiddleware,
		s.CorsMiddleware,
		s.SessionGateMiddleware,
	)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// newSessionCodec refuses to run production without SESSION_SECRET. Elsewhere a
// random secret is generated, so sessions end with the process.
func newSessionCodec(c config.Config) (*session.Codec, error) {
	secret := c.GetSessionSecret()
	if secret == "" {
		if c.IsProduction() {
			return nil, errors.New("SESSION_SECRET is required in production")
		}
		secret = generateRandomString(32)
		log.Warn().Msg("SESSION_SECRET not set, using a random secret for this process")
	}
	return session.NewCodec(secret, c.GetMaxSessionAge())
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
