package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-expenses-tracker/auth"
	"github.com/jrsteele09/go-expenses-tracker/expenses"
	"github.com/jrsteele09/go-expenses-tracker/internal/config"
	"github.com/jrsteele09/go-expenses-tracker/server"
	"github.com/jrsteele09/go-expenses-tracker/server/authflowrepo"
	"github.com/jrsteele09/go-expenses-tracker/sheets"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/jrsteele09/go-expenses-tracker/users/gormrepo"
	fakeuserrepo "github.com/jrsteele09/go-expenses-tracker/users/repofake"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := config.LoadDotEnv()
	c := config.New()
	setupLogging(c.IsProduction())
	if envErr != nil {
		log.Warn().Err(envErr).Msg("Failed to load .env file; proceeding with existing environment variables.")
	}

	displayAppname(c.GetAppName())

	handler, closeStore, err := newHandler(context.Background(), c)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise server")
	}
	defer closeStore()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	for {
		if err := run(c.GetPort(), handler, stop); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

// run serves handler on addr until a signal arrives on stop or the listener fails.
func run(addr string, handler http.Handler, stop <-chan os.Signal) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(server) }()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	return shutdown(server)
}

// newHandler wires the identity provider, the stores and the sheets factory into
// the server. The returned func releases the user store.
func newHandler(ctx context.Context, c config.Config) (*server.Server, func(), error) {
	provider, err := auth.NewGoogleProvider(ctx,
		c.GetIssuer(),
		c.GetClientID(),
		c.GetClientSecret(),
		c.GetBaseURL()+server.RouteAuthCallback,
		c.GetScopes(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("identity provider: %w", err)
	}

	factory, err := sheets.NewFactory(c.GetSpreadsheetName(), expenses.Schema(), sheets.NewGoogleClientFunc())
	if err != nil {
		return nil, nil, fmt.Errorf("sheets factory: %w", err)
	}

	userRepo, closeStore, err := newUserRepo(c)
	if err != nil {
		return nil, nil, err
	}

	s, err := server.New(c, provider, userRepo, authflowrepo.NewInMemoryRepo(c.GetAuthStateTimeout()), factory)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return s, closeStore, nil
}

func newUserRepo(c config.Config) (users.UserRepo, func(), error) {
	dsn := c.GetDatabaseURL()
	if dsn == "" {
		log.Warn().Msg("DATABASE_URL not set, sessions are kept in memory")
		return fakeuserrepo.NewFakeUserRepo(), func() {}, nil
	}
	repo, err := gormrepo.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("user store: %w", err)
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close user store")
		}
	}, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
