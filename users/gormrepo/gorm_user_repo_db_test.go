package gormrepo_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/jrsteele09/go-expenses-tracker/users/gormrepo"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepo(t *testing.T) *gormrepo.Repo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "users.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := gormrepo.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepo(t *testing.T) {
	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	relogin := time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)

	t.Run("unknown user", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get("missing")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("insert then get", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Upsert(&users.User{
			ID:        "google-1",
			Email:     "jan@example.com",
			Name:      "Jan",
			Token:     &oauth2.Token{AccessToken: "at-1", RefreshToken: "rt-1", TokenType: "Bearer"},
			CreatedAt: created,
			LastLogin: created,
		}))

		u, err := repo.Get("google-1")
		require.NoError(t, err)
		require.Equal(t, "jan@example.com", u.Email)
		require.True(t, u.HasToken())
		require.Equal(t, "at-1", u.Token.AccessToken)
		require.True(t, created.Equal(u.CreatedAt))
	})

	t.Run("repeat login replaces token and keeps created_at", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Upsert(&users.User{
			ID:        "google-1",
			Email:     "jan@example.com",
			Token:     &oauth2.Token{AccessToken: "at-1", RefreshToken: "rt-1"},
			CreatedAt: created,
			LastLogin: created,
		}))
		require.NoError(t, repo.Upsert(&users.User{
			ID:        "google-1",
			Email:     "jan.k@example.com",
			Token:     &oauth2.Token{AccessToken: "at-2", RefreshToken: "rt-2"},
			CreatedAt: relogin,
			LastLogin: relogin,
		}))

		u, err := repo.Get("google-1")
		require.NoError(t, err)
		require.Equal(t, "at-2", u.Token.AccessToken)
		require.Equal(t, "rt-2", u.Token.RefreshToken)
		require.Equal(t, "jan.k@example.com", u.Email)
		require.True(t, relogin.Equal(u.LastLogin), u.LastLogin)
		require.True(t, created.Equal(u.CreatedAt), u.CreatedAt)
	})

	t.Run("upsert requires an id", func(t *testing.T) {
		repo := newRepo(t)
		require.Error(t, repo.Upsert(&users.User{}))
		require.Error(t, repo.Upsert(nil))
	})
}
