package fakeuserrepo_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/jrsteele09/go-expenses-tracker/users"
	fakeuserrepo "github.com/jrsteele09/go-expenses-tracker/users/repofake"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFakeUserRepo(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		repo := fakeuserrepo.NewFakeUserRepo()
		_, err := repo.Get("missing")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		repo := fakeuserrepo.NewFakeUserRepo()
		require.Error(t, repo.Upsert(&users.User{}))
	})

	t.Run("repeat login replaces token and keeps created time", func(t *testing.T) {
		repo := fakeuserrepo.NewFakeUserRepo()
		first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		require.NoError(t, repo.Upsert(&users.User{ID: "42", CreatedAt: first, Token: &oauth2.Token{AccessToken: "old"}}))
		require.NoError(t, repo.Upsert(&users.User{ID: "42", CreatedAt: first.Add(time.Hour), Token: &oauth2.Token{AccessToken: "new"}}))

		u, err := repo.Get("42")
		require.NoError(t, err)
		require.Equal(t, "new", u.Token.AccessToken)
		require.Equal(t, first, u.CreatedAt)
		require.Equal(t, 1, repo.Len())
	})

	t.Run("returned user is a copy", func(t *testing.T) {
		repo := fakeuserrepo.NewFakeUserRepo()
		require.NoError(t, repo.Upsert(&users.User{ID: "7", Name: "A"}))

		u, err := repo.Get("7")
		require.NoError(t, err)
		u.Name = "B"

		again, err := repo.Get("7")
		require.NoError(t, err)
		require.Equal(t, "A", again.Name)
	})
}
