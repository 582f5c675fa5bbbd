package authflowrepo

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-expenses-tracker/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	repo := NewInMemoryRepo(10 * time.Minute)
	repo.now = func() time.Time { return now }

	t.Run("store and consume", func(t *testing.T) {
		require.NoError(t, repo.Upsert("abc", &AuthFlowState{CreatedAt: now}))

		got, err := repo.Get("abc")
		require.NoError(t, err)
		require.Equal(t, now, got.CreatedAt)

		require.NoError(t, repo.Delete("abc"))
		_, err = repo.Get("abc")
		require.ErrorIs(t, err, apperrors.ErrInvalidState)
	})

	t.Run("expired state is unknown and pruned", func(t *testing.T) {
		require.NoError(t, repo.Upsert("old", &AuthFlowState{CreatedAt: now.Add(-11 * time.Minute)}))
		_, err := repo.Get("old")
		require.ErrorIs(t, err, apperrors.ErrInvalidState)

		require.NoError(t, repo.Upsert("new", &AuthFlowState{CreatedAt: now}))
		require.Equal(t, 1, repo.Len())
	})

	t.Run("empty arguments", func(t *testing.T) {
		require.Error(t, repo.Upsert("", &AuthFlowState{}))
		require.Error(t, repo.Upsert("x", nil))
		_, err := repo.Get("")
		require.ErrorIs(t, err, apperrors.ErrInvalidState)
		require.Error(t, repo.Delete(""))
	})
}
