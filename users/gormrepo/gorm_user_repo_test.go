package gormrepo

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRecordConversion(t *testing.T) {
	expiry := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("with token", func(t *testing.T) {
		u := &users.User{
			ID:    "1234",
			Email: "jan@example.com",
			Name:  "Jan",
			Token: &oauth2.Token{AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", Expiry: expiry},
		}

		rec := toRecord(u)
		require.Equal(t, "at", rec.AccessToken)
		require.Equal(t, "rt", rec.RefreshToken)
		require.Equal(t, expiry, rec.TokenExpiry)

		back := fromRecord(rec)
		require.Equal(t, u.ID, back.ID)
		require.Equal(t, u.Email, back.Email)
		require.NotNil(t, back.Token)
		require.Equal(t, "at", back.Token.AccessToken)
		require.Equal(t, "rt", back.Token.RefreshToken)
	})

	t.Run("without token", func(t *testing.T) {
		back := fromRecord(toRecord(&users.User{ID: "1"}))
		require.Nil(t, back.Token)
		require.False(t, back.HasToken())
	})

	t.Run("table name", func(t *testing.T) {
		require.Equal(t, "users", userRecord{}.TableName())
	})
}
