package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-expenses-tracker/internal/config"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	for _, v := range []string{"ENV", "PORT", "SESSION_MAX_AGE", "SPREADSHEET_NAME", "PERIOD_FORMAT", "OIDC_ISSUER", "ALLOWED_ORIGINS", "BASE_URL"} {
		t.Setenv(v, "")
	}
	c := config.New()

	require.Equal(t, "DEV", c.GetEnv())
	require.False(t, c.IsProduction())
	require.Equal(t, 30*24*time.Hour, c.GetMaxSessionAge())
	require.Equal(t, 10*time.Minute, c.GetAuthStateTimeout())
	require.Equal(t, "Expenses tracker", c.GetSpreadsheetName())
	require.Equal(t, "2006-01", c.GetPeriodFormat())
	require.Equal(t, "https://accounts.google.com", c.GetIssuer())
	require.Equal(t, "http://localhost:8080", c.GetBaseURL())
	require.Empty(t, c.GetAllowedOrigins())
	require.Contains(t, c.GetScopes(), "openid")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("SESSION_MAX_AGE", "2h")
	t.Setenv("SPREADSHEET_NAME", "Budget")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com ,")
	t.Setenv("BASE_URL", "https://expenses.example.com/")
	c := config.New()

	require.True(t, c.IsProduction())
	require.Equal(t, 2*time.Hour, c.GetMaxSessionAge())
	require.Equal(t, "Budget", c.GetSpreadsheetName())
	require.Equal(t, "https://expenses.example.com", c.GetBaseURL())

	origins := c.GetAllowedOrigins()
	require.Len(t, origins, 2)
	require.True(t, origins.IsAllowedOrigin("http://localhost:5173"))
	require.True(t, origins.IsAllowedOrigin("https://app.example.com"))
	require.False(t, origins.IsAllowedOrigin(""))

	t.Setenv("SESSION_MAX_AGE", "nonsense")
	require.Equal(t, 30*24*time.Hour, c.GetMaxSessionAge())
}
