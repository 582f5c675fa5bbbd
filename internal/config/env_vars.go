package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	portEnvVar        = "PORT"
	appNameVar        = "APP_NAME"
	baseURLVar        = "BASE_URL"
	envVar            = "ENV"
	devRedirectVar    = "DEV_REDIRECT"
	databaseURLEnvVar = "DATABASE_URL"

	envProduction = "production"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment are not overridden.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Expenses")
}

// GetBaseURL returns the public base URL of the server (e.g., "https://expenses.example.com").
// The OAuth callback URL is derived from it.
func (EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(GetEnv(baseURLVar, "http://localhost:8080"), "/")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

func (e EnvVars) IsProduction() bool {
	return strings.EqualFold(e.GetEnv(), envProduction)
}

// GetDevRedirect returns where a successful login lands outside production,
// typically a frontend dev server. Empty means the application root.
func (EnvVars) GetDevRedirect() string {
	return GetEnv(devRedirectVar, "")
}

// GetDatabaseURL returns the postgres DSN for the user store. Empty selects the in-memory store.
func (EnvVars) GetDatabaseURL() string {
	return GetEnv(databaseURLEnvVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
