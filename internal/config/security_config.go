package config

import (
	"time"
)

const (
	sessionSecretVar = "SESSION_SECRET"
	sessionMaxAgeVar = "SESSION_MAX_AGE"
)

type SecurityConfig interface {
	GetSessionSecret() string
	GetMaxSessionAge() time.Duration
	GetAuthStateTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionSecret() string {
	return GetEnv(sessionSecretVar, "")
}

func (Security) GetMaxSessionAge() time.Duration {
	d, err := time.ParseDuration(GetEnv(sessionMaxAgeVar, ""))
	if err != nil || d <= 0 {
		return 30 * 24 * time.Hour
	}
	return d
}

func (Security) GetAuthStateTimeout() time.Duration {
	return 10 * time.Minute
}
