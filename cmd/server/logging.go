package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures zerolog output and the global level from ENV and LOGLEVEL.
func setupLogging(production bool) {
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "":
		// Default based on environment
		if production {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	case "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
			return
		}
		zerolog.SetGlobalLevel(level)
	}
}
