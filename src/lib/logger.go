package lib

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

// GetLogger builds the process logger once. Level and format come from
// LOG_LEVEL and LOG_FORMAT; defaults are info + JSON on stdout.
func GetLogger() zerolog.Logger {
	if logger != nil {
		return *logger
	}
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = parsed
	}
	output := zerolog.New(os.Stdout)
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		output = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := output.Level(level).With().Timestamp().Str("app", "ota").Logger()
	logger = &base
	return base
}
