package util

import (
	"io"
	"os"
	"strings"

	"github.com/carlmjohnson/truthy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	LogLevel zerolog.Level
	Logger   = log.Logger
	writer   io.Writer

	DevMode = truthy.Value(os.Getenv("OSMIUM_DEV_MODE"))
)

func init() {
	// https://github.com/rs/zerolog#leveled-logging
	logLevel, err := zerolog.ParseLevel(os.Getenv("OSMIUM_LOG_LEVEL"))
	if err != nil {
		// If the log level is not set or invalid, default to WarnLevel
		logLevel = zerolog.WarnLevel
	}
	LogLevel = logLevel

	// Logs go to stderr so piping generated zone data to stdout stays clean
	format := os.Getenv("OSMIUM_LOG_FORMAT")
	switch strings.ToLower(format) {
	case "json":
		writer = os.Stderr
	case "pretty":
		writer = zerolog.ConsoleWriter{Out: os.Stderr}
	default:
		writer = os.Stderr
	}

	zerolog.SetGlobalLevel(logLevel)
	loggerCtx := zerolog.New(writer).With().Timestamp()
	if DevMode {
		loggerCtx = loggerCtx.Caller()
	}
	Logger = loggerCtx.Logger().Level(logLevel)
	Logger.Debug().Msgf("Logger initialized with level %s ", logLevel.String())
}
