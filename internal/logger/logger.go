package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var once sync.Once
var Log zerolog.Logger

// stdout is reserved for the simulation result, so log lines go to stderr.
var output io.Writer = os.Stderr

func configureLogger() {
	customTimeFormat := "2006-01-02T15:04:05.000Z07:00"
	zerolog.TimeFieldFormat = customTimeFormat

	consoleOutput := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: customTimeFormat,
	}

	Log = zerolog.New(consoleOutput).With().Timestamp().Logger()
}

func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configureLogger()
	})
	zerolog.SetGlobalLevel(level)
	return &Log
}

func GetLogger() *zerolog.Logger {
	once.Do(func() {
		configureLogger()
	})
	return &Log
}

// ForRun returns a child logger tagged with the run identifier and policy name.
func ForRun(runID string, policy string) zerolog.Logger {
	return GetLogger().With().Str("run", runID).Str("policy", policy).Logger()
}
