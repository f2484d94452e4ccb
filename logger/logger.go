// Package logger is a thin global wrapper around zerolog.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	logFile *os.File
	logger  zerolog.Logger
)

func init() {
	initLogger()
}

func initLogger() {
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
		NoColor:    logFile != nil,
	}).With().Timestamp().Logger()
}

// SetLevel sets the global level from its name. Unknown names select info.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetOutput sends log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	output = w
	initLogger()
}

// SetOutputFile appends log output to the named file, creating its directory.
func SetOutputFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}

	mu.Lock()
	defer mu.Unlock()

	closeFile()
	logFile = f
	output = f
	initLogger()

	return nil
}

// Discard drops all log output. Used while the terminal belongs to the
// display and no log file was given.
func Discard() {
	SetOutput(io.Discard)
}

// Close closes the log file, if any, and logs to stderr again.
func Close() {
	SetOutput(os.Stderr)
}

func closeFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func get() *zerolog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	return &l
}

// Debugf logs a formatted debug message.
func Debugf(format string, v ...interface{}) {
	get().Debug().Msgf(format, v...)
}

// Info logs an info message.
func Info(msg string) {
	get().Info().Msg(msg)
}

// Infof logs a formatted info message.
func Infof(format string, v ...interface{}) {
	get().Info().Msgf(format, v...)
}

// Warnf logs a formatted warning.
func Warnf(format string, v ...interface{}) {
	get().Warn().Msgf(format, v...)
}

// Error logs msg with err attached.
func Error(msg string, err error) {
	get().Error().Err(err).Msg(msg)
}

// Errorf logs a formatted message with err attached.
func Errorf(format string, err error, v ...interface{}) {
	get().Error().Err(err).Msgf(format, v...)
}
