// Package logging configures the global zerolog logger used across the
// orchestrator, executor, and event bus.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger is the global logger instance. Init must be called before any
// package derives a child logger from it.
var Logger zerolog.Logger

// Level names a logging verbosity.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config controls Init.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init sets up the global Logger. JSON output suits unattended/CI runs;
// console output suits an interactive terminal. JSONOutput forces JSON
// regardless of the destination; otherwise Init auto-detects by checking
// whether Output is a terminal, so piping ralph's stderr into a log
// aggregator doesn't fill it with ANSI escape codes.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	useJSON := cfg.JSONOutput || !isTerminal(output)

	if useJSON {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// WithHat returns a child logger tagged with the dispatched hat's ID, so
// every log line an iteration produces can be attributed to its persona.
func WithHat(hatID string) zerolog.Logger {
	return Logger.With().Str("hat", hatID).Logger()
}

// WithIteration returns a child logger tagged with the iteration number.
func WithIteration(iteration int) zerolog.Logger {
	return Logger.With().Int("iteration", iteration).Logger()
}

func Info(msg string)  { Logger.Info().Msg(msg) }
func Debug(msg string) { Logger.Debug().Msg(msg) }
func Warn(msg string)  { Logger.Warn().Msg(msg) }
func Error(msg string) { Logger.Error().Msg(msg) }

func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) { Logger.Fatal().Msg(msg) }
