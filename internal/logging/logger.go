// Package logging builds the zerolog loggers used by the bisect command and
// adapts them to the solver's Observer hook.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/bisect/internal/bisect"
)

const DefaultLevel = zerolog.WarnLevel

// ParseLevel accepts zerolog level names; an empty string means
// DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DefaultLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	if lvl == zerolog.NoLevel {
		return DefaultLevel, nil
	}
	return lvl, nil
}

// New returns a human readable logger writing to w. An unparsable level
// falls back to DefaultLevel.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, _ := ParseLevel(level)
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// NewJSON returns a structured logger, used when output is machine read.
func NewJSON(w io.Writer, level string) zerolog.Logger {
	lvl, _ := ParseLevel(level)
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// StepLogger logs every bisection step at debug level.
type StepLogger struct {
	logger zerolog.Logger
}

func NewStepLogger(logger zerolog.Logger) *StepLogger {
	return &StepLogger{logger: logger}
}

func (l *StepLogger) OnStep(s bisect.Step) {
	l.logger.Debug().
		Int("iteration", s.Iteration).
		Float64("low", s.Low).
		Float64("high", s.High).
		Float64("mid", s.Mid).
		Float64("fmid", s.FMid).
		Msg("bisect step")
}

// LogResult records the outcome of a solve at info level, or at warn
// level when it failed.
func LogResult(logger zerolog.Logger, name string, res *bisect.Result, err error) {
	if err != nil {
		ev := logger.Warn().Err(err).Str("function", name)
		if res != nil {
			ev = ev.Float64("best", res.Root).Int("iterations", res.Iterations)
		}
		ev.Msg("solve failed")
		return
	}
	logger.Info().
		Str("function", name).
		Float64("root", res.Root).
		Int("iterations", res.Iterations).
		Int("evaluations", res.Evaluations).
		Str("reason", res.Reason.String()).
		Msg("solve converged")
}
