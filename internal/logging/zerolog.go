package logging

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to the Logger interface.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger creates a console-writer logger on w. Verbose enables
// debug-level output.
func NewZerologLogger(w io.Writer, verbose bool) *ZerologLogger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

// fields converts variadic key-value pairs into a map zerolog can attach.
// A trailing key without a value is kept with an empty value.
func fields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 < len(args) {
			m[key] = args[i+1]
		} else {
			m[key] = ""
		}
	}
	return m
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(fields(args)).Logger()}
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() Logger {
	return &ZerologLogger{l: zerolog.Nop()}
}
