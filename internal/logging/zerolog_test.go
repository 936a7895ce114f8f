package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZerologLogger_WritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, false)

	log.Info(context.Background(), "hello", "key", "value")

	out := buf.String()
	require.Contains(t, out, "hello")
	require.Contains(t, out, "key=")
	require.Contains(t, out, "value")
}

func TestZerologLogger_VerboseControlsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, false)
	log.Info(context.Background(), "visible")
	require.Contains(t, buf.String(), "visible")
}

func TestZerologLogger_WithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, false).With("component", "session")

	log.Warn(context.Background(), "watch out")

	out := buf.String()
	require.Contains(t, out, "watch out")
	require.Contains(t, out, "component=")
}

func TestFields_OddArgsKeepLastKey(t *testing.T) {
	m := fields([]any{"a", 1, "dangling"})
	require.Equal(t, 1, m["a"])
	require.Contains(t, m, "dangling")
}
