package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lirajourney/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
		ok   bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" error ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("build").
		WithFields(map[string]any{"phase": "phase-0", "character": "cordelia"})

	log.Info("page written")

	out := buf.String()
	assert.Contains(t, out, "[build]")
	assert.True(t, strings.Index(out, "character=cordelia") < strings.Index(out, "phase=phase-0"))
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	_ = parent.WithField("run", "abc")

	parent.Info("plain")

	assert.NotContains(t, buf.String(), "run=abc")
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithColors(false)).WithPrefix("ctx")
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
