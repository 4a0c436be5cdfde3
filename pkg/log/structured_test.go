package log

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kubev2v/training-planner/pkg/requestid"
)

func TestStructuredLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := requestid.ToContext(context.Background(), "req-1")

	tracer := NewStructuredLogger(zap.New(core), "estimation_service").
		WithContext(ctx).
		Operation("estimate").
		WithString("hardware", "local").
		Build()
	tracer.Step("resolved").WithInt("total_steps", 3000).Log()
	tracer.Error(errors.New("boom")).Log()
	tracer.Success().WithFloat("minutes", 300).Log()

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "operation started", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)

	for _, e := range entries {
		fields := e.ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "estimate", fields["operation"])
		assert.Equal(t, "local", fields["hardware"])
		assert.Equal(t, "estimation_service", e.LoggerName)
	}
	assert.Equal(t, int64(3000), entries[1].ContextMap()["total_steps"])
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestStructuredLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	tracer := NewStructuredLogger(zap.New(core), "x").Operation("op").Build()
	tracer.Step("hidden").Log()
	tracer.Success().Log()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "operation succeeded", logs.All()[0].Message)
}
