package log

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/training-planner/pkg/requestid"
)

// StructuredLogger traces operations as a sequence of structured log entries
// (started, steps, success or error) sharing the operation name and request id.
type StructuredLogger struct {
	name   string
	fields []zap.Field
	base   *zap.Logger
}

// NewDebugLogger returns a StructuredLogger writing to the global zap logger under name.
// Steps are logged at debug level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name}
}

// NewStructuredLogger is like NewDebugLogger but writes to l.
func NewStructuredLogger(l *zap.Logger, name string) *StructuredLogger {
	return &StructuredLogger{name: name, base: l}
}

func (l *StructuredLogger) logger() *zap.Logger {
	base := l.base
	if base == nil {
		base = zap.L()
	}
	return base.Named(l.name).With(l.fields...)
}

// WithContext attaches the request id found in ctx, if any.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	cp := &StructuredLogger{name: l.name, base: l.base, fields: append([]zap.Field(nil), l.fields...)}
	if id := requestid.FromContext(ctx); id != "" {
		cp.fields = append(cp.fields, zap.String("request_id", id))
	}
	return cp
}

// Operation starts describing an operation. Fields added on the builder are carried by every entry.
func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	return &OperationBuilder{logger: l.logger(), operation: name}
}

type OperationBuilder struct {
	logger    *zap.Logger
	operation string
	fields    []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

// Build logs the start of the operation and returns its tracer.
func (b *OperationBuilder) Build() *OperationTracer {
	l := b.logger.With(zap.String("operation", b.operation)).With(b.fields...)
	l.Debug("operation started")
	return &OperationTracer{logger: l, start: time.Now()}
}

// OperationTracer emits the entries of one operation.
type OperationTracer struct {
	logger *zap.Logger
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return &Entry{logger: t.logger, level: zapcore.DebugLevel, msg: "operation step", fields: []zap.Field{zap.String("step", name)}}
}

func (t *OperationTracer) Error(err error) *Entry {
	return &Entry{logger: t.logger, level: zapcore.ErrorLevel, msg: "operation failed", fields: []zap.Field{zap.Error(err), zap.Duration("duration", time.Since(t.start))}}
}

func (t *OperationTracer) Success() *Entry {
	return &Entry{logger: t.logger, level: zapcore.InfoLevel, msg: "operation succeeded", fields: []zap.Field{zap.Duration("duration", time.Since(t.start))}}
}

// Entry is a single pending log entry. Nothing is written until Log is called.
type Entry struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithFloat(key string, value float64) *Entry {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) WithParam(key string, value any) *Entry {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Entry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
