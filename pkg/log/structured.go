package log

import (
	"context"
	"time"

	"github.com/chasta/skyguard/pkg/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger logs an operation as a sequence of steps sharing the same fields.
//
//	tracer := log.NewDebugLogger("lead_service").WithContext(ctx).
//		Operation("create_lead").
//		WithString("email", email).
//		Build()
//	tracer.Step("estimated").WithInt64("cost", cost).Log()
//	tracer.Success().Log()
type StructuredLogger struct {
	name  string
	level zapcore.Level
	ctx   context.Context
}

// NewDebugLogger returns a logger whose steps are emitted at debug level.
// Errors are always emitted at error level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel}
}

// NewInfoLogger returns a logger whose steps are emitted at info level.
func NewInfoLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.InfoLevel}
}

// WithContext attaches the request id found in ctx to every entry.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	return &StructuredLogger{name: l.name, level: l.level, ctx: ctx}
}

func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	fields := []zap.Field{zap.String("operation", name)}
	if l.ctx != nil {
		if id := requestid.FromContext(l.ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
	}
	return &OperationBuilder{logger: l, fields: fields}
}

type OperationBuilder struct {
	logger *StructuredLogger
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	return &OperationTracer{
		logger: zap.L().Named(b.logger.name).WithOptions(zap.AddCallerSkip(1)),
		level:  b.logger.level,
		fields: b.fields,
		start:  time.Now(),
	}
}

// OperationTracer emits entries for a single operation.
type OperationTracer struct {
	logger *zap.Logger
	level  zapcore.Level
	fields []zap.Field
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return t.entry(t.level, "step", zap.String("step", name))
}

func (t *OperationTracer) Success() *Entry {
	return t.entry(t.level, "success", zap.Duration("elapsed", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, "error", zap.Error(err), zap.Duration("elapsed", time.Since(t.start)))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string, extra ...zap.Field) *Entry {
	fields := make([]zap.Field, 0, len(t.fields)+len(extra))
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return &Entry{logger: t.logger, level: level, msg: msg, fields: fields}
}

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

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithInt64(key string, value int64) *Entry {
	e.fields = append(e.fields, zap.Int64(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
