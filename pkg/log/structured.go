package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/fracture-planner/pkg/requestid"
)

// StructuredLogger produces operation tracers that log each step of a named operation with a
// consistent set of fields. The underlying zap logger is resolved lazily so that loggers created
// before zap.ReplaceGlobals still write to the configured sink.
type StructuredLogger struct {
	name  string
	level zapcore.Level
	ctx   context.Context
}

// NewDebugLogger returns a StructuredLogger whose step entries are logged at debug level.
func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, level: zapcore.DebugLevel}
}

// WithContext returns a copy bound to ctx; the request id found in ctx is attached to every entry.
func (s *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	c := *s
	c.ctx = ctx
	return &c
}

// Operation starts building a tracer for the named operation.
func (s *StructuredLogger) Operation(name string) *OperationBuilder {
	fields := []zap.Field{zap.String("operation", name)}
	if s.ctx != nil {
		if id := requestid.FromContext(s.ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
	}
	return &OperationBuilder{
		fieldSet: fieldSet{fields: fields},
		logger:   zap.L().Named(s.name),
		level:    s.level,
		name:     name,
	}
}

type fieldSet struct {
	fields []zap.Field
}

func (f *fieldSet) add(field zap.Field) { f.fields = append(f.fields, field) }

// OperationBuilder collects the fields shared by every entry of an operation.
type OperationBuilder struct {
	fieldSet
	logger *zap.Logger
	level  zapcore.Level
	name   string
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.add(zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.add(zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.add(zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.add(zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.add(zap.String(key, value.String()))
	return b
}

// Log writes a single entry for operations that need no tracer.
func (b *OperationBuilder) Log() {
	b.logger.Log(b.level, b.name, b.fields...)
}

// Build freezes the shared fields and starts the operation clock.
func (b *OperationBuilder) Build() *OperationTracer {
	return &OperationTracer{
		logger: b.logger.With(b.fields...),
		level:  b.level,
		name:   b.name,
		start:  time.Now(),
	}
}

// OperationTracer emits step, success and error entries for one operation.
type OperationTracer struct {
	logger *zap.Logger
	level  zapcore.Level
	name   string
	start  time.Time
}

func (t *OperationTracer) Step(step string) *Entry {
	return t.entry(t.level, t.name+": "+step, zap.String("step", step))
}

func (t *OperationTracer) Success() *Entry {
	return t.entry(zapcore.InfoLevel, t.name+": success", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, t.name+": failed", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string, fields ...zap.Field) *Entry {
	e := &Entry{logger: t.logger, level: level, msg: msg}
	e.fields = fields
	return e
}

// Entry is a single pending log line.
type Entry struct {
	fieldSet
	logger *zap.Logger
	level  zapcore.Level
	msg    string
}

func (e *Entry) WithString(key, value string) *Entry {
	e.add(zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.add(zap.Int(key, value))
	return e
}

func (e *Entry) WithFloat(key string, value float64) *Entry {
	e.add(zap.Float64(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.add(zap.Bool(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.add(zap.String(key, value.String()))
	return e
}

func (e *Entry) Log() {
	e.logger.Log(e.level, e.msg, e.fields...)
}
