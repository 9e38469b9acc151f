// Package logs defines the structured logger used across the module.
// Loggers are context aware so that values carried by a request, such
// as its trace id, end up in every entry logged while handling it.
package logs

import "context"

type contextKey string

// ContextKeyTraceID is the key under which the trace id of an
// operation is kept in its context
const ContextKeyTraceID contextKey = "trace_id"

// Fields collects the key value pairs attached to a log entry
type Fields interface {
	Add(key string, value interface{})
}

// Loggable is implemented by values that know how to describe
// themselves in a log entry
type Loggable interface {
	Log(fields Fields)
}

// MapFields is a map based implementation of both Fields and Loggable
type MapFields map[string]interface{}

// Add implementation of Fields for MapFields
func (m MapFields) Add(key string, value interface{}) {
	m[key] = value
}

// Log implementation of Loggable for MapFields
func (m MapFields) Log(fields Fields) {
	for k, v := range m {
		fields.Add(k, v)
	}
}

// Logger logs entries at different levels
type Logger interface {
	Debug(ctx context.Context, msg string, loggables ...Loggable)
	Info(ctx context.Context, msg string, loggables ...Loggable)
	Warn(ctx context.Context, msg string, loggables ...Loggable)
	Error(ctx context.Context, msg string, loggables ...Loggable)

	// ForClass returns a logger that adds the package and class
	// to every entry
	ForClass(pkg string, class string) Logger
}

// GetTraceID returns the trace id kept in the context or 0 if there
// is none
func GetTraceID(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}

	id, ok := ctx.Value(ContextKeyTraceID).(int64)
	if !ok {
		return 0
	}

	return id
}

// WithTraceID returns a copy of ctx that carries the trace id
func WithTraceID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ContextKeyTraceID, id)
}
