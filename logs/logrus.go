package logs

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLoggerProperties are the properties used to create a logger
// backed by logrus
type LogrusLoggerProperties struct {
	// Level is the minimum level an entry needs to be written
	Level logrus.Level

	// Output is where entries are written. Defaults to os.Stderr
	Output io.Writer

	// JSON formats entries as json objects instead of text
	JSON bool
}

type logrusFields logrus.Fields

func (f logrusFields) Add(key string, value interface{}) {
	f[key] = value
}

// LogrusLogger is the implementation of Logger using logrus
type LogrusLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// NewLogrus creates a new Logger backed by logrus
func NewLogrus(props LogrusLoggerProperties) *LogrusLogger {
	output := props.Output
	if output == nil {
		output = os.Stderr
	}

	logger := logrus.New()
	logger.SetLevel(props.Level)
	logger.SetOutput(output)

	if props.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &LogrusLogger{logger: logger, fields: logrus.Fields{}}
}

// ParseLevel converts a level name into a logrus level
func ParseLevel(level string) (logrus.Level, error) {
	return logrus.ParseLevel(level)
}

func (l *LogrusLogger) entry(ctx context.Context, loggables []Loggable) *logrus.Entry {
	fields := make(logrusFields, len(l.fields)+len(loggables)+1)
	for k, v := range l.fields {
		fields[k] = v
	}

	if id := GetTraceID(ctx); id != 0 {
		fields["trace_id"] = id
	}

	for _, loggable := range loggables {
		if loggable != nil {
			loggable.Log(fields)
		}
	}

	return l.logger.WithFields(logrus.Fields(fields))
}

// Debug implementation of Logger for LogrusLogger
func (l *LogrusLogger) Debug(ctx context.Context, msg string, loggables ...Loggable) {
	l.entry(ctx, loggables).Debug(msg)
}

// Info implementation of Logger for LogrusLogger
func (l *LogrusLogger) Info(ctx context.Context, msg string, loggables ...Loggable) {
	l.entry(ctx, loggables).Info(msg)
}

// Warn implementation of Logger for LogrusLogger
func (l *LogrusLogger) Warn(ctx context.Context, msg string, loggables ...Loggable) {
	l.entry(ctx, loggables).Warn(msg)
}

// Error implementation of Logger for LogrusLogger
func (l *LogrusLogger) Error(ctx context.Context, msg string, loggables ...Loggable) {
	l.entry(ctx, loggables).Error(msg)
}

// ForClass implementation of Logger for LogrusLogger
func (l *LogrusLogger) ForClass(pkg string, class string) Logger {
	fields := make(logrus.Fields, len(l.fields)+2)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["package"] = pkg
	fields["class"] = class

	return &LogrusLogger{logger: l.logger, fields: fields}
}
