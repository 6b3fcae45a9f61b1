package types

// Logger is the structured logging interface accepted by every component in
// the module. Implementations must be safe for concurrent use.
//
// The With* methods return a new Logger enriched with the given fields; the
// receiver is never mutated.
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	Debug(msg string)
	Debugf(format string, args ...any)
	Info(msg string)
	Infof(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
}
