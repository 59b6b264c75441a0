package catalog

// Logger interface for operational logging, warnings, and error reporting.
// It is satisfied by *slog.Logger, allowing users to integrate any structured
// logging backend without this package depending on one.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
