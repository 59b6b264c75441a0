package registry

import (
	"context"

	"librarium/catalog"
)

type settings struct {
	logger catalog.Logger
	now    catalog.Clock
}

func defaultSettings() settings {
	return settings{
		now: catalog.SystemClock,
	}
}

// Option defines a functional option for configuring a registry.
type Option func(*settings)

// WithLogger sets the logger for the registry.
func WithLogger(logger catalog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock sets the clock used to stamp join dates, default time.Now.
func WithClock(clock catalog.Clock) Option {
	return func(s *settings) {
		s.now = clock
	}
}

func (s settings) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// TableStore is the storage collaborator a registry persists through.
// Both the CSV engine and the SQL engine satisfy it.
type TableStore interface {
	ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error)
	WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error
}
