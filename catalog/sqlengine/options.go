package sqlengine

import (
	"errors"

	"librarium/catalog"
)

var errUnsupportedDialect = errors.New("unsupported sql dialect")

// DialectSQLite and DialectPostgres are the supported goqu dialect names.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
//
// Debug level: generated SQL with execution timing (development use)
// Error level: failures that cause operation failures.
func WithLogger(logger catalog.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithDialect sets the SQL dialect used to build queries, default DialectSQLite.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		if dialect != DialectSQLite && dialect != DialectPostgres {
			return errUnsupportedDialect
		}

		s.dialect = dialect

		return nil
	}
}
