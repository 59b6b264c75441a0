package csvengine

import (
	"errors"
	"os"

	"librarium/catalog"
)

var errInvalidDelimiter = errors.New("delimiter must be a printable character")

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
//
// Debug level: per-table read/write row counts with timing (development use)
// Warn level: non-critical issues like temp file cleanup failures
// Error level: I/O failures that cause operation failures.
func WithLogger(logger catalog.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithDelimiter sets the field delimiter, default ','.
func WithDelimiter(delimiter rune) Option {
	return func(s *Store) error {
		if delimiter == 0 || delimiter == '\n' || delimiter == '\r' {
			return errInvalidDelimiter
		}

		s.delimiter = delimiter

		return nil
	}
}

// WithFileMode sets the permissions used when creating table files, default 0o644.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) error {
		s.fileMode = mode
		return nil
	}
}
