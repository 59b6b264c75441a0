package csvengine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"librarium/catalog"
)

const (
	fileExtension = ".csv"

	defaultFileMode = os.FileMode(0o644)

	logMsgTableRead         = "table read"
	logMsgTableWritten      = "table written"
	logMsgOpenTableFailed   = "failed to open table file"
	logMsgReadTableFailed   = "failed to read table file"
	logMsgWriteTableFailed  = "failed to write table file"
	logMsgCleanupTempFailed = "failed to clean up temp file"
	logAttrError            = "error"
	logAttrTable            = "table"
	logAttrRowCount         = "row_count"
	logAttrDurationMS       = "duration_ms"
)

// Store persists full record sets as delimited text files under a data directory.
// The zero value is not usable; construct it with NewStore.
type Store struct {
	dir       string
	delimiter rune
	fileMode  os.FileMode
	logger    catalog.Logger
}

// NewStore creates a Store rooted at the given data directory with optional configuration.
// The directory itself is created lazily on first use.
func NewStore(dir string, options ...Option) (Store, error) {
	if dir == "" {
		return Store{}, catalog.ErrEmptyDataDirSupplied
	}

	s := Store{
		dir:       dir,
		delimiter: ',',
		fileMode:  defaultFileMode,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// ReadAll returns all rows of the given table in file order.
// If the table file does not exist yet it is created with a header row and an
// empty row set is returned. Rows whose field count does not match the schema
// fail with catalog.ErrMalformedRow.
func (s Store) ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error) {
	if err := s.guard(ctx, table); err != nil {
		return nil, err
	}

	if err := s.initialize(ctx, table); err != nil {
		return nil, err
	}

	start := time.Now()

	file, openErr := os.Open(s.path(table))
	if openErr != nil {
		s.logError(logMsgOpenTableFailed, logAttrTable, table.Name, logAttrError, openErr.Error())
		return nil, errors.Join(catalog.ErrReadingTableFailed, openErr)
	}
	defer func() {
		_ = file.Close()
	}()

	rows, readErr := s.readRows(file, table)
	if readErr != nil {
		s.logError(logMsgReadTableFailed, logAttrTable, table.Name, logAttrError, readErr.Error())
		return nil, readErr
	}

	s.logDebug(logMsgTableRead,
		logAttrTable, table.Name,
		logAttrRowCount, len(rows),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return rows, nil
}

// WriteAll rewrites the given table with exactly the supplied rows.
// The rewrite goes through a temp file in the same directory followed by an
// atomic rename, so readers never observe a half-written table.
func (s Store) WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error {
	if err := s.guard(ctx, table); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	start := time.Now()

	temp, tempErr := os.CreateTemp(s.dir, table.Name+"-*.tmp")
	if tempErr != nil {
		s.logError(logMsgWriteTableFailed, logAttrTable, table.Name, logAttrError, tempErr.Error())
		return errors.Join(catalog.ErrWritingTableFailed, tempErr)
	}

	if err := s.writeRows(temp, table, rows); err != nil {
		s.logError(logMsgWriteTableFailed, logAttrTable, table.Name, logAttrError, err.Error())
		s.removeTemp(temp.Name())

		return err
	}

	if err := temp.Chmod(s.fileMode); err != nil {
		s.removeTemp(temp.Name())
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	if err := temp.Close(); err != nil {
		s.removeTemp(temp.Name())
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	if err := os.Rename(temp.Name(), s.path(table)); err != nil {
		s.logError(logMsgWriteTableFailed, logAttrTable, table.Name, logAttrError, err.Error())
		s.removeTemp(temp.Name())

		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	s.logDebug(logMsgTableWritten,
		logAttrTable, table.Name,
		logAttrRowCount, len(rows),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return nil
}

func (s Store) guard(ctx context.Context, table catalog.Table) error {
	if table.Name == "" {
		return catalog.ErrEmptyTableNameSupplied
	}

	return ctx.Err()
}

func (s Store) path(table catalog.Table) string {
	return filepath.Join(s.dir, table.Name+fileExtension)
}

// initialize creates the table file with its header row when it is absent.
func (s Store) initialize(ctx context.Context, table catalog.Table) error {
	if _, err := os.Stat(s.path(table)); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return errors.Join(catalog.ErrReadingTableFailed, err)
	}

	return s.WriteAll(ctx, table, nil)
}

func (s Store) readRows(file io.Reader, table catalog.Table) (catalog.Rows, error) {
	reader := csv.NewReader(file)
	reader.Comma = s.delimiter

	header, headerErr := reader.Read()
	if headerErr == io.EOF {
		return catalog.Rows{}, nil // tolerated: a truncated file behaves like an empty table
	}
	if headerErr != nil {
		return nil, errors.Join(catalog.ErrReadingTableFailed, headerErr)
	}

	if len(header) != len(table.Columns) {
		return nil, fmt.Errorf("%w: header has %d columns, schema has %d", catalog.ErrMalformedRow, len(header), len(table.Columns))
	}

	rows := catalog.Rows{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, errors.Join(catalog.ErrMalformedRow, err)
			}

			return nil, errors.Join(catalog.ErrReadingTableFailed, err)
		}

		row := catalog.Row{}
		for i, column := range table.Columns {
			row[column] = record[i]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (s Store) writeRows(file io.Writer, table catalog.Table, rows catalog.Rows) error {
	writer := csv.NewWriter(file)
	writer.Comma = s.delimiter

	if err := writer.Write(table.Columns); err != nil {
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	record := make([]string, len(table.Columns))

	for _, row := range rows {
		for i, column := range table.Columns {
			record[i] = row[column]
		}

		if err := writer.Write(record); err != nil {
			return errors.Join(catalog.ErrWritingTableFailed, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	return nil
}

func (s Store) removeTemp(name string) {
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logWarn(logMsgCleanupTempFailed, logAttrError, err.Error())
	}
}

func (s Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s Store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
