package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"librarium/catalog"
	"librarium/catalog/sqlengine/internal/adapters"
)

const (
	ordinalColumn = "_seq"

	logMsgTableRead        = "table read"
	logMsgTableWritten     = "table written"
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgDBExecFailed     = "database execution failed"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logAttrError           = "error"
	logAttrTable           = "table"
	logAttrQuery           = "query"
	logAttrRowCount        = "row_count"
	logAttrDurationMS      = "duration_ms"
)

// Store persists full record sets in a relational database, one table per
// catalog table, preserving row order through a hidden ordinal column.
type Store struct {
	db      adapters.DBAdapter
	dialect string
	logger  catalog.Logger
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, catalog.ErrNilDatabaseConnection
	}

	return buildStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, catalog.ErrNilDatabaseConnection
	}

	return buildStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
// The dialect defaults to SQLite, so this constructor is normally combined with
// WithDialect(DialectPostgres).
func NewStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (Store, error) {
	if pool == nil {
		return Store{}, catalog.ErrNilDatabaseConnection
	}

	return buildStore(adapters.NewPGXAdapter(pool), options...)
}

func buildStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: DialectSQLite,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// ReadAll returns all rows of the given table in insertion order.
// The backing database table is created when absent, so a fresh database
// behaves like an empty catalog.
func (s Store) ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error) {
	if table.Name == "" {
		return nil, catalog.ErrEmptyTableNameSupplied
	}

	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}

	selectColumns := make([]any, len(table.Columns))
	for i, column := range table.Columns {
		selectColumns[i] = goqu.C(column)
	}

	sqlQuery, _, buildErr := goqu.Dialect(s.dialect).
		From(table.Name).
		Select(selectColumns...).
		Order(goqu.C(ordinalColumn).Asc()).
		ToSQL()
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return nil, errors.Join(catalog.ErrReadingTableFailed, buildErr)
	}

	start := time.Now()

	rows, queryErr := s.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(catalog.ErrReadingTableFailed, queryErr)
	}
	defer s.closeRows(rows)

	result := catalog.Rows{}

	for rows.Next() {
		values := make([]string, len(table.Columns))
		dest := make([]any, len(table.Columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if scanErr := rows.Scan(dest...); scanErr != nil {
			s.logError(logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(catalog.ErrReadingTableFailed, scanErr)
		}

		row := catalog.Row{}
		for i, column := range table.Columns {
			row[column] = values[i]
		}

		result = append(result, row)
	}

	s.logDebug(logMsgTableRead,
		logAttrTable, table.Name,
		logAttrRowCount, len(result),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return result, nil
}

// WriteAll rewrites the given table with exactly the supplied rows.
// The rewrite is a delete followed by a bulk insert; with a single-user caller
// no reader can observe the gap between the two statements.
func (s Store) WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error {
	if table.Name == "" {
		return catalog.ErrEmptyTableNameSupplied
	}

	if err := s.ensureTable(ctx, table); err != nil {
		return err
	}

	start := time.Now()

	deleteSQL, _, buildErr := goqu.Dialect(s.dialect).Delete(table.Name).ToSQL()
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, logAttrError, buildErr.Error())
		return errors.Join(catalog.ErrWritingTableFailed, buildErr)
	}

	if _, execErr := s.db.Exec(ctx, deleteSQL); execErr != nil {
		s.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, deleteSQL)
		return errors.Join(catalog.ErrWritingTableFailed, execErr)
	}

	if len(rows) > 0 {
		insertSQL, insertBuildErr := s.buildInsert(table, rows)
		if insertBuildErr != nil {
			s.logError(logMsgBuildQueryFailed, logAttrError, insertBuildErr.Error())
			return errors.Join(catalog.ErrWritingTableFailed, insertBuildErr)
		}

		if _, execErr := s.db.Exec(ctx, insertSQL); execErr != nil {
			s.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, insertSQL)
			return errors.Join(catalog.ErrWritingTableFailed, execErr)
		}
	}

	s.logDebug(logMsgTableWritten,
		logAttrTable, table.Name,
		logAttrRowCount, len(rows),
		logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return nil
}

func (s Store) buildInsert(table catalog.Table, rows catalog.Rows) (string, error) {
	insertColumns := make([]any, 0, len(table.Columns)+1)
	insertColumns = append(insertColumns, ordinalColumn)
	for _, column := range table.Columns {
		insertColumns = append(insertColumns, column)
	}

	valueRows := make([][]any, len(rows))
	for i, row := range rows {
		values := make([]any, 0, len(table.Columns)+1)
		values = append(values, i)
		for _, column := range table.Columns {
			values = append(values, row[column])
		}

		valueRows[i] = values
	}

	insertSQL, _, err := goqu.Dialect(s.dialect).
		Insert(table.Name).
		Cols(insertColumns...).
		Vals(valueRows...).
		ToSQL()

	return insertSQL, err
}

// ensureTable creates the backing table when it does not exist yet.
// All schema columns are TEXT; the ordinal column keeps insertion order stable
// across engines that do not guarantee physical row order.
func (s Store) ensureTable(ctx context.Context, table catalog.Table) error {
	columns := make([]string, 0, len(table.Columns)+1)
	columns = append(columns, fmt.Sprintf("%q INTEGER NOT NULL", ordinalColumn))
	for _, column := range table.Columns {
		columns = append(columns, fmt.Sprintf("%q TEXT NOT NULL", column))
	}

	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)", table.Name, strings.Join(columns, ", "))

	if _, err := s.db.Exec(ctx, createSQL); err != nil {
		s.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, createSQL)
		return errors.Join(catalog.ErrWritingTableFailed, err)
	}

	return nil
}

func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
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
