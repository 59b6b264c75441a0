package catalog

import (
	"errors"
)

var ErrBookNotFound = errors.New("book not found")
var ErrMemberNotFound = errors.New("member not found")
var ErrDuplicateEmail = errors.New("a member with this email already exists")
var ErrBookUnavailable = errors.New("book is already borrowed")
var ErrNoActiveBorrowRecord = errors.New("no active borrow record found for this member and book")
var ErrAlreadyReturned = errors.New("transaction was already returned")
var ErrMalformedInput = errors.New("malformed input")

var ErrMalformedRow = errors.New("row does not match the table schema")
var ErrEmptyDataDirSupplied = errors.New("empty data directory supplied")
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrNilStoreSupplied = errors.New("nil store supplied")
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrReadingTableFailed = errors.New("reading table failed")
var ErrWritingTableFailed = errors.New("writing table failed")
