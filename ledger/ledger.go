package ledger

import (
	"context"
	"errors"

	"librarium/catalog"
)

// DefaultOverdueDays is the borrow duration threshold after which a
// transaction counts as overdue.
const DefaultOverdueDays = 7

const (
	logMsgBookBorrowed      = "book borrowed"
	logMsgBookReturned      = "book returned"
	logMsgBookRecordMissing = "book record missing on return, availability not restored"
	logAttrTransactionID    = "transaction_id"
	logAttrMemberID         = "member_id"
	logAttrBookID           = "book_id"
)

// TableStore is the storage collaborator the ledger persists through.
type TableStore interface {
	ReadAll(ctx context.Context, table catalog.Table) (catalog.Rows, error)
	WriteAll(ctx context.Context, table catalog.Table, rows catalog.Rows) error
}

// BookCatalog is the slice of the book registry the ledger needs: resolving
// books and flipping their availability flag.
type BookCatalog interface {
	FindByID(ctx context.Context, id catalog.BookIDString) (catalog.Book, error)
	SetAvailability(ctx context.Context, id catalog.BookIDString, available bool) error
}

// MemberDirectory is the slice of the member registry the ledger needs.
type MemberDirectory interface {
	FindByID(ctx context.Context, id catalog.MemberIDString) (catalog.Member, error)
}

// Ledger owns the transaction records and coordinates book availability.
type Ledger struct {
	store   TableStore
	books   BookCatalog
	members MemberDirectory
	logger  catalog.Logger
	now     catalog.Clock
}

// Option defines a functional option for configuring a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger for the Ledger.
func WithLogger(logger catalog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock sets the clock used to stamp borrow and return dates, default time.Now.
func WithClock(clock catalog.Clock) Option {
	return func(l *Ledger) {
		l.now = clock
	}
}

// NewLedger creates a Ledger with optional configuration.
func NewLedger(store TableStore, books BookCatalog, members MemberDirectory, options ...Option) (Ledger, error) {
	if store == nil || books == nil || members == nil {
		return Ledger{}, catalog.ErrNilStoreSupplied
	}

	l := Ledger{
		store:   store,
		books:   books,
		members: members,
		now:     catalog.SystemClock,
	}

	for _, option := range options {
		option(&l)
	}

	return l, nil
}

// Borrow records a new borrow transaction for the given member and book.
//
// Fails with catalog.ErrMemberNotFound or catalog.ErrBookNotFound when either
// reference does not resolve, and with catalog.ErrBookUnavailable when the book
// is already lent out. On success the book's availability is flipped to false
// and both the book catalog and the ledger are persisted, books first: a crash
// in between leaves the book unavailable with no open transaction, never the
// reverse.
func (l Ledger) Borrow(ctx context.Context, memberID catalog.MemberIDString, bookID catalog.BookIDString) (catalog.Transaction, error) {
	if _, err := l.members.FindByID(ctx, memberID); err != nil {
		return catalog.Transaction{}, err
	}

	book, err := l.books.FindByID(ctx, bookID)
	if err != nil {
		return catalog.Transaction{}, err
	}

	if !book.Available {
		return catalog.Transaction{}, catalog.ErrBookUnavailable
	}

	transactions, err := l.loadTransactions(ctx)
	if err != nil {
		return catalog.Transaction{}, err
	}

	transaction := catalog.BuildTransaction(catalog.NextTransactionID(len(transactions)), memberID, bookID, l.now())
	transactions = append(transactions, transaction)

	if err := l.books.SetAvailability(ctx, bookID, false); err != nil {
		return catalog.Transaction{}, err
	}

	if err := l.saveTransactions(ctx, transactions); err != nil {
		return catalog.Transaction{}, err
	}

	l.logInfo(logMsgBookBorrowed,
		logAttrTransactionID, transaction.ID,
		logAttrMemberID, memberID,
		logAttrBookID, bookID)

	return transaction, nil
}

// Return closes the open borrow transaction for the given member and book.
//
// The first transaction matching member, book, and status Borrowed is marked
// returned with today's date; no match fails with
// catalog.ErrNoActiveBorrowRecord. The ledger is persisted before the book
// catalog. A book record that no longer resolves does not fail the return:
// the transaction still closes and the availability flip is skipped, a known
// relaxed invariant inherited from the persisted-file format.
func (l Ledger) Return(ctx context.Context, memberID catalog.MemberIDString, bookID catalog.BookIDString) (catalog.Transaction, error) {
	transactions, err := l.loadTransactions(ctx)
	if err != nil {
		return catalog.Transaction{}, err
	}

	index := -1
	for i := range transactions {
		if transactions[i].MemberID == memberID &&
			transactions[i].BookID == bookID &&
			transactions[i].Status == catalog.StatusBorrowed {
			index = i

			break // defensively pick the first match should the per-book invariant ever be violated
		}
	}

	if index == -1 {
		return catalog.Transaction{}, catalog.ErrNoActiveBorrowRecord
	}

	if err := transactions[index].MarkReturned(l.now()); err != nil {
		return catalog.Transaction{}, err
	}

	if err := l.saveTransactions(ctx, transactions); err != nil {
		return catalog.Transaction{}, err
	}

	if err := l.books.SetAvailability(ctx, bookID, true); err != nil {
		if !errors.Is(err, catalog.ErrBookNotFound) {
			return catalog.Transaction{}, err
		}

		l.logWarn(logMsgBookRecordMissing, logAttrBookID, bookID)
	}

	transaction := transactions[index]

	l.logInfo(logMsgBookReturned,
		logAttrTransactionID, transaction.ID,
		logAttrMemberID, memberID,
		logAttrBookID, bookID)

	return transaction, nil
}

// ListAll returns every transaction in insertion order.
func (l Ledger) ListAll(ctx context.Context) (catalog.Transactions, error) {
	return l.loadTransactions(ctx)
}

// Overdue returns all open transactions borrowed more than daysLimit whole
// days ago. Note that overdue(3) is a superset of overdue(10) on the same data.
func (l Ledger) Overdue(ctx context.Context, daysLimit int) (catalog.Transactions, error) {
	transactions, err := l.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	now := l.now()
	overdue := catalog.Transactions{}

	for _, transaction := range transactions {
		if transaction.Status != catalog.StatusBorrowed {
			continue
		}

		if catalog.DaysBetween(transaction.BorrowDate, now) > daysLimit {
			overdue = append(overdue, transaction)
		}
	}

	return overdue, nil
}

// BorrowedByMember returns the open transactions of one member.
func (l Ledger) BorrowedByMember(ctx context.Context, memberID catalog.MemberIDString) (catalog.Transactions, error) {
	transactions, err := l.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}

	borrowed := catalog.Transactions{}
	for _, transaction := range transactions {
		if transaction.MemberID == memberID && transaction.Status == catalog.StatusBorrowed {
			borrowed = append(borrowed, transaction)
		}
	}

	return borrowed, nil
}

func (l Ledger) loadTransactions(ctx context.Context) (catalog.Transactions, error) {
	rows, err := l.store.ReadAll(ctx, catalog.TransactionsTable)
	if err != nil {
		return nil, err
	}

	transactions := make(catalog.Transactions, 0, len(rows))
	for _, row := range rows {
		transaction, rowErr := catalog.TransactionFromRow(row)
		if rowErr != nil {
			return nil, rowErr
		}

		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

func (l Ledger) saveTransactions(ctx context.Context, transactions catalog.Transactions) error {
	rows := make(catalog.Rows, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, transaction.ToRow())
	}

	return l.store.WriteAll(ctx, catalog.TransactionsTable, rows)
}

func (l Ledger) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l Ledger) logWarn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
