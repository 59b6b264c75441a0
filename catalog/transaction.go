package catalog

import (
	"fmt"
	"time"
)

// TransactionIDString is a type alias for string, representing a transaction identifier in the format "T####".
type TransactionIDString = string

// Transactions is an alias type for a slice of Transaction.
type Transactions = []Transaction

// Status is the lifecycle state of a Transaction.
type Status string

const (
	// StatusBorrowed is the initial state of every transaction.
	StatusBorrowed Status = "Borrowed"
	// StatusReturned is the terminal state; no further transitions exist.
	StatusReturned Status = "Returned"
)

// Transaction records one borrow/return event referencing a member and a book.
// It is created in StatusBorrowed with an absent return date and transitions
// exactly once to StatusReturned via MarkReturned.
type Transaction struct {
	ID         TransactionIDString
	MemberID   MemberIDString
	BookID     BookIDString
	BorrowDate time.Time
	ReturnDate time.Time // zero until returned
	Status     Status
}

// BuildTransaction is a factory method for Transaction, representing a new borrow.
func BuildTransaction(id TransactionIDString, memberID MemberIDString, bookID BookIDString, borrowDate time.Time) Transaction {
	return Transaction{
		ID:         id,
		MemberID:   memberID,
		BookID:     bookID,
		BorrowDate: ToDate(borrowDate),
		Status:     StatusBorrowed,
	}
}

// NextTransactionID returns the identifier assigned to the next transaction,
// given the current number of transactions in the ledger.
func NextTransactionID(count int) TransactionIDString {
	return fmt.Sprintf("T%04d", count+1)
}

// MarkReturned transitions the transaction to StatusReturned and sets the
// return date. This is the only way the transition happens, making it a single
// auditable call. Returns ErrAlreadyReturned if the transaction is already in
// its terminal state.
func (t *Transaction) MarkReturned(returnDate time.Time) error {
	if t.Status == StatusReturned {
		return ErrAlreadyReturned
	}

	t.ReturnDate = ToDate(returnDate)
	t.Status = StatusReturned

	return nil
}

// ToRow maps the transaction onto the TransactionsTable schema.
// An absent return date is persisted as the empty string.
func (t Transaction) ToRow() Row {
	return Row{
		"transaction_id": t.ID,
		"member_id":      t.MemberID,
		"book_id":        t.BookID,
		"borrow_date":    FormatDate(t.BorrowDate),
		"return_date":    FormatDate(t.ReturnDate),
		"status":         string(t.Status),
	}
}

// TransactionFromRow builds a Transaction from a TransactionsTable row.
func TransactionFromRow(row Row) (Transaction, error) {
	borrowDate, err := ParseDate(row["borrow_date"])
	if err != nil {
		return Transaction{}, err
	}

	returnDate, err := ParseDate(row["return_date"])
	if err != nil {
		return Transaction{}, err
	}

	status, err := parseStatus(row["status"])
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		ID:         row["transaction_id"],
		MemberID:   row["member_id"],
		BookID:     row["book_id"],
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
		Status:     status,
	}, nil
}

func parseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusBorrowed, StatusReturned:
		return Status(value), nil
	default:
		return "", fmt.Errorf("%w: invalid status %q", ErrMalformedRow, value)
	}
}
