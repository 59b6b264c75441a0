// Package ledger implements the transaction ledger: the ordered record of
// borrow and return events and the single writer of book availability.
//
// A transaction starts as Borrowed and transitions exactly once to Returned.
// The "at most one open transaction per book" invariant is enforced through
// the book's availability flag, which the ledger flips on borrow and return.
// Book catalog and ledger are persisted as two separate tables with no atomic
// boundary across them; writes are sequenced so that a crash in between leaves
// the book marked unavailable rather than lent twice.
package ledger
