// Package report derives analytical read models from the persisted catalog,
// member, and transaction tables. Every report is recomputed from a full read
// on each call; nothing is cached between calls.
//
// Two returned-books figures exist side by side on purpose. Summary derives
// TotalReturned as TotalTransactions minus CurrentlyBorrowed, which drifts from
// the true count when a transaction's book record has gone missing. ExportSummary
// counts rows with status Returned exactly. Both views are part of the persisted
// report contract.
package report
