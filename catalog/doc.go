// Package catalog provides the core record types and abstractions for the
// library catalog.
//
// This package defines the fundamental types used across the different storage
// engines and services, including table schemas, row mapping, and common error
// definitions.
//
// Key types:
//   - Book: a catalog entry with an availability flag owned by the ledger
//   - Member: a registered library member with a unique email
//   - Transaction: a borrow/return record with a Borrowed -> Returned lifecycle
//   - Table: a named record set with a fixed, ordered column schema
//
// Records are built with the supplied factory methods (BuildBook, BuildMember,
// BuildTransaction) which normalize text fields at the boundary, and are mapped
// to and from storage rows with the ToRow/FromRow functions.
package catalog
