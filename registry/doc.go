// Package registry implements the book and member registries.
//
// A registry holds no state of its own: the file (or database table) is the
// state of truth. Every operation performs a full reload of the backing table,
// applies its mutation in memory, and rewrites the table in full. Identifiers
// are assigned sequentially from the current record count ("B###" for books,
// "M###" for members).
package registry
