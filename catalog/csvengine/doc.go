// Package csvengine implements the default storage collaborator: full record
// sets persisted as delimited text files with a header row, one file per table,
// under a single data directory.
//
// Reading a table that does not exist yet creates the file with its header so
// that a fresh data directory behaves like an empty catalog. Writing a table is
// always a full rewrite through a temp file followed by an atomic rename, so a
// crash mid-write never leaves a partially written table behind. Atomicity
// across two tables is explicitly not provided; callers sequence their writes
// and accept the documented last-writer-wins semantics.
package csvengine
