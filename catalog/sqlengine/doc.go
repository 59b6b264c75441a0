// Package sqlengine implements an alternative storage collaborator that keeps
// the catalog's record sets in a relational database instead of flat files.
//
// It offers the same full-read / full-rewrite contract as the CSV engine: one
// database table per catalog table, all columns TEXT, row order preserved via
// a hidden ordinal column. Tables are created on first use, mirroring the CSV
// engine's create-with-header behavior.
//
// The engine is dialect-aware (SQLite by default, PostgreSQL optional) and
// accepts any of sql.DB, sqlx.DB, or pgxpool.Pool through internal adapters.
package sqlengine
