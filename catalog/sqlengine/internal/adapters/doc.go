// Package adapters provides database adapter implementations for the relational
// catalog store.
//
// This package implements the adapter pattern to support multiple database
// libraries: sql.DB, sqlx.DB, and pgxpool.Pool. All adapters provide equivalent
// functionality through a common DBAdapter interface, allowing the store to work
// with an embedded SQLite database or a PostgreSQL server without caring which
// client library opened the connection.
package adapters
