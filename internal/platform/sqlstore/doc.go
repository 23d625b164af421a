// Package sqlstore implements the store interfaces on database/sql.
//
// The same store code runs against PostgreSQL (through the pgx stdlib
// driver) and SQLite (through mattn/go-sqlite3). Queries are built with
// squirrel so that placeholders match the selected Dialect, and driver
// errors are mapped to the sentinel errors of the store package by MapError
// and wrapped in a store.StoreError naming the failed operation.
//
// Schema changes are goose SQL migrations embedded per dialect; see Migrator.
package sqlstore
