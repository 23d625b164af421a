// Package testdb provides utilities specifically for database testing.
//
// NewSQLite returns a migrated in-memory SQLite database, which is what most
// store and service tests use. GetTestDBWithT returns a migrated PostgreSQL
// connection for integration tests and skips the test when DATABASE_URL is
// not set. WithTx runs a test body inside a transaction that is always
// rolled back.
package testdb
