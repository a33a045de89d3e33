// Package testdb provides test database utilities for the Hireline API.
//
// The testdb package manages test database connections with automatic
// setup, migration, and cleanup. Tests that use it run real queries against
// a real SurrealDB instance, exercising indexes and transactions.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    // Use tdb.DB for database operations
//	}
//
// New skips the test when TEST_DB_HOST is not set, so the suite still
// passes on machines without a database.
//
// # Migrations
//
// Migrations are automatically applied on setup:
//
//	tdb := testdb.New(t) // Applies all migrations
//
// # Isolation
//
// Each test gets an isolated database namespace, removed again on Close.
package testdb
