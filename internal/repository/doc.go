// Package repository implements the data access layer for the Hireline
// auth core.
//
// The repository package contains all database operations using SurrealDB:
// the credential store (user records) and the refresh-token ledger.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Revoke, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Uniqueness and Atomicity
//
// Uniqueness of email, username, and refresh-token hash is enforced by
// unique indexes (see migrations/); violations surface as
// database.ErrDuplicate. Refresh-token rotation executes as a single
// SurrealQL transaction so the revoke and the insert are visible together
// or not at all.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//
// # Example Usage
//
//	repo := NewUserRepository(db)
//	user, err := repo.GetByEmail(ctx, "alice@example.com")
//	if err != nil {
//	    return err
//	}
//	if user == nil {
//	    // No such account
//	}
package repository
