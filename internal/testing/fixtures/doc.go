// Package fixtures provides test data factories for the Hireline API.
//
// The fixtures package contains factory functions for creating test data
// with sensible defaults and optional customization.
//
// # Factory Pattern
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
// Factory methods insert domain entities and return them fully populated:
//
//	user := f.CreateUser(t, fixtures.UserOpts{})
//	recruiter := f.CreateUser(t, fixtures.UserOpts{Role: model.UserRoleRecruiter})
//	rec, plaintext := f.CreateRefreshToken(t, user, fixtures.TokenOpts{})
//
// # Random Data
//
// Unique usernames and emails are generated automatically so fixtures never
// collide on the unique indexes:
//
//	user1 := f.CreateUser(t, fixtures.UserOpts{}) // user_abc123
//	user2 := f.CreateUser(t, fixtures.UserOpts{}) // user_def456
//
// # Cleanup
//
// Test data is cleaned up when the test database is closed.
//
// Password hashing in fixtures uses bcrypt.MinCost to keep the suite fast;
// production hashing cost lives in the service layer.
package fixtures
