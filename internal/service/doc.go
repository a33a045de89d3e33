// Package service implements the business logic of the Hireline auth core.
//
// The service package orchestrates credential storage, password hashing,
// token issuance, and the refresh-token ledger. Services are the only
// writers of the shared stores; nothing outside this package mutates user
// or token records directly.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables
// in errors.go:
//
//	var (
//	    ErrInvalidCredentials = errors.New("invalid email or password")
//	    ErrUserAlreadyExists  = errors.New("email or username already registered")
//	)
//
// The HTTP layer (an external collaborator) maps these to status codes;
// nothing here ever exposes internal detail to a caller.
package service
