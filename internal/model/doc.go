// Package model defines domain entities and data structures for the Hireline
// auth core.
//
// The model package contains struct definitions for domain objects shared
// across all layers: user accounts, the nested profile sub-record, and the
// claims extracted from access tokens.
//
// # Domain Entities
//
//   - User: application account with credentials and a role
//   - Profile: optional structured sub-record (name, phone)
//   - TokenClaims: identity payload extracted from a verified access token
//
// # JSON Serialization
//
// All models use json struct tags for serialization. Sensitive fields are
// excluded explicitly:
//
//	type User struct {
//	    ID   string `json:"id"`
//	    Hash string `json:"-"` // never serialized
//	}
//
// # Roles
//
// Every user carries exactly one role: candidate (default), recruiter, or
// admin. The role is immutable after assignment except through an
// admin-initiated change.
package model
