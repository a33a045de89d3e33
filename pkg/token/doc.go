// Package token implements access-token issuance and verification plus
// opaque refresh-token generation for the Hireline auth core.
//
// # Access Tokens
//
// Access tokens are short-lived JWTs signed with HMAC-SHA256 via
// github.com/golang-jwt/jwt/v5. The payload carries the user ID and role so
// the authorization layer can verify a request without a database lookup.
// Verification distinguishes an expired token (ErrTokenExpired, recoverable
// through the refresh flow) from an invalid one (ErrTokenInvalid, not
// recoverable).
//
// # Refresh Tokens
//
// Refresh tokens are long-lived opaque values: 256 bits from crypto/rand,
// hex encoded. They are never signed and never stored in plaintext: only
// the SHA-256 hash (HashRefreshToken) is persisted, so a database leak does
// not expose usable credentials. Because refresh tokens are random and
// database-backed while access tokens are HMAC-signed, compromise of the
// signing secret cannot forge refresh tokens, and a leaked refresh-token
// table cannot forge access tokens.
package token
