package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenInvalid indicates a malformed token or a bad signature.
	// Callers must not retry; the token will never become valid.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates a well-formed, correctly signed token past
	// its expiry. Callers may recover by exchanging their refresh token.
	ErrTokenExpired = errors.New("token expired")
)

const refreshTokenBytes = 32

// Claims carries the identity payload embedded in an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds issuer configuration
type Config struct {
	// AccessSecret signs access tokens. Required.
	AccessSecret string
	// Issuer is the iss claim value.
	Issuer string
	// AccessTTL is the access-token lifetime. Default: 30 minutes.
	AccessTTL time.Duration
	// RefreshTTL is the refresh-token lifetime. Default: 7 days.
	RefreshTTL time.Duration
}

// Issuer mints and verifies access tokens and generates opaque refresh tokens
type Issuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates a new token issuer
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("access secret is required")
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 30 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}

	return &Issuer{
		secret:     []byte(cfg.AccessSecret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssueAccessToken signs a short-lived JWT carrying the user ID and role.
func (i *Issuer) IssueAccessToken(userID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.accessTTL)

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyAccessToken checks the signature and expiry of an access token and
// returns its claims. The two failure modes are distinguishable: expiry
// returns ErrTokenExpired, everything else returns ErrTokenInvalid.
func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// NewRefreshToken generates an opaque, cryptographically random refresh
// token and its expiry. The returned plaintext is handed to the caller once;
// only HashRefreshToken(plaintext) may be persisted.
func (i *Issuer) NewRefreshToken() (string, time.Time, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generating refresh token: %w", err)
	}
	return hex.EncodeToString(buf), time.Now().Add(i.refreshTTL), nil
}

// HashRefreshToken returns the hex-encoded SHA-256 digest stored in place of
// the raw refresh token.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// AccessTTL returns the configured access-token lifetime
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// RefreshTTL returns the configured refresh-token lifetime
func (i *Issuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}
