package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
	"github.com/hireline/api/pkg/token"
)

// RefreshToken represents a stored refresh token
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// TokenRepository defines the interface for refresh token storage
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error)
	// RotateRefreshToken atomically revokes the token identified by oldHash
	// and stores next. It returns database.ErrNotFound when oldHash no
	// longer identifies a valid (unrevoked, unexpired) token, which is how
	// the loser of a concurrent refresh race observes defeat.
	RotateRefreshToken(ctx context.Context, oldHash string, next *RefreshToken) error
	RevokeRefreshToken(ctx context.Context, hash string) error
	RevokeAllUserTokens(ctx context.Context, userID string) error
	DeleteExpiredTokens(ctx context.Context) error
	DeleteRevokedTokensBefore(ctx context.Context, cutoff time.Time) error
}

// TokenService handles access-token and refresh-token lifecycle operations
type TokenService struct {
	issuer    *token.Issuer
	tokenRepo TokenRepository
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	Issuer    *token.Issuer
	TokenRepo TokenRepository
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		issuer:    cfg.Issuer,
		tokenRepo: cfg.TokenRepo,
	}
}

// TokenPair represents an access token and refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// mintPair issues a fresh access token and refresh token for a user without
// touching the ledger. Callers persist the returned record themselves, either
// additively (login, signup) or as the write half of a rotation.
func (s *TokenService) mintPair(user *model.User) (*TokenPair, *RefreshToken, error) {
	accessToken, _, err := s.issuer.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, err
	}

	refreshPlain, refreshExpiresAt, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, nil, err
	}

	record := &RefreshToken{
		UserID:    user.ID,
		TokenHash: token.HashRefreshToken(refreshPlain),
		ExpiresAt: refreshExpiresAt,
		CreatedAt: time.Now(),
		Revoked:   false,
	}

	pair := &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshPlain,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.issuer.AccessTTL().Seconds()),
	}

	return pair, record, nil
}

// GenerateTokenPair creates and stores a new session for a user. Storage is
// additive: existing sessions for the same user are untouched (multi-device).
func (s *TokenService) GenerateTokenPair(ctx context.Context, user *model.User) (*TokenPair, error) {
	pair, record, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateRefreshToken(ctx, record); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// A 256-bit collision means the randomness source is broken.
			slog.Error("refresh token hash collision",
				slog.String("user_id", user.ID),
			)
			return nil, fmt.Errorf("storing refresh token: %w", ErrDuplicateToken)
		}
		return nil, err
	}

	return pair, nil
}

// RefreshTokenPair exchanges a refresh token for a new token pair.
// Rotation is single-use: the presented token is revoked and a new one
// stored in the same database transaction, so a crash or a concurrent
// refresh can never leave both tokens valid.
func (s *TokenService) RefreshTokenPair(ctx context.Context, refreshToken string, user *model.User) (*TokenPair, error) {
	tokenHash := token.HashRefreshToken(refreshToken)

	stored, err := s.tokenRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if stored == nil {
		return nil, ErrInvalidRefreshToken
	}

	if stored.Revoked {
		// Reuse of a rotated token: someone is replaying an old value.
		// Revoke every session for this user to contain the replay.
		_ = s.tokenRepo.RevokeAllUserTokens(ctx, stored.UserID)
		return nil, ErrRefreshTokenRevoked
	}

	// Expiry is checked at read time; physical purge is the sweeper's job.
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	pair, next, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.RotateRefreshToken(ctx, tokenHash, next); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Lost a race against a concurrent refresh or revocation.
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return pair, nil
}

// VerifyAccessToken validates an access token and returns the claims
func (s *TokenService) VerifyAccessToken(tokenString string) (*token.Claims, error) {
	return s.issuer.VerifyAccessToken(tokenString)
}

// RevokeRefreshToken revokes a single refresh token. Idempotent: revoking a
// token that is already revoked or was never stored is not an error.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeRefreshToken(ctx, token.HashRefreshToken(refreshToken))
}

// RevokeAllUserTokens revokes all refresh tokens for a user (logout from all devices)
func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID string) error {
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// DeleteExpiredTokens physically removes tokens past their expiry
func (s *TokenService) DeleteExpiredTokens(ctx context.Context) error {
	return s.tokenRepo.DeleteExpiredTokens(ctx)
}

// CleanupRevokedTokens removes tokens that have been revoked for longer than
// the retention window. Revoked rows are kept around for a while so token
// reuse stays detectable.
func (s *TokenService) CleanupRevokedTokens(ctx context.Context, retention time.Duration) error {
	return s.tokenRepo.DeleteRevokedTokensBefore(ctx, time.Now().Add(-retention))
}
