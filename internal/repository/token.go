package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/service"
)

// rotationAbortReason is thrown inside the rotation transaction when the old
// token is no longer valid; its presence in a query error tells the caller
// the rotation lost a race rather than hit a real failure.
const rotationAbortReason = "refresh token already rotated"

// TokenRepository handles refresh token data access
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a new refresh token. Storage is additive: tokens
// for the same user never replace each other. A token_hash collision is
// returned as database.ErrDuplicate.
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *service.RefreshToken) error {
	query := `
		CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			expires_at: <datetime>$expires_at,
			created_at: time::now(),
			revoked: false
		}
	`

	vars := map[string]interface{}{
		"user":       token.UserID, // UserID is in format "user:xxx"
		"token_hash": token.TokenHash,
		"expires_at": token.ExpiresAt.UTC().Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: refresh token hash already stored", database.ErrDuplicate)
		}
		return err
	}

	if len(result) == 0 {
		return errors.New("no result returned")
	}
	data, ok := unwrapRecord(result[0])
	if !ok {
		return errUnexpectedFormat
	}
	if id, ok := data["id"]; ok {
		token.ID = convertSurrealID(id)
	}
	if createdAt, ok := data["created_at"]; ok {
		token.CreatedAt = parseTime(createdAt)
	}
	return nil
}

// GetRefreshTokenByHash retrieves a refresh token by its hash. Returns nil
// when the hash was never stored or the record has been purged.
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*service.RefreshToken, error) {
	query := `SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`
	vars := map[string]interface{}{"hash": hash}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseRefreshTokenRecord(result)
}

// RotateRefreshToken atomically revokes the token identified by oldHash and
// stores next. Both writes run in one SurrealQL transaction: the conditional
// UPDATE claims the old token, a THROW aborts everything if it was already
// claimed, and only then does the CREATE run. A crash or a concurrent
// refresh can therefore never leave both the old and the new token valid.
// Returns database.ErrNotFound when oldHash no longer identifies a valid
// token.
func (r *TokenRepository) RotateRefreshToken(ctx context.Context, oldHash string, next *service.RefreshToken) error {
	tb := database.NewTxBuilder()

	tb.Add(`LET $claimed = UPDATE refresh_token SET revoked = true WHERE token_hash = $hash AND revoked = false AND expires_at > time::now()`,
		map[string]interface{}{"hash": oldHash})
	tb.AddRaw(fmt.Sprintf(`IF array::len($claimed) == 0 { THROW "%s" }`, rotationAbortReason))
	tb.Add(`CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			expires_at: <datetime>$expires_at,
			created_at: time::now(),
			revoked: false
		}`,
		map[string]interface{}{
			"user":       next.UserID,
			"token_hash": next.TokenHash,
			"expires_at": next.ExpiresAt.UTC().Format(time.RFC3339),
		})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		if strings.Contains(err.Error(), rotationAbortReason) {
			return database.ErrNotFound
		}
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: refresh token hash already stored", database.ErrDuplicate)
		}
		return err
	}

	return nil
}

// RevokeRefreshToken marks a refresh token as revoked. Idempotent: revoking
// an unknown or already-revoked hash matches zero records and is not an error.
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE token_hash = $hash`
	vars := map[string]interface{}{"hash": hash}

	return r.db.Execute(ctx, query, vars)
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	query := `UPDATE refresh_token SET revoked = true WHERE user = type::record($user)`
	vars := map[string]interface{}{"user": userID}

	return r.db.Execute(ctx, query, vars)
}

// DeleteExpiredTokens removes all expired refresh tokens
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := `DELETE refresh_token WHERE expires_at < time::now()`

	return r.db.Execute(ctx, query, nil)
}

// DeleteRevokedTokensBefore removes revoked tokens created before the cutoff.
// Revoked rows are retained for a while so reuse of a rotated token stays
// detectable.
func (r *TokenRepository) DeleteRevokedTokensBefore(ctx context.Context, cutoff time.Time) error {
	query := `DELETE refresh_token WHERE revoked = true AND created_at < <datetime>$cutoff`
	vars := map[string]interface{}{"cutoff": cutoff.UTC().Format(time.RFC3339)}

	return r.db.Execute(ctx, query, vars)
}

func parseRefreshTokenRecord(result interface{}) (*service.RefreshToken, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		if result == nil {
			return nil, nil
		}
		return nil, errUnexpectedFormat
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	if userID, ok := data["user"]; ok {
		data["user_id"] = convertSurrealID(userID) // Map "user" to "user_id" for the struct
		delete(data, "user")
	}
	for _, field := range []string{"expires_at", "created_at"} {
		if v, ok := data[field]; ok && v != nil {
			data[field] = parseTime(v)
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var token service.RefreshToken
	if err := json.Unmarshal(jsonBytes, &token); err != nil {
		return nil, err
	}

	return &token, nil
}
