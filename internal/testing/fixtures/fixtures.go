// Package fixtures provides test data factories for integration testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option structs. Factories handle database insertion
// and return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t, fixtures.UserOpts{})
//	token := f.CreateRefreshToken(t, user, fixtures.TokenOpts{})
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
	"github.com/hireline/api/internal/repository"
	"github.com/hireline/api/internal/service"
	"github.com/hireline/api/pkg/token"
)

// DefaultPassword is the plaintext password behind every fixture user's hash
// unless UserOpts.Password overrides it.
const DefaultPassword = "fixture-password-1"

// Factory creates test entities in the database
type Factory struct {
	db    database.Database
	users *repository.UserRepository
	toks  *repository.TokenRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		db:    db,
		users: repository.NewUserRepository(db),
		toks:  repository.NewTokenRepository(db),
	}
}

// randomID generates a random hex suffix for unique fixture names
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx() context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	_ = cancel
	return c
}

// UserOpts customizes user creation
type UserOpts struct {
	Username string
	Email    string
	Password string
	Role     model.UserRole
	Profile  *model.Profile
}

// CreateUser inserts a user with sensible defaults. Each call without
// explicit Username/Email gets unique values so fixtures never collide on
// the unique indexes.
func (f *Factory) CreateUser(t *testing.T, opts UserOpts) *model.User {
	t.Helper()

	id := randomID()
	if opts.Username == "" {
		opts.Username = "user_" + id
	}
	if opts.Email == "" {
		opts.Email = fmt.Sprintf("user_%s@example.com", id)
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.Role == "" {
		opts.Role = model.UserRoleCandidate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{
		Username: opts.Username,
		Email:    opts.Email,
		Hash:     string(hash),
		Role:     opts.Role,
		Profile:  opts.Profile,
	}
	if err := f.users.Create(ctx(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}

	return user
}

// TokenOpts customizes refresh token creation
type TokenOpts struct {
	ExpiresAt time.Time
	Revoked   bool
}

// CreateRefreshToken stores a refresh token for the user and returns the
// ledger record alongside the plaintext token value.
func (f *Factory) CreateRefreshToken(t *testing.T, user *model.User, opts TokenOpts) (*service.RefreshToken, string) {
	t.Helper()

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("fixtures: failed to generate refresh token: %v", err)
	}
	plaintext := hex.EncodeToString(raw)

	if opts.ExpiresAt.IsZero() {
		opts.ExpiresAt = time.Now().Add(24 * time.Hour)
	}

	rec := &service.RefreshToken{
		UserID:    user.ID,
		TokenHash: token.HashRefreshToken(plaintext),
		ExpiresAt: opts.ExpiresAt,
	}
	if err := f.toks.CreateRefreshToken(ctx(), rec); err != nil {
		t.Fatalf("fixtures: failed to create refresh token: %v", err)
	}

	if opts.Revoked {
		if err := f.toks.RevokeRefreshToken(ctx(), rec.TokenHash); err != nil {
			t.Fatalf("fixtures: failed to revoke refresh token: %v", err)
		}
		rec.Revoked = true
	}

	return rec, plaintext
}
