package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
	"github.com/hireline/api/pkg/token"
)

// ============================================================================
// In-memory UserRepository
// ============================================================================

// memUserRepo is a stateful in-memory user store. It enforces the same
// uniqueness rules as the database schema so duplicate races surface the
// same way they would in production.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*model.User // by ID

	createErr error // forced error for Create, when set
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func copyUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	if u.LoginOn != nil {
		t := *u.LoginOn
		c.LoginOn = &t
	}
	return &c
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return database.ErrDuplicate
		}
	}

	r.nextID++
	user.ID = fmt.Sprintf("user:%d", r.nextID)
	user.CreatedOn = time.Now()
	user.UpdatedOn = user.CreatedOn
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyUser(r.users[id]), nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	u.Hash = hash
	u.UpdatedOn = time.Now()
	return nil
}

func (r *memUserRepo) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	u.Role = role
	u.UpdatedOn = time.Now()
	return nil
}

func (r *memUserRepo) TouchLogin(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	now := time.Now()
	u.LoginOn = &now
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// ============================================================================
// In-memory TokenRepository
// ============================================================================

// memTokenRepo is a stateful in-memory refresh token ledger. Rotation is
// guarded by the mutex and claims the old token conditionally, matching the
// single-winner semantics of the real transaction.
type memTokenRepo struct {
	mu     sync.Mutex
	nextID int
	tokens map[string]*RefreshToken // by token hash

	createErr error // forced error for CreateRefreshToken, when set
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*RefreshToken)}
}

func copyToken(t *RefreshToken) *RefreshToken {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (r *memTokenRepo) CreateRefreshToken(ctx context.Context, tok *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.tokens[tok.TokenHash]; exists {
		return database.ErrDuplicate
	}

	r.nextID++
	tok.ID = fmt.Sprintf("refresh_token:%d", r.nextID)
	r.tokens[tok.TokenHash] = copyToken(tok)
	return nil
}

func (r *memTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyToken(r.tokens[hash]), nil
}

func (r *memTokenRepo) RotateRefreshToken(ctx context.Context, oldHash string, next *RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.tokens[oldHash]
	if !ok || old.Revoked || time.Now().After(old.ExpiresAt) {
		return database.ErrNotFound
	}

	old.Revoked = true
	r.nextID++
	next.ID = fmt.Sprintf("refresh_token:%d", r.nextID)
	r.tokens[next.TokenHash] = copyToken(next)
	return nil
}

func (r *memTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tok, ok := r.tokens[hash]; ok {
		tok.Revoked = true
	}
	return nil
}

func (r *memTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tok := range r.tokens {
		if tok.UserID == userID {
			tok.Revoked = true
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, tok := range r.tokens {
		if time.Now().After(tok.ExpiresAt) {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func (r *memTokenRepo) DeleteRevokedTokensBefore(ctx context.Context, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, tok := range r.tokens {
		if tok.Revoked && tok.CreatedAt.Before(cutoff) {
			delete(r.tokens, hash)
		}
	}
	return nil
}

// count returns live (unrevoked, unexpired) token count for a user
func (r *memTokenRepo) count(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, tok := range r.tokens {
		if tok.UserID == userID && !tok.Revoked && time.Now().Before(tok.ExpiresAt) {
			n++
		}
	}
	return n
}

// ============================================================================
// Test Helpers
// ============================================================================

const testSecret = "unit-test-secret-0123456789abcdef"

type testEnv struct {
	users  *memUserRepo
	tokens *memTokenRepo
	auth   *AuthService
	token  *TokenService
}

func newTestEnv(t interface{ Fatalf(string, ...interface{}) }) *testEnv {
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret: testSecret,
		Issuer:       "hireline-test",
	})
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}

	users := newMemUserRepo()
	tokens := newMemTokenRepo()

	tokenService := NewTokenService(TokenServiceConfig{
		Issuer:    issuer,
		TokenRepo: tokens,
	})

	return &testEnv{
		users:  users,
		tokens: tokens,
		token:  tokenService,
		auth: NewAuthService(AuthServiceConfig{
			UserRepo:     users,
			TokenService: tokenService,
		}),
	}
}

func validSignup() SignupRequest {
	return SignupRequest{
		Username: "janedoe",
		Email:    "jane@example.com",
		Password: "a-strong-password",
	}
}
