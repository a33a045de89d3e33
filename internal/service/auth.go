package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128

	// Username constraints
	minUsernameLength = 3
	maxUsernameLength = 30
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error
	SetRole(ctx context.Context, userID string, role model.UserRole) error
	TouchLogin(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}

// AuthService handles signup, login, session refresh, and credential changes
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
	}
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Username string
	Email    string
	Password string
	Role     model.UserRole // candidate (default) or recruiter
	Profile  *model.Profile
}

// SignupResult represents a successful signup
type SignupResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Signup creates a new user account and opens its first session.
// The password is validated before hashing; the uniqueness of email and
// username is checked up front and again by the database's unique indexes,
// so a race between two signups with the same email resolves to exactly one
// account.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	username := strings.TrimSpace(req.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleCandidate
	}
	// Admin accounts are never self-service.
	if !role.Valid() || role == model.UserRoleAdmin {
		return nil, ErrInvalidRole
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Hash:     hash,
		Role:     role,
		Profile:  req.Profile,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &SignupResult{
		User:      user,
		TokenPair: tokenPair,
	}, nil
}

// LoginResult represents a successful login
type LoginResult struct {
	User      *model.User
	TokenPair *TokenPair
}

// Login authenticates a user with email/password and opens a new session.
// Prior sessions stay valid: logging in from a second device does not revoke
// the first. Unknown email and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Best-effort; a failed timestamp update must not fail the login.
	_ = s.userRepo.TouchLogin(ctx, user.ID)

	return &LoginResult{
		User:      user,
		TokenPair: tokenPair,
	}, nil
}

// Refresh exchanges a refresh token for a new token pair, rotating the
// refresh token. Every unusable-token case (never stored, expired, revoked,
// lost rotation race, owner deleted) collapses to ErrInvalidCredentials so
// the caller learns nothing beyond "start over".
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenHash := hashRefreshToken(refreshToken)

	stored, err := s.tokenService.tokenRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil || stored == nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokenService.RefreshTokenPair(ctx, refreshToken, user)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) ||
			errors.Is(err, ErrRefreshTokenExpired) ||
			errors.Is(err, ErrRefreshTokenRevoked) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return pair, nil
}

// Logout revokes a single session. Idempotent: logging out twice, or with a
// token that was never issued, is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenService.RevokeRefreshToken(ctx, refreshToken)
}

// LogoutAll revokes every session for a user (logout from all devices)
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// ChangePassword verifies the old password, re-hashes the new one, and
// revokes every existing session for the user. Invalidating all sessions on
// a password change is deliberate: a user changing a possibly-compromised
// password wants the attacker's sessions dead too.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !checkPassword(oldPassword, user.Hash) {
		return ErrInvalidCredentials
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokenService.RevokeAllUserTokens(ctx, userID)
}

// DeleteAccount verifies the password, revokes every session, and deletes
// the account. Token revocation runs before the user record is removed so a
// crash in between cannot leave live sessions pointing at a missing user.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !checkPassword(password, user.Hash) {
		return ErrInvalidCredentials
	}

	if err := s.tokenService.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, userID)
}

// SetUserRole changes a user's role. Roles are immutable through every other
// path; the HTTP layer restricts this operation to admins.
func (s *AuthService) SetUserRole(ctx context.Context, userID string, role model.UserRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.userRepo.SetRole(ctx, userID, role)
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// VerifyAccessToken validates an access token and returns the claims.
// The authorization middleware calls this per protected request; expiry and
// invalidity remain distinguishable through the pkg/token sentinel errors.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.TokenClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	return &model.TokenClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}
