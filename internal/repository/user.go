package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Email and username uniqueness is enforced by
// unique indexes; a violation is returned as database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	role := user.Role
	if role == "" {
		role = model.UserRoleCandidate
	}

	query := `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: $hash,
			role: $role,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"hash":     user.Hash,
		"role":     role,
	}

	// The profile field is option<object>: omit it entirely when absent
	// rather than writing an explicit NONE.
	if user.Profile != nil {
		query = `
		CREATE user CONTENT {
			username: $username,
			email: $email,
			hash: $hash,
			role: $role,
			profile: $profile,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
		vars["profile"] = profileToVar(user.Profile)
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or username already exists", database.ErrDuplicate)
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.Role = role
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID. Returns nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByEmail retrieves a user by email. Returns nil when no account uses it.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// GetByUsername retrieves a user by username. Returns nil when no account uses it.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT * FROM user WHERE username = $username LIMIT 1`
	vars := map[string]interface{}{"username": username}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserRecord(result)
}

// UpdatePassword replaces a user's password hash. The hash must come from
// the service-layer hasher; this method never sees plaintext.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE type::record($id) SET hash = $hash, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"hash": hash,
	}

	return r.db.Execute(ctx, query, vars)
}

// SetRole updates a user's role
func (r *UserRepository) SetRole(ctx context.Context, userID string, role model.UserRole) error {
	query := `UPDATE type::record($id) SET role = $role, updated_on = time::now()`
	vars := map[string]interface{}{
		"id":   userID,
		"role": role,
	}

	return r.db.Execute(ctx, query, vars)
}

// TouchLogin records the time of a successful login
func (r *UserRepository) TouchLogin(ctx context.Context, userID string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	vars := map[string]interface{}{"id": userID}

	return r.db.Execute(ctx, query, vars)
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": id}

	return r.db.Execute(ctx, query, vars)
}

// Helper functions

func profileToVar(p *model.Profile) map[string]interface{} {
	return map[string]interface{}{
		"firstname": p.Firstname,
		"lastname":  p.Lastname,
		"phone":     p.Phone,
	}
}

type createdRecord struct {
	ID        string
	CreatedOn time.Time
	UpdatedOn time.Time
}

func extractCreatedRecord(result []interface{}) (*createdRecord, error) {
	if len(result) == 0 {
		return nil, errors.New("no result returned")
	}

	data, ok := unwrapRecord(result[0])
	if !ok {
		return nil, errUnexpectedFormat
	}

	record := &createdRecord{}
	if id, ok := data["id"]; ok {
		record.ID = convertSurrealID(id)
	}
	if createdOn, ok := data["created_on"]; ok {
		record.CreatedOn = parseTime(createdOn)
	}
	if updatedOn, ok := data["updated_on"]; ok {
		record.UpdatedOn = parseTime(updatedOn)
	}

	return record, nil
}

func parseUserRecord(result interface{}) (*model.User, error) {
	data, ok := unwrapRecord(result)
	if !ok {
		if result == nil {
			return nil, nil
		}
		return nil, errUnexpectedFormat
	}

	// Normalize the SurrealDB record ID to a string before decoding.
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}

	// Extract hash before the JSON round trip (User.Hash has json:"-").
	var hash string
	if h, ok := data["hash"].(string); ok {
		hash = h
	}

	// Normalize datetimes the client may return as custom types.
	for _, field := range []string{"created_on", "updated_on", "login_on"} {
		if v, ok := data[field]; ok && v != nil {
			data[field] = parseTime(v)
		}
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(jsonBytes, &user); err != nil {
		return nil, err
	}

	user.Hash = hash
	return &user, nil
}
