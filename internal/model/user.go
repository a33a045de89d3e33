package model

import (
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleCandidate UserRole = "candidate" // Default role; applies to job postings
	UserRoleRecruiter UserRole = "recruiter" // Posts jobs, reviews applications
	UserRoleAdmin     UserRole = "admin"     // Full access including role changes
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleCandidate, UserRoleRecruiter, UserRoleAdmin:
		return true
	}
	return false
}

// Profile is the optional structured sub-record attached to a user account.
// It carries no invariants beyond its field types.
type Profile struct {
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// FullName derives a display name from the profile fields. Either name part
// may be empty.
func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(p.Firstname) + " " + strings.TrimSpace(p.Lastname))
}

// User represents a user account
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Hash      string     `json:"-"` // Never expose password hash
	Role      UserRole   `json:"role"`
	Profile   *Profile   `json:"profile,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	LoginOn   *time.Time `json:"login_on,omitempty"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsRecruiter returns true if the user has recruiter or admin role
func (u *User) IsRecruiter() bool {
	return u.Role == UserRoleRecruiter || u.Role == UserRoleAdmin
}

// FullName derives a display name from the nested profile sub-record.
// It never reads name parts from the user record itself.
func (u *User) FullName() string {
	if name := u.Profile.FullName(); name != "" {
		return name
	}
	return u.Username
}

// TokenClaims represents extracted access-token claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
