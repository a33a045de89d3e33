package model

import "testing"

func TestUserRole_Valid(t *testing.T) {
	valid := []UserRole{UserRoleCandidate, UserRoleRecruiter, UserRoleAdmin}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("expected role %q to be valid", r)
		}
	}

	invalid := []UserRole{"", "superuser", "Candidate", "ADMIN"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("expected role %q to be invalid", r)
		}
	}
}

func TestProfile_FullName(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    string
	}{
		{"nil profile", nil, ""},
		{"both parts", &Profile{Firstname: "Alice", Lastname: "Nguyen"}, "Alice Nguyen"},
		{"first only", &Profile{Firstname: "Alice"}, "Alice"},
		{"last only", &Profile{Lastname: "Nguyen"}, "Nguyen"},
		{"whitespace trimmed", &Profile{Firstname: "  Alice ", Lastname: " Nguyen  "}, "Alice Nguyen"},
		{"empty", &Profile{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.FullName(); got != tc.want {
				t.Errorf("FullName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUser_FullName_FallsBackToUsername(t *testing.T) {
	u := &User{Username: "alice"}
	if got := u.FullName(); got != "alice" {
		t.Errorf("FullName() = %q, want username fallback", got)
	}

	u.Profile = &Profile{Firstname: "Alice", Lastname: "Nguyen"}
	if got := u.FullName(); got != "Alice Nguyen" {
		t.Errorf("FullName() = %q, want profile-derived name", got)
	}
}

func TestUser_RoleHelpers(t *testing.T) {
	admin := &User{Role: UserRoleAdmin}
	if !admin.IsAdmin() || !admin.IsRecruiter() {
		t.Error("admin should satisfy both IsAdmin and IsRecruiter")
	}

	recruiter := &User{Role: UserRoleRecruiter}
	if recruiter.IsAdmin() {
		t.Error("recruiter should not be admin")
	}
	if !recruiter.IsRecruiter() {
		t.Error("recruiter should satisfy IsRecruiter")
	}

	candidate := &User{Role: UserRoleCandidate}
	if candidate.IsAdmin() || candidate.IsRecruiter() {
		t.Error("candidate should satisfy neither role helper")
	}
}
