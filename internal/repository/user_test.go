package repository_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hireline/api/internal/database"
	"github.com/hireline/api/internal/model"
	"github.com/hireline/api/internal/repository"
	"github.com/hireline/api/internal/testing/fixtures"
	"github.com/hireline/api/internal/testing/testdb"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	user := &model.User{
		Username: "janedoe",
		Email:    "jane@example.com",
		Hash:     "$2a$04$fakehashfortestingonlyabcdefghijklmnopqrstuv",
		Role:     model.UserRoleCandidate,
		Profile:  &model.Profile{Firstname: "Jane", Lastname: "Doe", Phone: "+4917612345678"},
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(user.ID, "user:") {
		t.Fatalf("expected a user record ID, got %q", user.ID)
	}
	if user.CreatedOn.IsZero() {
		t.Error("expected created_on to be populated")
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil {
		t.Fatal("expected user by ID")
	}
	if byID.Email != user.Email || byID.Username != user.Username {
		t.Errorf("roundtrip mismatch: got %q/%q", byID.Email, byID.Username)
	}
	if byID.Hash != user.Hash {
		t.Error("expected stored hash to roundtrip")
	}
	if byID.Profile == nil || byID.Profile.Firstname != "Jane" {
		t.Errorf("expected profile to roundtrip, got %+v", byID.Profile)
	}

	byEmail, err := repo.GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("expected same user by email, got %+v", byEmail)
	}

	byUsername, err := repo.GetByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if byUsername == nil || byUsername.ID != user.ID {
		t.Errorf("expected same user by username, got %+v", byUsername)
	}
}

func TestUserRepositoryGetAbsent(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for absent user, got %+v", user)
	}
}

func TestUserRepositoryUniqueIndexes(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	existing := f.CreateUser(t, fixtures.UserOpts{})

	dupEmail := &model.User{
		Username: "someoneelse",
		Email:    existing.Email,
		Hash:     "$2a$04$fakehashfortestingonlyabcdefghijklmnopqrstuv",
		Role:     model.UserRoleCandidate,
	}
	if err := repo.Create(ctx, dupEmail); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("duplicate email: expected ErrDuplicate, got %v", err)
	}

	dupUsername := &model.User{
		Username: existing.Username,
		Email:    "someoneelse@example.com",
		Hash:     "$2a$04$fakehashfortestingonlyabcdefghijklmnopqrstuv",
		Role:     model.UserRoleCandidate,
	}
	if err := repo.Create(ctx, dupUsername); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("duplicate username: expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	user := f.CreateUser(t, fixtures.UserOpts{})
	newHash := "$2a$04$differenthashfortestingonlyabcdefghijklmnopq"

	if err := repo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Hash != newHash {
		t.Errorf("expected updated hash, got %q", stored.Hash)
	}
}

func TestUserRepositorySetRoleAndTouchLogin(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	user := f.CreateUser(t, fixtures.UserOpts{})

	if err := repo.SetRole(ctx, user.ID, model.UserRoleRecruiter); err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if err := repo.TouchLogin(ctx, user.ID); err != nil {
		t.Fatalf("TouchLogin failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Role != model.UserRoleRecruiter {
		t.Errorf("expected recruiter role, got %q", stored.Role)
	}
	if stored.LoginOn == nil {
		t.Error("expected login_on to be set")
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewUserRepository(tdb.DB)
	ctx := tdb.Ctx()

	user := f.CreateUser(t, fixtures.UserOpts{})

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored != nil {
		t.Errorf("expected user to be gone, got %+v", stored)
	}
}
