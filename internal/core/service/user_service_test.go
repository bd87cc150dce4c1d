package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

func newUserService(repo *stubUserRepo, cache *stubIdentityCache) *UserService {
	return NewUserService(repo, NewBcryptHasher(), cache, zerolog.Nop())
}

func seedAccount(t *testing.T, repo *stubUserRepo, username, password string) *domain.User {
	t.Helper()
	hash, err := NewBcryptHasher().Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		IsActive:     true,
		Roles:        domain.NewRoleSet(),
		DateJoined:   time.Now().UTC(),
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	svc := newUserService(repo, cache)

	seeded := seedAccount(t, repo, "alice", "pw123!")

	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.UpdateProfileInput{
		Email:     "new@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Email != "new@example.com" || updated.FirstName != "Alice" {
		t.Fatalf("profile not updated: %+v", updated)
	}
	if updated.Username != "alice" || updated.ID != seeded.ID {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidations)
	}
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc := newUserService(newStubUserRepo(), newStubIdentityCache())

	if _, err := svc.UpdateProfile(context.Background(), 99, ports.UpdateProfileInput{Email: "x@example.com"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	svc := newUserService(repo, cache)
	hasher := NewBcryptHasher()

	seeded := seedAccount(t, repo, "alice", "pw123!")

	if err := svc.ChangePassword(context.Background(), seeded.ID, "pw123!", "newpass1"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !hasher.Verify("newpass1", stored.PasswordHash) {
		t.Fatalf("new password does not verify")
	}
	if hasher.Verify("pw123!", stored.PasswordHash) {
		t.Fatalf("old password still verifies")
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidations)
	}
}

func TestUserService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubIdentityCache())

	seeded := seedAccount(t, repo, "alice", "pw123!")

	if err := svc.ChangePassword(context.Background(), seeded.ID, "wrong", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// nothing was persisted
	stored, _ := repo.GetByID(context.Background(), seeded.ID)
	if !NewBcryptHasher().Verify("pw123!", stored.PasswordHash) {
		t.Fatalf("password changed despite rejection")
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	svc := newUserService(repo, cache)

	seeded := seedAccount(t, repo, "alice", "pw123!")

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), seeded.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidations)
	}

	if err := svc.Delete(context.Background(), seeded.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_List_ClampsPaging(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, newStubIdentityCache())

	for _, name := range []string{"a", "b", "c"} {
		seedAccount(t, repo, name, "pw123!")
	}

	users, err := svc.List(context.Background(), ports.ListFilter{Page: 0, Limit: -5})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}

	users, err = svc.List(context.Background(), ports.ListFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user on second page, got %d", len(users))
	}
}
