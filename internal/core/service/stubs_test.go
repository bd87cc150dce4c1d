package service

import (
	"context"
	"sort"
	"time"

	"github.com/userhub/account-system/internal/core/domain"
	"github.com/userhub/account-system/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = domain.NewRoleSet(u.Roles.Values()...)
	if u.LastLogin != nil {
		t := *u.LastLogin
		clone.LastLogin = &t
	}
	return &clone
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListFilter) ([]domain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *cloneUser(r.users[id]))
	}

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.IsActive = user.IsActive
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) RecordLogin(_ context.Context, id int64, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubIdentityCache struct {
	entries       map[int64]*domain.User
	sets          int
	invalidations int
}

func newStubIdentityCache() *stubIdentityCache {
	return &stubIdentityCache{entries: make(map[int64]*domain.User)}
}

func (c *stubIdentityCache) Get(_ context.Context, id int64) (*domain.User, error) {
	return cloneUser(c.entries[id]), nil
}

func (c *stubIdentityCache) Set(_ context.Context, user *domain.User) error {
	c.sets++
	c.entries[user.ID] = cloneUser(user)
	return nil
}

func (c *stubIdentityCache) Invalidate(_ context.Context, id int64) error {
	c.invalidations++
	delete(c.entries, id)
	return nil
}
