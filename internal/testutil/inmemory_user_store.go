package testutil

import (
	"context"

	"github.com/seatstack/seatstack/internal/domain/user"
	ierr "github.com/seatstack/seatstack/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			WithHint("User data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("user %s not found", id).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewErrorf("user with email %s not found", email).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return users[0], nil
}

func (s *InMemoryUserStore) ListByOrganization(ctx context.Context, organizationID string) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.OrganizationID == organizationID
	}, func(i, j *user.User) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if err := s.InMemoryStore.Update(ctx, u.ID, u); err != nil {
		return ierr.NewErrorf("user %s not found", u.ID).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryUserStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewErrorf("user %s not found", id).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
