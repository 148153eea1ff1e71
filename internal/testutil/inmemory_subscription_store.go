package testutil

import (
	"context"

	"github.com/seatstack/seatstack/internal/domain/subscription"
	ierr "github.com/seatstack/seatstack/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			WithHint("Subscription data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, sub)
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, subscription.NewNotFoundError(id)
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) GetByOrganizationID(ctx context.Context, organizationID string) (*subscription.Subscription, error) {
	subs, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return sub.OrganizationID == organizationID
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, subscription.NewNotFoundError(organizationID)
	}
	return subs[0], nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := s.InMemoryStore.Update(ctx, sub.ID, sub); err != nil {
		return subscription.NewNotFoundError(sub.ID)
	}
	return nil
}

func (s *InMemorySubscriptionStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return subscription.NewNotFoundError(id)
	}
	return nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context) ([]*subscription.Subscription, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *subscription.Subscription) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}
