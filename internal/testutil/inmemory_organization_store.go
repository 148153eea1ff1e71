package testutil

import (
	"context"

	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
)

// InMemoryOrganizationStore implements organization.Repository
type InMemoryOrganizationStore struct {
	*InMemoryStore[*organization.Organization]
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{
		InMemoryStore: NewInMemoryStore[*organization.Organization](),
	}
}

func (s *InMemoryOrganizationStore) Create(ctx context.Context, org *organization.Organization) error {
	if org == nil {
		return ierr.NewError("organization cannot be nil").
			WithHint("Organization data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, org.ID, org)
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	org, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("organization %s not found", id).
			WithHint("Organization not found").
			Mark(ierr.ErrNotFound)
	}
	return org, nil
}

func (s *InMemoryOrganizationStore) GetByBillingCustomerID(ctx context.Context, billingCustomerID string) (*organization.Organization, error) {
	orgs, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, org *organization.Organization, _ interface{}) bool {
		return org.BillingCustomerID == billingCustomerID && billingCustomerID != ""
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, ierr.NewErrorf("no organization for billing customer %s", billingCustomerID).
			WithHint("Organization not found").
			Mark(ierr.ErrNotFound)
	}
	return orgs[0], nil
}

func (s *InMemoryOrganizationStore) Update(ctx context.Context, org *organization.Organization) error {
	if err := s.InMemoryStore.Update(ctx, org.ID, org); err != nil {
		return ierr.NewErrorf("organization %s not found", org.ID).
			WithHint("Organization not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryOrganizationStore) List(ctx context.Context) ([]*organization.Organization, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *organization.Organization) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
}

func (s *InMemoryOrganizationStore) Delete(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return ierr.NewErrorf("organization %s not found", id).
			WithHint("Organization not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
