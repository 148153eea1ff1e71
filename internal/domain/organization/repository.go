package organization

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	GetByBillingCustomerID(ctx context.Context, billingCustomerID string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	List(ctx context.Context) ([]*Organization, error)
	Delete(ctx context.Context, id string) error
}
