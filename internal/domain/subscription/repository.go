package subscription

import (
	"context"
)

// Repository persists the Subscription aggregate. Get/GetByOrganizationID
// load the subscription with its accounts; Update persists the subscription
// row and reconciles the account rows in the same transaction. Mutating
// callers are expected to run inside postgres.IClient.WithTx so the aggregate
// row is locked for the duration of the read-modify-write.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	GetByOrganizationID(ctx context.Context, organizationID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Subscription, error)
}
