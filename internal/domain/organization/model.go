package organization

import (
	"context"

	"github.com/seatstack/seatstack/internal/types"
)

// Organization is a customer organisation. It owns exactly one Subscription
// for its lifetime and mirrors the billing provider's customer lifecycle via
// HasBillingAccount and Reseller.
type Organization struct {
	// ID is the unique identifier for the organization
	ID string `db:"id" json:"id"`

	// Name is the display name of the organization
	Name string `db:"name" json:"name"`

	// OwnerID is the user who administers the organization
	OwnerID string `db:"owner_id" json:"owner_id"`

	// BillingCustomerID is the customer identifier at the billing provider.
	// Empty until a customer_created event has been processed.
	BillingCustomerID string `db:"billing_customer_id" json:"billing_customer_id"`

	// HasBillingAccount tracks whether a billing-provider customer record
	// currently exists for this organization. Updated in lock-step with
	// customer lifecycle events.
	HasBillingAccount bool `db:"has_billing_account" json:"has_billing_account"`

	// Reseller is the reseller tag recorded from the billing provider,
	// empty when the organization is a direct customer
	Reseller string `db:"reseller" json:"reseller"`

	types.BaseModel
}

// New creates an organization with audit fields from the request context
func New(ctx context.Context, name string, ownerID string) *Organization {
	return &Organization{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION),
		Name:      name,
		OwnerID:   ownerID,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
