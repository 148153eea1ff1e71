package subscription

import (
	"context"
	"time"

	"github.com/seatstack/seatstack/internal/types"
)

// Account is one allocatable license seat. It belongs to exactly one
// subscription from creation (referenced by id, never by back-pointer) and is
// optionally assigned to one user. Its active status is the owning
// subscription's, not tracked independently.
type Account struct {
	// ID is the unique identifier for the account
	ID string `db:"id" json:"id"`

	// SubscriptionID is the owning subscription, immutable
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// Activated is set at creation and reset whenever the account is
	// (re)assigned to a user
	Activated time.Time `db:"activated" json:"activated"`

	// UserID is the assigned user, nil while the seat is free
	UserID *string `db:"user_id" json:"user_id"`

	types.BaseModel
}

func newAccount(ctx context.Context, subscriptionID string) *Account {
	return &Account{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		SubscriptionID: subscriptionID,
		Activated:      time.Now().UTC(),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// IsUnassigned reports whether the seat is free
func (a *Account) IsUnassigned() bool {
	return a.UserID == nil
}

// RemoveAssignment frees the seat and returns the account for chaining
func (a *Account) RemoveAssignment() *Account {
	a.UserID = nil
	a.UpdatedAt = time.Now().UTC()
	return a
}

func (a *Account) assign(userID string) {
	now := time.Now().UTC()
	a.UserID = &userID
	a.Activated = now
	a.UpdatedAt = now
}
