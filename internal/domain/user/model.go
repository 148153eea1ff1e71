package user

import (
	"context"

	"github.com/seatstack/seatstack/internal/types"
)

// User is a member of an organization. A user may hold at most one account
// (seat) of the organization's subscription.
type User struct {
	ID             string `db:"id" json:"id"`
	OrganizationID string `db:"organization_id" json:"organization_id"`
	Email          string `db:"email" json:"email"`
	Name           string `db:"name" json:"name"`

	types.BaseModel
}

func New(ctx context.Context, organizationID, email, name string) *User {
	return &User{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		OrganizationID: organizationID,
		Email:          email,
		Name:           name,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}
