package dto

import (
	"time"

	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
)

type CreateOrganizationRequest struct {
	Name       string `json:"name" binding:"required"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
	OwnerName  string `json:"owner_name"`
}

func (r *CreateOrganizationRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("organization name is required").
			WithHint("Organization name is required").
			Mark(ierr.ErrValidation)
	}
	if r.OwnerEmail == "" {
		return ierr.NewError("owner email is required").
			WithHint("Owner email is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type OrganizationResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OwnerID           string    `json:"owner_id"`
	HasBillingAccount bool      `json:"has_billing_account"`
	Reseller          string    `json:"reseller,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

func NewOrganizationResponse(org *organization.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:                org.ID,
		Name:              org.Name,
		OwnerID:           org.OwnerID,
		HasBillingAccount: org.HasBillingAccount,
		Reseller:          org.Reseller,
		CreatedAt:         org.CreatedAt,
		UpdatedAt:         org.UpdatedAt,
	}
}
