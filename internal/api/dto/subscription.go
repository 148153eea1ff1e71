package dto

import (
	"time"

	"github.com/seatstack/seatstack/internal/domain/subscription"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/types"
)

type SubscriptionResponse struct {
	ID               string                 `json:"id"`
	OrganizationID   string                 `json:"organization_id"`
	SubscriptionType types.SubscriptionType `json:"subscription_type"`
	PaymentPlan      *types.PaymentPlan     `json:"payment_plan,omitempty"`
	PaymentType      *types.PaymentType     `json:"payment_type,omitempty"`
	Since            time.Time              `json:"since"`
	Until            *time.Time             `json:"until,omitempty"`
	PostalBills      bool                   `json:"postal_bills"`
	Active           bool                   `json:"active"`

	AvailableAccounts int `json:"available_accounts"`
	UsedAccounts      int `json:"used_accounts"`
	ActiveAccounts    int `json:"active_accounts"`

	Accounts []*AccountResponse `json:"accounts"`
}

type AccountResponse struct {
	ID             string    `json:"id"`
	SubscriptionID string    `json:"subscription_id"`
	Activated      time.Time `json:"activated"`
	UserID         *string   `json:"user_id,omitempty"`
	Active         bool      `json:"active"`
}

// NewSubscriptionResponse converts a Subscription aggregate into its DTO
func NewSubscriptionResponse(sub *subscription.Subscription) *SubscriptionResponse {
	accounts := make([]*AccountResponse, 0, len(sub.Accounts))
	for _, a := range sub.Accounts {
		accounts = append(accounts, NewAccountResponse(sub, a))
	}
	return &SubscriptionResponse{
		ID:                sub.ID,
		OrganizationID:    sub.OrganizationID,
		SubscriptionType:  sub.SubscriptionType,
		PaymentPlan:       sub.PaymentPlan,
		PaymentType:       sub.PaymentType,
		Since:             sub.Since,
		Until:             sub.Until,
		PostalBills:       sub.PostalBills,
		Active:            sub.IsActive(),
		AvailableAccounts: sub.CountAvailableAccounts(),
		UsedAccounts:      sub.CountUsedAccounts(),
		ActiveAccounts:    sub.CountActiveAccounts(),
		Accounts:          accounts,
	}
}

// NewAccountResponse converts an Account into its DTO. Account activity is
// the owning subscription's activity.
func NewAccountResponse(sub *subscription.Subscription, a *subscription.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		SubscriptionID: a.SubscriptionID,
		Activated:      a.Activated,
		UserID:         a.UserID,
		Active:         sub.IsActive(),
	}
}

type UpgradeSubscriptionRequest struct {
	SubscriptionType types.SubscriptionType `json:"subscription_type" binding:"required"`
	Until            *time.Time             `json:"until,omitempty"`
	PaymentType      *types.PaymentType     `json:"payment_type,omitempty"`
	PaymentPlan      *types.PaymentPlan     `json:"payment_plan,omitempty"`
}

func (r *UpgradeSubscriptionRequest) Validate() error {
	if err := r.SubscriptionType.Validate(); err != nil {
		return err
	}
	if r.PaymentType != nil {
		if err := r.PaymentType.Validate(); err != nil {
			return err
		}
	}
	if r.PaymentPlan != nil {
		if err := r.PaymentPlan.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SetPostalBillsRequest struct {
	PostalBills bool `json:"postal_bills"`
}

type AssignAccountRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (r *AssignAccountRequest) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("user_id is required").
			WithHint("User ID is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListAccountsResponse is a paged account listing
type ListAccountsResponse struct {
	Items []*AccountResponse `json:"items"`
	Total int                `json:"total"`
}

type ActivationLinkResponse struct {
	AccountID string `json:"account_id"`
	URL       string `json:"url"`
	Token     string `json:"token"`
}
