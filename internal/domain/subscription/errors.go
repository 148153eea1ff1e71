package subscription

import (
	ierr "github.com/seatstack/seatstack/internal/errors"
)

// NewInvalidAssignmentError is returned when a user outside the
// subscription's organization is assigned to one of its accounts
func NewInvalidAssignmentError(userID, organizationID string) error {
	return ierr.NewError("user does not belong to the subscription's organization").
		WithHint("Accounts can only be assigned to users of the same organization").
		WithReportableDetails(map[string]any{
			"user_id":         userID,
			"organization_id": organizationID,
		}).
		Mark(ierr.ErrInvalidOperation)
}

// NewAccountNotFoundError is returned when the referenced account does not
// exist on the subscription
func NewAccountNotFoundError(accountID string) error {
	return ierr.NewError("account not found").
		WithHint("Account not found on this subscription").
		WithReportableDetails(map[string]any{
			"account_id": accountID,
		}).
		Mark(ierr.ErrNotFound)
}

// NewNotFoundError is returned when a subscription cannot be resolved
func NewNotFoundError(id string) error {
	return ierr.NewError("subscription not found").
		WithHint("Subscription not found").
		WithReportableDetails(map[string]any{
			"id": id,
		}).
		Mark(ierr.ErrNotFound)
}
