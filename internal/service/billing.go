package service

import (
	"context"
	"encoding/json"

	ierr "github.com/seatstack/seatstack/internal/errors"
)

// BillingService exposes the interactive billing provider surfaces: hosted
// checkout and the self-service portal. Unlike webhook processing these calls
// surface failures to the caller.
type BillingService interface {
	GetCheckoutPage(ctx context.Context, organizationID, planID string) (json.RawMessage, error)
	GetPortal(ctx context.Context, organizationID string) (json.RawMessage, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) GetCheckoutPage(ctx context.Context, organizationID, planID string) (json.RawMessage, error) {
	if err := s.requireEnabled(); err != nil {
		return nil, err
	}

	if !s.PlanTable.Known(planID) {
		return nil, ierr.NewError("unknown plan").
			WithHint("The requested plan is not available").
			WithReportableDetails(map[string]any{"plan_id": planID}).
			Mark(ierr.ErrValidation)
	}

	org, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	page, err := s.BillingClient.GetCheckoutPage(ctx, planID, org)
	if err != nil {
		s.Logger.Errorw("failed to fetch checkout page",
			"organization_id", organizationID,
			"plan_id", planID,
			"error", err)
		return nil, err
	}
	return page, nil
}

func (s *billingService) GetPortal(ctx context.Context, organizationID string) (json.RawMessage, error) {
	if err := s.requireEnabled(); err != nil {
		return nil, err
	}

	org, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	portal, err := s.BillingClient.GetPortal(ctx, org)
	if err != nil {
		s.Logger.Errorw("failed to fetch billing portal",
			"organization_id", organizationID,
			"error", err)
		return nil, err
	}
	return portal, nil
}

func (s *billingService) requireEnabled() error {
	if !s.Config.Billing.Enabled {
		return ierr.NewError("billing integration is disabled").
			WithHint("Billing is not enabled for this deployment").
			Mark(ierr.ErrNotImplemented)
	}
	return nil
}
