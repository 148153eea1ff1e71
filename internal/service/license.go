package service

import (
	"context"
	"time"

	"github.com/seatstack/seatstack/internal/api/dto"
	"github.com/seatstack/seatstack/internal/billing"
	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/types"
)

// LicenseEventService translates billing provider events into subscription
// state transitions. Every transition is a full-state overwrite, so
// re-processing an event is safe and the webhook path can acknowledge
// unconditionally.
type LicenseEventService interface {
	// HandleWebhookEvent processes the event behind the given id and always
	// returns an acknowledgement. Internal failures are logged, never
	// propagated, so the provider does not retry-storm on transient errors.
	HandleWebhookEvent(ctx context.Context, eventID string) *dto.WebhookAckResponse

	// ProcessEvent re-fetches the event by id and applies its transition.
	// Unlike the webhook path it reports failures to the caller.
	ProcessEvent(ctx context.Context, eventID string) error
}

type licenseEventService struct {
	ServiceParams
}

func NewLicenseEventService(params ServiceParams) LicenseEventService {
	return &licenseEventService{
		ServiceParams: params,
	}
}

func (s *licenseEventService) HandleWebhookEvent(ctx context.Context, eventID string) *dto.WebhookAckResponse {
	if err := s.ProcessEvent(ctx, eventID); err != nil {
		s.Logger.Errorw("billing event processing failed",
			"event_id", eventID,
			"error", err)
	}
	return dto.NewWebhookAckResponse()
}

func (s *licenseEventService) ProcessEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return ierr.NewError("event id is required").
			WithHint("Event ID is required").
			Mark(ierr.ErrValidation)
	}

	// The webhook body is never trusted: the authoritative event is fetched
	// from the provider by id.
	event, err := s.BillingClient.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	org, err := s.resolveOrganization(ctx, event)
	if err != nil {
		return err
	}

	s.Logger.Infow("processing billing event",
		"event_id", event.ID,
		"event_type", event.Type,
		"organization_id", org.ID)

	switch event.Type {
	case types.BillingEventCustomerCreated:
		return s.handleCustomerCreated(ctx, event, org)
	case types.BillingEventCustomerDeleted:
		return s.handleCustomerDeleted(ctx, event, org)
	case types.BillingEventSubscriptionCreated, types.BillingEventSubscriptionChanged:
		return s.handleSubscriptionChanged(ctx, event, org)
	case types.BillingEventSubscriptionCancelled:
		return s.handleSubscriptionCancelled(ctx, event, org)
	default:
		s.Logger.Infow("unhandled billing event type",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}
}

// resolveOrganization maps the event's customer to an organization, first by
// the recorded billing customer id, then by the checkout reference. Events
// without a resolvable organization are terminal failures for that event.
func (s *licenseEventService) resolveOrganization(ctx context.Context, event *billing.Event) (*organization.Organization, error) {
	if event.Customer.ID != "" {
		org, err := s.OrganizationRepo.GetByBillingCustomerID(ctx, event.Customer.ID)
		if err == nil {
			return org, nil
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	if event.Customer.Reference != "" {
		org, err := s.OrganizationRepo.Get(ctx, event.Customer.Reference)
		if err == nil {
			return org, nil
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	return nil, ierr.NewError("organization not resolvable for billing event").
		WithHint("No organization matches the event's customer").
		WithReportableDetails(map[string]any{
			"event_id":    event.ID,
			"customer_id": event.Customer.ID,
			"reference":   event.Customer.Reference,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *licenseEventService) handleCustomerCreated(ctx context.Context, event *billing.Event, org *organization.Organization) error {
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		org.BillingCustomerID = event.Customer.ID
		org.HasBillingAccount = true
		// An empty reseller tag clears any previously recorded one
		org.Reseller = event.Customer.Reseller
		org.UpdatedAt = time.Now().UTC()
		return s.OrganizationRepo.Update(ctx, org)
	})
}

func (s *licenseEventService) handleCustomerDeleted(ctx context.Context, event *billing.Event, org *organization.Organization) error {
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		org.BillingCustomerID = ""
		org.HasBillingAccount = false
		org.Reseller = ""
		org.UpdatedAt = time.Now().UTC()
		if err := s.OrganizationRepo.Update(ctx, org); err != nil {
			return err
		}
		return s.applyDefaultSubscription(ctx, org.ID)
	})
}

func (s *licenseEventService) handleSubscriptionChanged(ctx context.Context, event *billing.Event, org *organization.Organization) error {
	if event.Subscription == nil || event.Subscription.PlanID == "" {
		return ierr.NewError("billing event carries no plan").
			WithHint("Subscription events must reference a plan").
			WithReportableDetails(map[string]any{"event_id": event.ID}).
			Mark(ierr.ErrValidation)
	}

	mapping, known := s.PlanTable.Resolve(event.Subscription.PlanID)
	if !known {
		s.Logger.Warnw("unknown billing plan id, falling back to default plan",
			"event_id", event.ID,
			"plan_id", event.Subscription.PlanID,
			"fallback_type", mapping.SubscriptionType,
			"fallback_plan", mapping.PaymentPlan)
	}

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub, err := s.SubRepo.GetByOrganizationID(ctx, org.ID)
		if err != nil {
			return err
		}

		until := types.DefaultPaidUntil
		paymentType := types.PaymentTypeCreditCard
		paymentPlan := mapping.PaymentPlan
		if err := sub.Upgrade(ctx, mapping.SubscriptionType, &until, &paymentType, &paymentPlan); err != nil {
			return err
		}

		return s.SubRepo.Update(ctx, sub)
	})
}

func (s *licenseEventService) handleSubscriptionCancelled(ctx context.Context, event *billing.Event, org *organization.Organization) error {
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.applyDefaultSubscription(ctx, org.ID)
	})
}

// applyDefaultSubscription reverts the organization to the Test tier with a
// fresh trial window. PostalBills is deliberately left untouched.
func (s *licenseEventService) applyDefaultSubscription(ctx context.Context, organizationID string) error {
	sub, err := s.SubRepo.GetByOrganizationID(ctx, organizationID)
	if err != nil {
		return err
	}

	until := time.Now().UTC().AddDate(0, 0, types.TrialPeriodDays)
	if err := sub.Upgrade(ctx, types.SubscriptionTypeTest, &until, nil, nil); err != nil {
		return err
	}

	return s.SubRepo.Update(ctx, sub)
}
