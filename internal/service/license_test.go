package service

import (
	"testing"
	"time"

	"github.com/seatstack/seatstack/internal/billing"
	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/plan"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/testutil"
	"github.com/seatstack/seatstack/internal/types"
	"github.com/stretchr/testify/suite"
)

type LicenseEventServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LicenseEventService
	org     *organization.Organization
	sub     *subscription.Subscription
}

func TestLicenseEventService(t *testing.T) {
	suite.Run(t, new(LicenseEventServiceSuite))
}

func (s *LicenseEventServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLicenseEventService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		OrganizationRepo: s.GetStores().OrganizationRepo,
		UserRepo:         s.GetStores().UserRepo,
		SubRepo:          s.GetStores().SubscriptionRepo,
		BillingClient:    s.GetBillingClient(),
		PlanTable:        plan.NewDefaultTable(),
	})

	s.org = organization.New(s.GetContext(), "Acme Corp", "user_owner")
	s.org.BillingCustomerID = "cus_acme"
	s.org.HasBillingAccount = true
	s.NoError(s.GetStores().OrganizationRepo.Create(s.GetContext(), s.org))

	s.sub = subscription.New(s.GetContext(), s.org.ID)
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), s.sub))
}

func (s *LicenseEventServiceSuite) TestSubscriptionCreatedAppliesPlan() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_1",
		Type:     types.BillingEventSubscriptionCreated,
		Customer: billing.Customer{ID: "cus_acme"},
		Subscription: &billing.EventSubscription{
			ID:     "sub_provider_1",
			PlanID: "pocket-tool-monthly",
		},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_1"))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypePocket, sub.SubscriptionType)
	s.Require().NotNil(sub.PaymentPlan)
	s.Require().NotNil(sub.PaymentType)
	s.Equal(types.PaymentPlanMonthly, *sub.PaymentPlan)
	s.Equal(types.PaymentTypeCreditCard, *sub.PaymentType)
	s.Require().NotNil(sub.Until)
	s.True(sub.Until.Equal(types.DefaultPaidUntil))
}

func (s *LicenseEventServiceSuite) TestSubscriptionChangedResolvesByReference() {
	// Provider knows no customer id yet; checkout recorded our org id as reference
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_ref",
		Type:     types.BillingEventSubscriptionChanged,
		Customer: billing.Customer{ID: "cus_unknown", Reference: s.org.ID},
		Subscription: &billing.EventSubscription{
			PlanID: "multi-tool-annually",
		},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_ref"))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypeMulti, sub.SubscriptionType)
	s.Equal(types.PaymentPlanAnnually, *sub.PaymentPlan)
}

func (s *LicenseEventServiceSuite) TestSubscriptionChangedUnknownPlanFallsBack() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_unknown_plan",
		Type:     types.BillingEventSubscriptionChanged,
		Customer: billing.Customer{ID: "cus_acme"},
		Subscription: &billing.EventSubscription{
			PlanID: "enterprise-unlimited",
		},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_unknown_plan"))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypePocket, sub.SubscriptionType)
	s.Equal(types.PaymentPlanMonthly, *sub.PaymentPlan)
}

func (s *LicenseEventServiceSuite) TestSubscriptionChangedWithoutPlanFails() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_no_plan",
		Type:     types.BillingEventSubscriptionChanged,
		Customer: billing.Customer{ID: "cus_acme"},
	})

	err := s.service.ProcessEvent(s.GetContext(), "evt_no_plan")
	s.True(ierr.IsValidation(err))
}

func (s *LicenseEventServiceSuite) TestCustomerCreatedRecordsBillingAccount() {
	fresh := organization.New(s.GetContext(), "Fresh Org", "user_2")
	s.NoError(s.GetStores().OrganizationRepo.Create(s.GetContext(), fresh))
	freshSub := subscription.New(s.GetContext(), fresh.ID)
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), freshSub))

	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_cust",
		Type:     types.BillingEventCustomerCreated,
		Customer: billing.Customer{ID: "cus_fresh", Reference: fresh.ID, Reseller: "partner-gmbh"},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_cust"))

	org, err := s.GetStores().OrganizationRepo.Get(s.GetContext(), fresh.ID)
	s.NoError(err)
	s.Equal("cus_fresh", org.BillingCustomerID)
	s.True(org.HasBillingAccount)
	s.Equal("partner-gmbh", org.Reseller)
}

func (s *LicenseEventServiceSuite) TestCustomerCreatedEmptyResellerClears() {
	s.org.Reseller = "old-partner"
	s.NoError(s.GetStores().OrganizationRepo.Update(s.GetContext(), s.org))

	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_direct",
		Type:     types.BillingEventCustomerCreated,
		Customer: billing.Customer{ID: "cus_acme"},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_direct"))

	org, err := s.GetStores().OrganizationRepo.Get(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Empty(org.Reseller)
}

func (s *LicenseEventServiceSuite) TestCustomerDeletedRevertsToTrial() {
	// The org currently enjoys a perpetual Multi subscription
	s.NoError(s.sub.Upgrade(s.GetContext(), types.SubscriptionTypeMulti, nil, nil, nil))
	s.NoError(s.GetStores().SubscriptionRepo.Update(s.GetContext(), s.sub))

	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_del",
		Type:     types.BillingEventCustomerDeleted,
		Customer: billing.Customer{ID: "cus_acme"},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_del"))

	org, err := s.GetStores().OrganizationRepo.Get(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Empty(org.BillingCustomerID)
	s.False(org.HasBillingAccount)
	s.Empty(org.Reseller)

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypeTest, sub.SubscriptionType)
	s.Require().NotNil(sub.Until)
	expected := time.Now().UTC().AddDate(0, 0, types.TrialPeriodDays)
	s.WithinDuration(expected, *sub.Until, time.Minute)
}

func (s *LicenseEventServiceSuite) TestSubscriptionCancelledKeepsPostalBills() {
	s.sub.PostalBills = true
	s.NoError(s.sub.Upgrade(s.GetContext(), types.SubscriptionTypeCombo, nil, nil, nil))
	s.NoError(s.GetStores().SubscriptionRepo.Update(s.GetContext(), s.sub))

	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_cancel",
		Type:     types.BillingEventSubscriptionCancelled,
		Customer: billing.Customer{ID: "cus_acme"},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_cancel"))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypeTest, sub.SubscriptionType)
	s.True(sub.PostalBills)
}

func (s *LicenseEventServiceSuite) TestProcessingTwiceIsIdempotent() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_dup",
		Type:     types.BillingEventSubscriptionCreated,
		Customer: billing.Customer{ID: "cus_acme"},
		Subscription: &billing.EventSubscription{
			PlanID: "combo-tool-monthly",
		},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_dup"))
	first, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_dup"))
	second, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)

	s.Equal(first.SubscriptionType, second.SubscriptionType)
	s.Equal(*first.PaymentPlan, *second.PaymentPlan)
	s.True(first.Until.Equal(*second.Until))
}

func (s *LicenseEventServiceSuite) TestUnknownEventTypeIsNoOp() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_misc",
		Type:     types.BillingEventType("invoice_paid"),
		Customer: billing.Customer{ID: "cus_acme"},
	})

	s.NoError(s.service.ProcessEvent(s.GetContext(), "evt_misc"))

	sub, err := s.GetStores().SubscriptionRepo.GetByOrganizationID(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTypeTest, sub.SubscriptionType)
}

func (s *LicenseEventServiceSuite) TestUnresolvableOrganization() {
	s.GetBillingClient().AddEvent(&billing.Event{
		ID:       "evt_orphan",
		Type:     types.BillingEventSubscriptionCreated,
		Customer: billing.Customer{ID: "cus_nobody", Reference: "org_nobody"},
		Subscription: &billing.EventSubscription{
			PlanID: "pocket-tool-monthly",
		},
	})

	err := s.service.ProcessEvent(s.GetContext(), "evt_orphan")
	s.True(ierr.IsNotFound(err))
}

func (s *LicenseEventServiceSuite) TestProcessEventRequiresID() {
	err := s.service.ProcessEvent(s.GetContext(), "")
	s.True(ierr.IsValidation(err))
}

func (s *LicenseEventServiceSuite) TestHandleWebhookEventAlwaysAcks() {
	// Unknown event id
	resp := s.service.HandleWebhookEvent(s.GetContext(), "evt_missing")
	s.Require().NotNil(resp)
	s.True(resp.Received)

	// Provider outage
	s.GetBillingClient().Err = ierr.NewError("provider unavailable").Mark(ierr.ErrHTTPClient)
	resp = s.service.HandleWebhookEvent(s.GetContext(), "evt_any")
	s.Require().NotNil(resp)
	s.True(resp.Received)
}
