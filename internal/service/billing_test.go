package service

import (
	"testing"

	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/plan"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
	org     *organization.Organization
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBillingService(ServiceParams{
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
	s.NoError(s.GetStores().OrganizationRepo.Create(s.GetContext(), s.org))
}

func (s *BillingServiceSuite) TestGetCheckoutPage() {
	page, err := s.service.GetCheckoutPage(s.GetContext(), s.org.ID, "pocket-tool-monthly")
	s.NoError(err)
	s.JSONEq(string(s.GetBillingClient().CheckoutPayload), string(page))
}

func (s *BillingServiceSuite) TestGetCheckoutPageRejectsUnknownPlan() {
	_, err := s.service.GetCheckoutPage(s.GetContext(), s.org.ID, "enterprise-unlimited")
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestGetPortal() {
	portal, err := s.service.GetPortal(s.GetContext(), s.org.ID)
	s.NoError(err)
	s.JSONEq(string(s.GetBillingClient().PortalPayload), string(portal))
}

func (s *BillingServiceSuite) TestDisabledBilling() {
	s.GetConfig().Billing.Enabled = false
	defer func() { s.GetConfig().Billing.Enabled = true }()

	_, err := s.service.GetCheckoutPage(s.GetContext(), s.org.ID, "pocket-tool-monthly")
	s.True(ierr.IsNotImplemented(err))

	_, err = s.service.GetPortal(s.GetContext(), s.org.ID)
	s.True(ierr.IsNotImplemented(err))
}
