package service

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/seatstack/seatstack/internal/api/dto"
	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/plan"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	"github.com/seatstack/seatstack/internal/domain/user"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/testutil"
	"github.com/seatstack/seatstack/internal/types"
	"github.com/stretchr/testify/suite"
)

type AccountViewServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     AccountViewService
	subsService SubscriptionService
	org         *organization.Organization
	sub         *subscription.Subscription
	user        *user.User
}

func TestAccountViewService(t *testing.T) {
	suite.Run(t, new(AccountViewServiceSuite))
}

func (s *AccountViewServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		OrganizationRepo: s.GetStores().OrganizationRepo,
		UserRepo:         s.GetStores().UserRepo,
		SubRepo:          s.GetStores().SubscriptionRepo,
		BillingClient:    s.GetBillingClient(),
		PlanTable:        plan.NewDefaultTable(),
	}
	s.service = NewAccountViewService(params)
	s.subsService = NewSubscriptionService(params)

	s.org = organization.New(s.GetContext(), "Acme Corp", "")
	s.user = user.New(s.GetContext(), s.org.ID, "alice@example.com", "Alice")
	s.NoError(s.GetStores().OrganizationRepo.Create(s.GetContext(), s.org))
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))

	s.sub = subscription.New(s.GetContext(), s.org.ID)
	s.NoError(s.sub.Upgrade(s.GetContext(), types.SubscriptionTypeMulti, nil, nil, nil))
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), s.sub))
}

func (s *AccountViewServiceSuite) createAccounts(n int) []*dto.AccountResponse {
	accounts := make([]*dto.AccountResponse, 0, n)
	for i := 0; i < n; i++ {
		a, err := s.subsService.CreateAccount(s.GetContext(), s.sub.ID)
		s.Require().NoError(err)
		accounts = append(accounts, a)
	}
	return accounts
}

func (s *AccountViewServiceSuite) TestListAccounts() {
	s.createAccounts(5)

	resp, err := s.service.ListAccounts(s.GetContext(), &types.AccountFilter{
		QueryFilter:    types.NewDefaultQueryFilter(),
		SubscriptionID: s.sub.ID,
	})
	s.NoError(err)
	s.Equal(5, resp.Total)
	s.Len(resp.Items, 5)
}

func (s *AccountViewServiceSuite) TestListAccountsPaging() {
	s.createAccounts(5)

	limit := 2
	offset := 4
	resp, err := s.service.ListAccounts(s.GetContext(), &types.AccountFilter{
		QueryFilter:    &types.QueryFilter{Limit: &limit, Offset: &offset},
		SubscriptionID: s.sub.ID,
	})
	s.NoError(err)
	s.Equal(5, resp.Total)
	s.Len(resp.Items, 1)
}

func (s *AccountViewServiceSuite) TestListAccountsUnassignedOnly() {
	accounts := s.createAccounts(3)
	_, err := s.subsService.AssignAccount(s.GetContext(), s.sub.ID, accounts[0].ID, dto.AssignAccountRequest{UserID: s.user.ID})
	s.NoError(err)

	resp, err := s.service.ListAccounts(s.GetContext(), &types.AccountFilter{
		QueryFilter:    types.NewDefaultQueryFilter(),
		SubscriptionID: s.sub.ID,
		UnassignedOnly: true,
	})
	s.NoError(err)
	s.Equal(2, resp.Total)
	for _, item := range resp.Items {
		s.Nil(item.UserID)
	}
}

func (s *AccountViewServiceSuite) TestExportAccountsCSV() {
	accounts := s.createAccounts(2)
	_, err := s.subsService.AssignAccount(s.GetContext(), s.sub.ID, accounts[0].ID, dto.AssignAccountRequest{UserID: s.user.ID})
	s.NoError(err)

	data, err := s.service.ExportAccountsCSV(s.GetContext(), s.sub.ID)
	s.NoError(err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	s.NoError(err)
	s.Require().Len(records, 3)
	s.Equal([]string{"account_id", "user_id", "activated", "active"}, records[0])
	s.Equal(accounts[0].ID, records[1][0])
	s.Equal(s.user.ID, records[1][1])
	s.Equal("true", records[1][3])
	s.Empty(records[2][1])
}

func (s *AccountViewServiceSuite) TestGetActivationLink() {
	accounts := s.createAccounts(1)

	resp, err := s.service.GetActivationLink(s.GetContext(), s.sub.ID, accounts[0].ID)
	s.NoError(err)
	s.Equal(accounts[0].ID, resp.AccountID)
	s.NotEmpty(resp.Token)
	s.Contains(resp.URL, s.GetConfig().Server.BaseURL)
	s.Contains(resp.URL, accounts[0].ID)
	s.Contains(resp.URL, resp.Token)

	_, err = s.service.GetActivationLink(s.GetContext(), s.sub.ID, "acct_missing")
	s.True(ierr.IsNotFound(err))
}
