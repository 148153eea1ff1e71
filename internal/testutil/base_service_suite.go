package testutil

import (
	"context"
	"time"

	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	"github.com/seatstack/seatstack/internal/domain/user"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
	"github.com/seatstack/seatstack/internal/types"
	"github.com/seatstack/seatstack/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	OrganizationRepo organization.Repository
	UserRepo         user.Repository
	SubscriptionRepo subscription.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	stores        Stores
	billingClient *FakeBillingClient
	db            postgres.IClient
	logger        *logger.Logger
	config        *config.Configuration
	now           time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Server: config.ServerConfig{
			Address: ":8080",
			BaseURL: "https://app.example.com",
		},
		Billing: config.BillingConfig{
			Enabled: true,
			APIURL:  "https://billing.example.com/api",
			APIKey:  "test-api-key",
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		OrganizationRepo: NewInMemoryOrganizationStore(),
		UserRepo:         NewInMemoryUserStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
	}
	s.billingClient = NewFakeBillingClient()
	s.db = NewMockPostgresClient(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.OrganizationRepo.(*InMemoryOrganizationStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetBillingClient returns the fake billing client
func (s *BaseServiceTestSuite) GetBillingClient() *FakeBillingClient {
	return s.billingClient
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}
