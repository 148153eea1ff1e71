package service

import (
	"github.com/seatstack/seatstack/internal/billing"
	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/domain/organization"
	"github.com/seatstack/seatstack/internal/domain/plan"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	"github.com/seatstack/seatstack/internal/domain/user"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	OrganizationRepo organization.Repository
	UserRepo         user.Repository
	SubRepo          subscription.Repository

	// External collaborators
	BillingClient billing.Client
	PlanTable     *plan.Table
}

// NewServiceParams builds the common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	organizationRepo organization.Repository,
	userRepo user.Repository,
	subRepo subscription.Repository,
	billingClient billing.Client,
	planTable *plan.Table,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		SubRepo:          subRepo,
		BillingClient:    billingClient,
		PlanTable:        planTable,
	}
}
