package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seatstack/seatstack/internal/api"
	v1 "github.com/seatstack/seatstack/internal/api/v1"
	"github.com/seatstack/seatstack/internal/billing"
	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/domain/plan"
	"github.com/seatstack/seatstack/internal/httpclient"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
	"github.com/seatstack/seatstack/internal/repository"
	"github.com/seatstack/seatstack/internal/service"
	"github.com/seatstack/seatstack/internal/validator"
	"go.uber.org/fx"
)

// @title SeatStack API
// @version 1.0
// @description Subscription and seat licensing service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Billing provider
			billing.NewClient,
			providePlanTable,

			// Repositories
			repository.NewOrganizationRepository,
			repository.NewUserRepository,
			repository.NewSubscriptionRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewOrganizationService,
			service.NewSubscriptionService,
			service.NewAccountViewService,
			service.NewBillingService,
			service.NewLicenseEventService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func providePlanTable() *plan.Table {
	return plan.NewDefaultTable()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	organizationService service.OrganizationService,
	subscriptionService service.SubscriptionService,
	accountViewService service.AccountViewService,
	billingService service.BillingService,
	licenseEventService service.LicenseEventService,
) api.Handlers {
	return api.Handlers{
		Health:       v1.NewHealthHandler(),
		Organization: v1.NewOrganizationHandler(organizationService, subscriptionService, logger),
		Subscription: v1.NewSubscriptionHandler(subscriptionService, accountViewService, logger),
		Billing:      v1.NewBillingHandler(billingService, logger),
		Webhook:      v1.NewWebhookHandler(cfg, licenseEventService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
