package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/seatstack/seatstack/internal/api/v1"
	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/rest/middleware"
)

type Handlers struct {
	Health       *v1.HealthHandler
	Organization *v1.OrganizationHandler
	Subscription *v1.SubscriptionHandler
	Billing      *v1.BillingHandler
	Webhook      *v1.WebhookHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Organization routes
	organizations := router.Group("/organizations")
	{
		organizations.POST("", handlers.Organization.CreateOrganization)
		organizations.GET("/:id", handlers.Organization.GetOrganization)
		organizations.GET("/:id/subscription", handlers.Organization.GetSubscription)
	}

	// Subscription routes
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
		subscriptions.POST("/:id/upgrade", handlers.Subscription.UpgradeSubscription)
		subscriptions.POST("/:id/remove-until", handlers.Subscription.RemoveUntil)
		subscriptions.POST("/:id/postal-bills", handlers.Subscription.SetPostalBills)

		subscriptions.POST("/:id/accounts", handlers.Subscription.CreateAccount)
		subscriptions.GET("/:id/accounts", handlers.Subscription.ListAccounts)
		subscriptions.GET("/:id/accounts/free", handlers.Subscription.GetFreeAccount)
		subscriptions.GET("/:id/accounts/export", handlers.Subscription.ExportAccountsCSV)
		subscriptions.DELETE("/:id/accounts/:account_id", handlers.Subscription.DeleteAccount)
		subscriptions.POST("/:id/accounts/:account_id/assign", handlers.Subscription.AssignAccount)
		subscriptions.POST("/:id/accounts/:account_id/unassign", handlers.Subscription.UnassignAccount)
		subscriptions.POST("/:id/accounts/:account_id/activation-link", handlers.Subscription.GetActivationLink)
	}

	// Billing routes
	billing := router.Group("/billing")
	{
		billing.GET("/checkout", handlers.Billing.GetCheckoutPage)
		billing.GET("/portal", handlers.Billing.GetPortal)
	}

	// Webhook routes
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/billing", handlers.Webhook.HandleBillingWebhook)
	}
}
