package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatstack/seatstack/internal/api/dto"
	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/service"
)

// WebhookHandler receives billing provider webhooks. The endpoint always
// answers 200 once the feature is enabled, whatever happens internally:
// the provider delivers at-least-once and a non-2xx answer would only
// trigger retry storms for failures a retry cannot fix. Only the event id
// is read from the body; the event itself is re-fetched from the provider.
type WebhookHandler struct {
	config  *config.Configuration
	service service.LicenseEventService
	log     *logger.Logger
}

func NewWebhookHandler(
	cfg *config.Configuration,
	service service.LicenseEventService,
	log *logger.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		config:  cfg,
		service: service,
		log:     log,
	}
}

// @Summary Handle billing provider webhook events
// @Description Process an incoming billing event notification. Always answers 200 when billing is enabled.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param event body dto.BillingWebhookRequest true "Event notification"
// @Success 200 {object} dto.WebhookAckResponse
// @Failure 501 {object} ierr.ErrorResponse
// @Router /webhooks/billing [post]
func (h *WebhookHandler) HandleBillingWebhook(c *gin.Context) {
	if !h.config.Billing.Enabled {
		c.Status(http.StatusNotImplemented)
		return
	}

	var req dto.BillingWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed bodies are acknowledged too; there is nothing to retry
		h.log.Warnw("malformed billing webhook body", "error", err)
		c.JSON(http.StatusOK, dto.NewWebhookAckResponse())
		return
	}

	resp := h.service.HandleWebhookEvent(c.Request.Context(), req.ID)
	c.JSON(http.StatusOK, resp)
}
