package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/service"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get a hosted checkout page
// @Description Fetch the billing provider's checkout payload for a plan
// @Tags Billing
// @Produce json
// @Param organization_id query string true "Organization ID"
// @Param plan_id query string true "Plan ID"
// @Success 200 {object} object
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 501 {object} ierr.ErrorResponse
// @Router /billing/checkout [get]
func (h *BillingHandler) GetCheckoutPage(c *gin.Context) {
	organizationID := c.Query("organization_id")
	planID := c.Query("plan_id")
	if organizationID == "" || planID == "" {
		c.Error(ierr.NewError("organization_id and plan_id are required").
			WithHint("organization_id and plan_id are required").
			Mark(ierr.ErrValidation))
		return
	}

	page, err := h.service.GetCheckoutPage(c.Request.Context(), organizationID, planID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json", page)
}

// @Summary Get the billing portal
// @Description Fetch the billing provider's self-service portal payload
// @Tags Billing
// @Produce json
// @Param organization_id query string true "Organization ID"
// @Success 200 {object} object
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 501 {object} ierr.ErrorResponse
// @Router /billing/portal [get]
func (h *BillingHandler) GetPortal(c *gin.Context) {
	organizationID := c.Query("organization_id")
	if organizationID == "" {
		c.Error(ierr.NewError("organization_id is required").
			WithHint("organization_id is required").
			Mark(ierr.ErrValidation))
		return
	}

	portal, err := h.service.GetPortal(c.Request.Context(), organizationID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/json", portal)
}
