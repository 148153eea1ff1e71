package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatstack/seatstack/internal/api/dto"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/service"
)

type OrganizationHandler struct {
	service             service.OrganizationService
	subscriptionService service.SubscriptionService
	log                 *logger.Logger
}

func NewOrganizationHandler(
	service service.OrganizationService,
	subscriptionService service.SubscriptionService,
	log *logger.Logger,
) *OrganizationHandler {
	return &OrganizationHandler{
		service:             service,
		subscriptionService: subscriptionService,
		log:                 log,
	}
}

// @Summary Provision an organization
// @Description Create an organization with its owner user and trial subscription
// @Tags Organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an organization
// @Tags Organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Organization ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetOrganization(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get an organization's subscription
// @Tags Organizations
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /organizations/{id}/subscription [get]
func (h *OrganizationHandler) GetSubscription(c *gin.Context) {
	resp, err := h.subscriptionService.GetSubscriptionByOrganization(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
