package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatstack/seatstack/internal/api/dto"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/service"
	"github.com/seatstack/seatstack/internal/types"
)

type SubscriptionHandler struct {
	service     service.SubscriptionService
	viewService service.AccountViewService
	log         *logger.Logger
}

func NewSubscriptionHandler(
	service service.SubscriptionService,
	viewService service.AccountViewService,
	log *logger.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:     service,
		viewService: viewService,
		log:         log,
	}
}

// @Summary Get a subscription
// @Description Get a subscription with its accounts and usage counts
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Subscription ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetSubscription(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Upgrade a subscription
// @Description Move the subscription to a new plan tier
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param upgrade body dto.UpgradeSubscriptionRequest true "Upgrade parameters"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/upgrade [post]
func (h *SubscriptionHandler) UpgradeSubscription(c *gin.Context) {
	var req dto.UpgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpgradeSubscription(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Remove the expiry date
// @Description Make the subscription perpetually active
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Router /subscriptions/{id}/remove-until [post]
func (h *SubscriptionHandler) RemoveUntil(c *gin.Context) {
	resp, err := h.service.RemoveUntil(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set postal billing
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param postal_bills body dto.SetPostalBillsRequest true "Postal billing flag"
// @Success 200 {object} dto.SubscriptionResponse
// @Router /subscriptions/{id}/postal-bills [post]
func (h *SubscriptionHandler) SetPostalBills(c *gin.Context) {
	var req dto.SetPostalBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetPostalBills(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create an account
// @Description Allocate a new seat on the subscription, subject to the plan's account limit
// @Tags Accounts
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/accounts [post]
func (h *SubscriptionHandler) CreateAccount(c *gin.Context) {
	resp, err := h.service.CreateAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Delete an account
// @Tags Accounts
// @Param id path string true "Subscription ID"
// @Param account_id path string true "Account ID"
// @Success 204
// @Router /subscriptions/{id}/accounts/{account_id} [delete]
func (h *SubscriptionHandler) DeleteAccount(c *gin.Context) {
	if err := h.service.DeleteAccount(c.Request.Context(), c.Param("id"), c.Param("account_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Assign an account to a user
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param account_id path string true "Account ID"
// @Param assignment body dto.AssignAccountRequest true "Assignment"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/accounts/{account_id}/assign [post]
func (h *SubscriptionHandler) AssignAccount(c *gin.Context) {
	var req dto.AssignAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignAccount(c.Request.Context(), c.Param("id"), c.Param("account_id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Unassign an account
// @Tags Accounts
// @Produce json
// @Param id path string true "Subscription ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Router /subscriptions/{id}/accounts/{account_id}/unassign [post]
func (h *SubscriptionHandler) UnassignAccount(c *gin.Context) {
	resp, err := h.service.UnassignAccount(c.Request.Context(), c.Param("id"), c.Param("account_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a free account
// @Description Return the first unassigned account. Master subscriptions allocate a new seat when none is free.
// @Tags Accounts
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/accounts/free [get]
func (h *SubscriptionHandler) GetFreeAccount(c *gin.Context) {
	resp, err := h.service.GetFreeAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List accounts
// @Description Paged listing of the subscription's accounts
// @Tags Accounts
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Router /subscriptions/{id}/accounts [get]
func (h *SubscriptionHandler) ListAccounts(c *gin.Context) {
	var filter types.AccountFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	filter.SubscriptionID = c.Param("id")

	resp, err := h.viewService.ListAccounts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Export accounts as CSV
// @Tags Accounts
// @Produce text/csv
// @Param id path string true "Subscription ID"
// @Success 200 {string} string "CSV payload"
// @Router /subscriptions/{id}/accounts/export [get]
func (h *SubscriptionHandler) ExportAccountsCSV(c *gin.Context) {
	data, err := h.viewService.ExportAccountsCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="accounts.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Generate an activation link
// @Tags Accounts
// @Produce json
// @Param id path string true "Subscription ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.ActivationLinkResponse
// @Router /subscriptions/{id}/accounts/{account_id}/activation-link [post]
func (h *SubscriptionHandler) GetActivationLink(c *gin.Context) {
	resp, err := h.viewService.GetActivationLink(c.Request.Context(), c.Param("id"), c.Param("account_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
