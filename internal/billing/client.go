package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/httpclient"
	"github.com/seatstack/seatstack/internal/logger"
)

// Client talks to the external billing provider. All calls are fallible
// remote calls; failures are wrapped as http-client errors and it is the
// caller's contract whether they surface (interactive requests) or are
// swallowed (webhook event processing).
type Client interface {
	// GetEvent re-fetches the authoritative event by id
	GetEvent(ctx context.Context, eventID string) (*Event, error)

	// GetCheckoutPage returns the provider's hosted checkout payload for the
	// given plan and organization
	GetCheckoutPage(ctx context.Context, planID string, org *organization.Organization) (json.RawMessage, error)

	// GetPortal returns the provider's self-service portal payload
	GetPortal(ctx context.Context, org *organization.Organization) (json.RawMessage, error)
}

type client struct {
	httpClient httpclient.Client
	config     *config.Configuration
	logger     *logger.Logger
}

// NewClient creates a billing provider client from configuration
func NewClient(httpClient httpclient.Client, cfg *config.Configuration, logger *logger.Logger) Client {
	return &client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}
}

func (c *client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	resp, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/events/%s", url.PathEscape(eventID)), nil)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(resp.Body, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Billing provider returned an unexpected event payload").
			Mark(ierr.ErrHTTPClient)
	}
	return &event, nil
}

func (c *client) GetCheckoutPage(ctx context.Context, planID string, org *organization.Organization) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{
		"plan_id":   planID,
		"reference": org.ID,
		"customer":  org.BillingCustomerID,
	})
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	resp, err := c.send(ctx, http.MethodPost, "/checkout_pages", payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

func (c *client) GetPortal(ctx context.Context, org *organization.Organization) (json.RawMessage, error) {
	if org.BillingCustomerID == "" {
		return nil, ierr.NewError("organization has no billing account").
			WithHint("A billing account is required before opening the portal").
			Mark(ierr.ErrInvalidOperation)
	}

	resp, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/customers/%s/portal", url.PathEscape(org.BillingCustomerID)), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

func (c *client) send(ctx context.Context, method, path string, body []byte) (*httpclient.Response, error) {
	req := &httpclient.Request{
		Method: method,
		URL:    c.config.Billing.APIURL + path,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.config.Billing.APIKey,
		},
		Body: body,
	}
	return c.httpClient.Send(ctx, req)
}
