package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/seatstack/seatstack/internal/billing"
	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
)

var _ billing.Client = (*FakeBillingClient)(nil)

// FakeBillingClient serves canned events and payloads for tests
type FakeBillingClient struct {
	mu     sync.RWMutex
	events map[string]*billing.Event

	// Err, when set, is returned by every call
	Err error

	CheckoutPayload json.RawMessage
	PortalPayload   json.RawMessage
}

func NewFakeBillingClient() *FakeBillingClient {
	return &FakeBillingClient{
		events:          make(map[string]*billing.Event),
		CheckoutPayload: json.RawMessage(`{"url":"https://billing.example.com/checkout"}`),
		PortalPayload:   json.RawMessage(`{"url":"https://billing.example.com/portal"}`),
	}
}

// AddEvent registers an event to be served by GetEvent
func (c *FakeBillingClient) AddEvent(event *billing.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[event.ID] = event
}

func (c *FakeBillingClient) GetEvent(ctx context.Context, eventID string) (*billing.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Err != nil {
		return nil, c.Err
	}

	event, ok := c.events[eventID]
	if !ok {
		return nil, ierr.NewErrorf("billing event %s not found", eventID).
			WithHint("Billing event not found").
			Mark(ierr.ErrNotFound)
	}
	return event, nil
}

func (c *FakeBillingClient) GetCheckoutPage(ctx context.Context, planID string, org *organization.Organization) (json.RawMessage, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.CheckoutPayload, nil
}

func (c *FakeBillingClient) GetPortal(ctx context.Context, org *organization.Organization) (json.RawMessage, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.PortalPayload, nil
}
