package billing

import (
	"time"

	"github.com/seatstack/seatstack/internal/types"
)

// Event is a normalized billing provider event. Webhook deliveries only carry
// the event id; the full event is always re-fetched from the provider by id
// so a spoofed webhook body cannot drive a transition.
type Event struct {
	ID         string                 `json:"id"`
	Type       types.BillingEventType `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`

	Customer     Customer           `json:"customer"`
	Subscription *EventSubscription `json:"subscription,omitempty"`
}

// Customer is the provider-side customer referenced by an event
type Customer struct {
	// ID is the provider's customer identifier
	ID string `json:"id"`

	// Reference is our organization id, recorded at checkout
	Reference string `json:"reference"`

	// Reseller is the reseller tag; empty clears any recorded reseller
	Reseller string `json:"reseller"`

	Email string `json:"email"`
}

// EventSubscription is the provider-side subscription payload carried by
// subscription lifecycle events
type EventSubscription struct {
	ID     string `json:"id"`
	PlanID string `json:"plan_id"`
	Status string `json:"status"`
}
