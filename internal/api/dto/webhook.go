package dto

// BillingWebhookRequest is the inbound webhook body. Only the event id is
// trusted; the event itself is re-fetched from the billing provider.
type BillingWebhookRequest struct {
	ID string `json:"id"`
}

// WebhookAckResponse is the idempotent acknowledgement returned to the
// billing provider. It always reports success so the sender does not
// retry-storm on transient internal failures.
type WebhookAckResponse struct {
	Received bool `json:"received"`
}

func NewWebhookAckResponse() *WebhookAckResponse {
	return &WebhookAckResponse{Received: true}
}
