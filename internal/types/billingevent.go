package types

// BillingEventType is the type of a billing provider webhook event.
// Only the lifecycle events below drive subscription transitions; any other
// type is acknowledged and ignored.
type BillingEventType string

const (
	BillingEventCustomerCreated       BillingEventType = "customer_created"
	BillingEventCustomerDeleted       BillingEventType = "customer_deleted"
	BillingEventSubscriptionCreated   BillingEventType = "subscription_created"
	BillingEventSubscriptionChanged   BillingEventType = "subscription_changed"
	BillingEventSubscriptionCancelled BillingEventType = "subscription_cancelled"
)

func (t BillingEventType) String() string {
	return string(t)
}
