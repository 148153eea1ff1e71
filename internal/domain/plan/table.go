package plan

import (
	"github.com/seatstack/seatstack/internal/types"
)

// Mapping ties an external billing plan identifier to the subscription tier
// and payment cadence it grants.
type Mapping struct {
	SubscriptionType types.SubscriptionType
	PaymentPlan      types.PaymentPlan
}

// FallbackHook is invoked whenever an unknown plan id resolves to the
// fallback mapping, so operators can alert on billing misconfiguration
// instead of silently selling the wrong tier.
type FallbackHook func(planID string)

// Table is an immutable lookup from external plan identifiers to mappings.
// It is constructed once at startup and injected; unknown identifiers fall
// back to the smallest paid monthly plan.
type Table struct {
	entries    map[string]Mapping
	fallback   Mapping
	onFallback FallbackHook
}

// Option configures a Table at construction time
type Option func(*Table)

// WithFallbackHook registers a hook fired on fallback resolution
func WithFallbackHook(hook FallbackHook) Option {
	return func(t *Table) {
		t.onFallback = hook
	}
}

// NewTable builds a Table from the given entries. The entries map is copied;
// the table never changes after construction.
func NewTable(entries map[string]Mapping, opts ...Option) *Table {
	copied := make(map[string]Mapping, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	t := &Table{
		entries: copied,
		fallback: Mapping{
			SubscriptionType: types.SubscriptionTypePocket,
			PaymentPlan:      types.PaymentPlanMonthly,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DefaultEntries is the closed set of plan identifiers sold through the
// billing provider: {pocket, combo, multi} x {monthly, annually}
func DefaultEntries() map[string]Mapping {
	return map[string]Mapping{
		"pocket-tool-monthly":  {SubscriptionType: types.SubscriptionTypePocket, PaymentPlan: types.PaymentPlanMonthly},
		"pocket-tool-annually": {SubscriptionType: types.SubscriptionTypePocket, PaymentPlan: types.PaymentPlanAnnually},
		"combo-tool-monthly":   {SubscriptionType: types.SubscriptionTypeCombo, PaymentPlan: types.PaymentPlanMonthly},
		"combo-tool-annually":  {SubscriptionType: types.SubscriptionTypeCombo, PaymentPlan: types.PaymentPlanAnnually},
		"multi-tool-monthly":   {SubscriptionType: types.SubscriptionTypeMulti, PaymentPlan: types.PaymentPlanMonthly},
		"multi-tool-annually":  {SubscriptionType: types.SubscriptionTypeMulti, PaymentPlan: types.PaymentPlanAnnually},
	}
}

// NewDefaultTable builds the production table
func NewDefaultTable(opts ...Option) *Table {
	return NewTable(DefaultEntries(), opts...)
}

// Resolve maps a plan identifier to its tier and cadence. The second return
// value is false when the id was unknown and the fallback was used.
func (t *Table) Resolve(planID string) (Mapping, bool) {
	if m, ok := t.entries[planID]; ok {
		return m, true
	}
	if t.onFallback != nil {
		t.onFallback(planID)
	}
	return t.fallback, false
}

// Known reports whether the plan identifier is part of the table
func (t *Table) Known(planID string) bool {
	_, ok := t.entries[planID]
	return ok
}
