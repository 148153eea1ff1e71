package plan

import (
	"testing"

	"github.com/seatstack/seatstack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownPlans(t *testing.T) {
	table := NewDefaultTable()

	tests := []struct {
		planID           string
		subscriptionType types.SubscriptionType
		paymentPlan      types.PaymentPlan
	}{
		{"pocket-tool-monthly", types.SubscriptionTypePocket, types.PaymentPlanMonthly},
		{"pocket-tool-annually", types.SubscriptionTypePocket, types.PaymentPlanAnnually},
		{"combo-tool-monthly", types.SubscriptionTypeCombo, types.PaymentPlanMonthly},
		{"combo-tool-annually", types.SubscriptionTypeCombo, types.PaymentPlanAnnually},
		{"multi-tool-monthly", types.SubscriptionTypeMulti, types.PaymentPlanMonthly},
		{"multi-tool-annually", types.SubscriptionTypeMulti, types.PaymentPlanAnnually},
	}

	for _, tt := range tests {
		t.Run(tt.planID, func(t *testing.T) {
			mapping, known := table.Resolve(tt.planID)
			assert.True(t, known)
			assert.Equal(t, tt.subscriptionType, mapping.SubscriptionType)
			assert.Equal(t, tt.paymentPlan, mapping.PaymentPlan)
			assert.True(t, table.Known(tt.planID))
		})
	}
}

func TestResolveUnknownPlanFallsBack(t *testing.T) {
	var hookedPlanID string
	table := NewDefaultTable(WithFallbackHook(func(planID string) {
		hookedPlanID = planID
	}))

	mapping, known := table.Resolve("enterprise-unlimited")
	assert.False(t, known)
	assert.Equal(t, types.SubscriptionTypePocket, mapping.SubscriptionType)
	assert.Equal(t, types.PaymentPlanMonthly, mapping.PaymentPlan)
	assert.Equal(t, "enterprise-unlimited", hookedPlanID)
	assert.False(t, table.Known("enterprise-unlimited"))
}

func TestTableIsImmutable(t *testing.T) {
	entries := map[string]Mapping{
		"custom-plan": {SubscriptionType: types.SubscriptionTypeMulti, PaymentPlan: types.PaymentPlanAnnually},
	}
	table := NewTable(entries)

	// Mutating the source map after construction must not leak into the table
	entries["custom-plan"] = Mapping{SubscriptionType: types.SubscriptionTypeTest}
	delete(entries, "custom-plan")

	mapping, known := table.Resolve("custom-plan")
	require.True(t, known)
	assert.Equal(t, types.SubscriptionTypeMulti, mapping.SubscriptionType)
}
