package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionTypePolicy(t *testing.T) {
	tests := []struct {
		subscriptionType SubscriptionType
		rank             int
		maxAccounts      int
		hasLimit         bool
		paid             bool
	}{
		{SubscriptionTypeMaster, 5, UnlimitedAccounts, false, true},
		{SubscriptionTypeMulti, 4, UnlimitedAccounts, false, true},
		{SubscriptionTypeCombo, 3, 10, true, true},
		{SubscriptionTypePocket, 2, 3, true, true},
		{SubscriptionTypeTest, 1, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.subscriptionType.String(), func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.subscriptionType.Rank())
			assert.Equal(t, tt.maxAccounts, tt.subscriptionType.MaxAccounts())
			assert.Equal(t, tt.hasLimit, tt.subscriptionType.HasAccountLimit())
			assert.Equal(t, tt.paid, tt.subscriptionType.IsPaid())
			assert.NoError(t, tt.subscriptionType.Validate())
		})
	}
}

func TestSubscriptionTypeRankOrdering(t *testing.T) {
	assert.Greater(t, SubscriptionTypeMaster.Rank(), SubscriptionTypeMulti.Rank())
	assert.Greater(t, SubscriptionTypeMulti.Rank(), SubscriptionTypeCombo.Rank())
	assert.Greater(t, SubscriptionTypeCombo.Rank(), SubscriptionTypePocket.Rank())
	assert.Greater(t, SubscriptionTypePocket.Rank(), SubscriptionTypeTest.Rank())
}

func TestSubscriptionTypeValidateRejectsUnknown(t *testing.T) {
	assert.Error(t, SubscriptionType("").Validate())
	assert.Error(t, SubscriptionType("platinum").Validate())
	assert.Equal(t, 0, SubscriptionType("platinum").Rank())
	assert.Equal(t, 0, SubscriptionType("platinum").MaxAccounts())
	assert.False(t, SubscriptionType("platinum").IsPaid())
}

func TestPaymentPlanValidate(t *testing.T) {
	assert.NoError(t, PaymentPlanMonthly.Validate())
	assert.NoError(t, PaymentPlanAnnually.Validate())
	assert.NoError(t, PaymentPlanOneTime.Validate())
	assert.Error(t, PaymentPlan("weekly").Validate())
}

func TestPaymentTypeValidate(t *testing.T) {
	assert.NoError(t, PaymentTypeCreditCard.Validate())
	assert.NoError(t, PaymentTypeInvoice.Validate())
	assert.NoError(t, PaymentTypeOther.Validate())
	assert.Error(t, PaymentType("cash").Validate())
}
