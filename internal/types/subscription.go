package types

import (
	"time"

	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionType is the plan tier of a subscription. Each tier carries a
// fixed policy: how many accounts (seats) may exist concurrently and whether
// a payment method is expected.
type SubscriptionType string

const (
	SubscriptionTypeMaster SubscriptionType = "master"
	SubscriptionTypeMulti  SubscriptionType = "multi"
	SubscriptionTypeCombo  SubscriptionType = "combo"
	SubscriptionTypePocket SubscriptionType = "pocket"
	SubscriptionTypeTest   SubscriptionType = "test"
)

// UnlimitedAccounts marks a tier without an account ceiling
const UnlimitedAccounts = -1

func (t SubscriptionType) String() string {
	return string(t)
}

// Rank orders tiers for comparison. Higher rank means a bigger plan.
func (t SubscriptionType) Rank() int {
	switch t {
	case SubscriptionTypeMaster:
		return 5
	case SubscriptionTypeMulti:
		return 4
	case SubscriptionTypeCombo:
		return 3
	case SubscriptionTypePocket:
		return 2
	case SubscriptionTypeTest:
		return 1
	}
	return 0
}

// MaxAccounts returns the ceiling on concurrently existing accounts for the
// tier, or UnlimitedAccounts when the tier has no ceiling. The mapping is
// closed: an unmapped tier yields 0 and fails Validate.
func (t SubscriptionType) MaxAccounts() int {
	switch t {
	case SubscriptionTypeMaster:
		return UnlimitedAccounts
	case SubscriptionTypeMulti:
		return UnlimitedAccounts
	case SubscriptionTypeCombo:
		return 10
	case SubscriptionTypePocket:
		return 3
	case SubscriptionTypeTest:
		return 3
	}
	return 0
}

// HasAccountLimit returns true when the tier caps the number of accounts
func (t SubscriptionType) HasAccountLimit() bool {
	return t.MaxAccounts() != UnlimitedAccounts
}

// IsPaid returns true when the tier expects a payment method and plan
func (t SubscriptionType) IsPaid() bool {
	switch t {
	case SubscriptionTypeMaster:
		return true
	case SubscriptionTypeMulti:
		return true
	case SubscriptionTypeCombo:
		return true
	case SubscriptionTypePocket:
		return true
	case SubscriptionTypeTest:
		return false
	}
	return false
}

func (t SubscriptionType) Validate() error {
	allowed := []SubscriptionType{
		SubscriptionTypeMaster,
		SubscriptionTypeMulti,
		SubscriptionTypeCombo,
		SubscriptionTypePocket,
		SubscriptionTypeTest,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid subscription type").
			WithHint("Invalid subscription type").
			WithReportableDetails(map[string]any{
				"type":          t,
				"allowed_types": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentPlan is the billing cadence of a paid subscription
type PaymentPlan string

const (
	PaymentPlanMonthly  PaymentPlan = "monthly"
	PaymentPlanAnnually PaymentPlan = "annually"
	PaymentPlanOneTime  PaymentPlan = "one_time"
)

func (p PaymentPlan) String() string {
	return string(p)
}

func (p PaymentPlan) Validate() error {
	allowed := []PaymentPlan{
		PaymentPlanMonthly,
		PaymentPlanAnnually,
		PaymentPlanOneTime,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment plan").
			WithHint("Invalid payment plan").
			WithReportableDetails(map[string]any{
				"payment_plan":  p,
				"allowed_plans": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentType is how a paid subscription settles its bills
type PaymentType string

const (
	PaymentTypeCreditCard PaymentType = "credit_card"
	PaymentTypeInvoice    PaymentType = "invoice"
	PaymentTypeOther      PaymentType = "other"
)

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeCreditCard,
		PaymentTypeInvoice,
		PaymentTypeOther,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment type").
			WithHint("Invalid payment type").
			WithReportableDetails(map[string]any{
				"payment_type":  p,
				"allowed_types": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TrialPeriodDays is the validity window of a fresh or reverted Test subscription
const TrialPeriodDays = 30

// DefaultPaidUntil is the validity end date applied when an external billing
// subscription is created or changed. The billing provider owns renewals, so
// the subscription is effectively perpetual on our side.
var DefaultPaidUntil = time.Date(2200, 12, 31, 0, 0, 0, 0, time.UTC)
