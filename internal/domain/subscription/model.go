package subscription

import (
	"context"
	"time"

	"github.com/seatstack/seatstack/internal/domain/user"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/types"
)

// Subscription is the per-organization billing aggregate. It owns an ordered
// collection of accounts (seats) and enforces the account ceiling of its
// current tier at allocation time. A downgrade never evicts accounts: a
// subscription holding more accounts than the new tier's ceiling is accepted
// as-is and simply cannot allocate further seats.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// OrganizationID is the owning organization, immutable after creation
	OrganizationID string `db:"organization_id" json:"organization_id"`

	// SubscriptionType is the current plan tier
	SubscriptionType types.SubscriptionType `db:"subscription_type" json:"subscription_type"`

	// PaymentPlan is the billing cadence, meaningful only for paid tiers
	PaymentPlan *types.PaymentPlan `db:"payment_plan" json:"payment_plan"`

	// PaymentType is the settlement method, meaningful only for paid tiers
	PaymentType *types.PaymentType `db:"payment_type" json:"payment_type"`

	// Since is the creation date of the subscription, immutable
	Since time.Time `db:"since" json:"since"`

	// Until is the validity end date. Nil means perpetually active.
	// The subscription stays active for the whole calendar day of Until.
	Until *time.Time `db:"until" json:"until"`

	// PostalBills is whether bills are additionally sent by post
	PostalBills bool `db:"postal_bills" json:"postal_bills"`

	// Accounts is the ordered collection of seats owned by this subscription
	Accounts []*Account `db:"-" json:"accounts"`

	types.BaseModel
}

// New creates the subscription for a freshly provisioned organization:
// a Test tier valid for the trial period starting today.
func New(ctx context.Context, organizationID string) *Subscription {
	now := time.Now().UTC()
	until := now.AddDate(0, 0, types.TrialPeriodDays)
	return &Subscription{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		OrganizationID:   organizationID,
		SubscriptionType: types.SubscriptionTypeTest,
		Since:            now,
		Until:            &until,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

// IsActive reports whether the subscription is currently valid. A nil Until
// means perpetually active; otherwise the full calendar day of Until is still
// covered, so expiry only takes effect one day later.
func (s *Subscription) IsActive() bool {
	if s.Until == nil {
		return true
	}
	return s.Until.AddDate(0, 0, 1).After(time.Now().UTC())
}

// NewAccount allocates a new seat, or returns nil without side effects when
// the tier's account ceiling is reached
func (s *Subscription) NewAccount(ctx context.Context) *Account {
	if s.SubscriptionType.HasAccountLimit() && len(s.Accounts) >= s.SubscriptionType.MaxAccounts() {
		return nil
	}
	a := newAccount(ctx, s.ID)
	s.Accounts = append(s.Accounts, a)
	return a
}

// GetFreeAccount returns the first unassigned account in allocation order.
// A Master subscription never runs out: when every seat is taken a new one is
// allocated. Any other tier returns nil so callers must request an extra seat
// explicitly via NewAccount.
func (s *Subscription) GetFreeAccount(ctx context.Context) *Account {
	for _, a := range s.Accounts {
		if a.IsUnassigned() {
			return a
		}
	}
	if s.SubscriptionType == types.SubscriptionTypeMaster {
		return s.NewAccount(ctx)
	}
	return nil
}

// Upgrade moves the subscription to a new tier. The tier is required; Until is
// overwritten unconditionally, so passing nil clears the expiry and callers
// wanting to preserve it must pass the current value. For paid tiers the
// payment fields resolve as: incoming non-nil wins, otherwise the current
// value is preserved, otherwise the default (Other / OneTime) is backfilled.
func (s *Subscription) Upgrade(ctx context.Context, subscriptionType types.SubscriptionType, until *time.Time, paymentType *types.PaymentType, paymentPlan *types.PaymentPlan) error {
	if subscriptionType == "" {
		return ierr.NewError("subscription type is required").
			WithHint("Subscription type is required").
			Mark(ierr.ErrValidation)
	}
	if err := subscriptionType.Validate(); err != nil {
		return err
	}

	if subscriptionType.IsPaid() {
		defaultType := types.PaymentTypeOther
		defaultPlan := types.PaymentPlanOneTime
		s.PaymentType = resolvePaymentValue(paymentType, s.PaymentType, &defaultType)
		s.PaymentPlan = resolvePaymentValue(paymentPlan, s.PaymentPlan, &defaultPlan)
	}

	s.SubscriptionType = subscriptionType
	s.Until = until
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)
	return nil
}

// RemoveUntil clears the expiry date, making the subscription perpetually active
func (s *Subscription) RemoveUntil(ctx context.Context) {
	s.Until = nil
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)
}

// AssignAccount assigns the given user to the account. The user must belong
// to the subscription's organization; otherwise the assignment is rejected
// and the account is left unchanged.
func (s *Subscription) AssignAccount(ctx context.Context, accountID string, u *user.User) (*Account, error) {
	if u == nil {
		return nil, ierr.NewError("user is required").
			WithHint("User is required for account assignment").
			Mark(ierr.ErrValidation)
	}
	if u.OrganizationID != s.OrganizationID {
		return nil, NewInvalidAssignmentError(u.ID, s.OrganizationID)
	}

	a := s.findAccount(accountID)
	if a == nil {
		return nil, NewAccountNotFoundError(accountID)
	}

	a.assign(u.ID)
	return a, nil
}

// UnassignAccount removes the user assignment from the account
func (s *Subscription) UnassignAccount(ctx context.Context, accountID string) (*Account, error) {
	a := s.findAccount(accountID)
	if a == nil {
		return nil, NewAccountNotFoundError(accountID)
	}
	return a.RemoveAssignment(), nil
}

// RemoveAccount deletes the account from the subscription. Used by
// administrators; the freed seat becomes allocatable again.
func (s *Subscription) RemoveAccount(ctx context.Context, accountID string) error {
	for i, a := range s.Accounts {
		if a.ID == accountID {
			s.Accounts = append(s.Accounts[:i], s.Accounts[i+1:]...)
			return nil
		}
	}
	return NewAccountNotFoundError(accountID)
}

// CountAvailableAccounts is the number of active, unassigned accounts
func (s *Subscription) CountAvailableAccounts() int {
	if !s.IsActive() {
		return 0
	}
	count := 0
	for _, a := range s.Accounts {
		if a.IsUnassigned() {
			count++
		}
	}
	return count
}

// CountUsedAccounts is the number of active, assigned accounts
func (s *Subscription) CountUsedAccounts() int {
	if !s.IsActive() {
		return 0
	}
	count := 0
	for _, a := range s.Accounts {
		if !a.IsUnassigned() {
			count++
		}
	}
	return count
}

// CountActiveAccounts is the number of accounts on an active subscription.
// Account activity is delegated to the owning subscription, so an expired
// subscription has zero active accounts.
func (s *Subscription) CountActiveAccounts() int {
	if !s.IsActive() {
		return 0
	}
	return len(s.Accounts)
}

func (s *Subscription) findAccount(accountID string) *Account {
	for _, a := range s.Accounts {
		if a.ID == accountID {
			return a
		}
	}
	return nil
}

// resolvePaymentValue picks incoming when set, then current, then the default
func resolvePaymentValue[T any](incoming, current, fallback *T) *T {
	if incoming != nil {
		return incoming
	}
	if current != nil {
		return current
	}
	return fallback
}
