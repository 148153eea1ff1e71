package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/seatstack/seatstack/internal/domain/user"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	return ctx
}

func TestNewSubscriptionStartsTrial(t *testing.T) {
	ctx := testContext()
	sub := New(ctx, "org_1")

	assert.Equal(t, types.SubscriptionTypeTest, sub.SubscriptionType)
	assert.Equal(t, "org_1", sub.OrganizationID)
	require.NotNil(t, sub.Until)
	assert.True(t, sub.IsActive())
	assert.Empty(t, sub.Accounts)

	expected := time.Now().UTC().AddDate(0, 0, types.TrialPeriodDays)
	assert.WithinDuration(t, expected, *sub.Until, time.Minute)
}

func TestIsActive(t *testing.T) {
	ctx := testContext()

	t.Run("nil until is perpetually active", func(t *testing.T) {
		sub := New(ctx, "org_1")
		sub.Until = nil
		assert.True(t, sub.IsActive())
	})

	t.Run("active for the whole calendar day of until", func(t *testing.T) {
		sub := New(ctx, "org_1")
		today := time.Now().UTC()
		sub.Until = &today
		assert.True(t, sub.IsActive())
	})

	t.Run("expired the day after until", func(t *testing.T) {
		sub := New(ctx, "org_1")
		past := time.Now().UTC().AddDate(0, 0, -2)
		sub.Until = &past
		assert.False(t, sub.IsActive())
	})
}

func TestNewAccountRespectsCeiling(t *testing.T) {
	ctx := testContext()
	sub := New(ctx, "org_1")
	require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypePocket, sub.Until, nil, nil))

	max := types.SubscriptionTypePocket.MaxAccounts()
	for i := 0; i < max; i++ {
		require.NotNil(t, sub.NewAccount(ctx))
	}
	assert.Len(t, sub.Accounts, max)

	// One past the ceiling fails without side effects
	assert.Nil(t, sub.NewAccount(ctx))
	assert.Len(t, sub.Accounts, max)
}

func TestNewAccountUnlimitedTiers(t *testing.T) {
	ctx := testContext()
	sub := New(ctx, "org_1")
	require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, nil, nil, nil))

	for i := 0; i < 50; i++ {
		require.NotNil(t, sub.NewAccount(ctx))
	}
	assert.Len(t, sub.Accounts, 50)
}

func TestGetFreeAccount(t *testing.T) {
	ctx := testContext()

	t.Run("returns first unassigned in allocation order", func(t *testing.T) {
		sub := New(ctx, "org_1")
		first := sub.NewAccount(ctx)
		second := sub.NewAccount(ctx)
		require.NotNil(t, first)
		require.NotNil(t, second)

		free := sub.GetFreeAccount(ctx)
		require.NotNil(t, free)
		assert.Equal(t, first.ID, free.ID)
	})

	t.Run("non-master returns nil when all seats taken", func(t *testing.T) {
		sub := New(ctx, "org_1")
		a := sub.NewAccount(ctx)
		require.NotNil(t, a)

		u := user.New(ctx, "org_1", "owner@example.com", "Owner")
		_, err := sub.AssignAccount(ctx, a.ID, u)
		require.NoError(t, err)

		assert.Nil(t, sub.GetFreeAccount(ctx))
	})

	t.Run("master allocates a new seat when none is free", func(t *testing.T) {
		sub := New(ctx, "org_1")
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMaster, nil, nil, nil))

		u := user.New(ctx, "org_1", "owner@example.com", "Owner")
		for i := 0; i < 3; i++ {
			free := sub.GetFreeAccount(ctx)
			require.NotNil(t, free)
			_, err := sub.AssignAccount(ctx, free.ID, u)
			require.NoError(t, err)
		}
		assert.Len(t, sub.Accounts, 3)
	})
}

func TestUpgrade(t *testing.T) {
	ctx := testContext()

	t.Run("requires a subscription type", func(t *testing.T) {
		sub := New(ctx, "org_1")
		err := sub.Upgrade(ctx, "", nil, nil, nil)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		sub := New(ctx, "org_1")
		err := sub.Upgrade(ctx, types.SubscriptionType("platinum"), nil, nil, nil)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("backfills payment defaults on paid tiers", func(t *testing.T) {
		sub := New(ctx, "org_1")
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeCombo, nil, nil, nil))

		require.NotNil(t, sub.PaymentType)
		require.NotNil(t, sub.PaymentPlan)
		assert.Equal(t, types.PaymentTypeOther, *sub.PaymentType)
		assert.Equal(t, types.PaymentPlanOneTime, *sub.PaymentPlan)
	})

	t.Run("incoming payment values win over current", func(t *testing.T) {
		sub := New(ctx, "org_1")
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeCombo, nil, nil, nil))

		paymentType := types.PaymentTypeCreditCard
		paymentPlan := types.PaymentPlanMonthly
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, nil, &paymentType, &paymentPlan))

		assert.Equal(t, types.PaymentTypeCreditCard, *sub.PaymentType)
		assert.Equal(t, types.PaymentPlanMonthly, *sub.PaymentPlan)
	})

	t.Run("current payment values preserved when incoming is nil", func(t *testing.T) {
		sub := New(ctx, "org_1")
		paymentType := types.PaymentTypeInvoice
		paymentPlan := types.PaymentPlanAnnually
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeCombo, nil, &paymentType, &paymentPlan))
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, nil, nil, nil))

		assert.Equal(t, types.PaymentTypeInvoice, *sub.PaymentType)
		assert.Equal(t, types.PaymentPlanAnnually, *sub.PaymentPlan)
	})

	t.Run("until is overwritten unconditionally", func(t *testing.T) {
		sub := New(ctx, "org_1")
		require.NotNil(t, sub.Until)
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, nil, nil, nil))
		assert.Nil(t, sub.Until)

		until := types.DefaultPaidUntil
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, &until, nil, nil))
		require.NotNil(t, sub.Until)
		assert.True(t, sub.Until.Equal(types.DefaultPaidUntil))
	})

	t.Run("downgrade never evicts accounts", func(t *testing.T) {
		sub := New(ctx, "org_1")
		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypeMulti, nil, nil, nil))
		for i := 0; i < 10; i++ {
			require.NotNil(t, sub.NewAccount(ctx))
		}

		require.NoError(t, sub.Upgrade(ctx, types.SubscriptionTypePocket, nil, nil, nil))
		assert.Len(t, sub.Accounts, 10)

		// But no further allocation is possible over the new ceiling
		assert.Nil(t, sub.NewAccount(ctx))
	})
}

func TestAssignAccount(t *testing.T) {
	ctx := testContext()

	t.Run("assigns a user of the same organization", func(t *testing.T) {
		sub := New(ctx, "org_1")
		a := sub.NewAccount(ctx)
		require.NotNil(t, a)

		u := user.New(ctx, "org_1", "alice@example.com", "Alice")
		assigned, err := sub.AssignAccount(ctx, a.ID, u)
		require.NoError(t, err)
		require.NotNil(t, assigned.UserID)
		assert.Equal(t, u.ID, *assigned.UserID)
		assert.False(t, assigned.IsUnassigned())
	})

	t.Run("rejects a user of another organization", func(t *testing.T) {
		sub := New(ctx, "org_1")
		a := sub.NewAccount(ctx)
		require.NotNil(t, a)

		intruder := user.New(ctx, "org_2", "bob@example.com", "Bob")
		_, err := sub.AssignAccount(ctx, a.ID, intruder)
		assert.True(t, ierr.IsInvalidOperation(err))
		assert.Nil(t, a.UserID)
	})

	t.Run("reassignment resets the activation timestamp", func(t *testing.T) {
		sub := New(ctx, "org_1")
		a := sub.NewAccount(ctx)
		require.NotNil(t, a)
		initial := a.Activated

		time.Sleep(10 * time.Millisecond)
		u := user.New(ctx, "org_1", "alice@example.com", "Alice")
		_, err := sub.AssignAccount(ctx, a.ID, u)
		require.NoError(t, err)
		assert.True(t, a.Activated.After(initial))
	})

	t.Run("unknown account", func(t *testing.T) {
		sub := New(ctx, "org_1")
		u := user.New(ctx, "org_1", "alice@example.com", "Alice")
		_, err := sub.AssignAccount(ctx, "acct_missing", u)
		assert.True(t, ierr.IsNotFound(err))
	})
}

func TestUnassignAccount(t *testing.T) {
	ctx := testContext()
	sub := New(ctx, "org_1")
	a := sub.NewAccount(ctx)
	require.NotNil(t, a)

	u := user.New(ctx, "org_1", "alice@example.com", "Alice")
	_, err := sub.AssignAccount(ctx, a.ID, u)
	require.NoError(t, err)

	freed, err := sub.UnassignAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, freed.IsUnassigned())

	// The freed seat is allocatable again
	free := sub.GetFreeAccount(ctx)
	require.NotNil(t, free)
	assert.Equal(t, a.ID, free.ID)
}

func TestRemoveAccount(t *testing.T) {
	ctx := testContext()
	sub := New(ctx, "org_1")
	a := sub.NewAccount(ctx)
	b := sub.NewAccount(ctx)
	require.NotNil(t, a)
	require.NotNil(t, b)

	require.NoError(t, sub.RemoveAccount(ctx, a.ID))
	assert.Len(t, sub.Accounts, 1)
	assert.Equal(t, b.ID, sub.Accounts[0].ID)

	err := sub.RemoveAccount(ctx, a.ID)
	assert.True(t, ierr.IsNotFound(err))
}

func TestAccountCounts(t *testing.T) {
	ctx := testContext()

	t.Run("counts assigned and unassigned seats", func(t *testing.T) {
		sub := New(ctx, "org_1")
		a := sub.NewAccount(ctx)
		sub.NewAccount(ctx)
		require.NotNil(t, a)

		u := user.New(ctx, "org_1", "alice@example.com", "Alice")
		_, err := sub.AssignAccount(ctx, a.ID, u)
		require.NoError(t, err)

		assert.Equal(t, 1, sub.CountUsedAccounts())
		assert.Equal(t, 1, sub.CountAvailableAccounts())
		assert.Equal(t, 2, sub.CountActiveAccounts())
	})

	t.Run("expired subscription counts zero", func(t *testing.T) {
		sub := New(ctx, "org_1")
		sub.NewAccount(ctx)
		past := time.Now().UTC().AddDate(0, 0, -2)
		sub.Until = &past

		assert.Equal(t, 0, sub.CountUsedAccounts())
		assert.Equal(t, 0, sub.CountAvailableAccounts())
		assert.Equal(t, 0, sub.CountActiveAccounts())
	})
}
