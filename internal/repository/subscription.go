package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/seatstack/seatstack/internal/domain/subscription"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
	"github.com/seatstack/seatstack/internal/types"
)

type subscriptionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewSubscriptionRepository creates a sqlx-backed subscription repository
func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

const subscriptionColumns = `id, organization_id, subscription_type, payment_plan, payment_type,
	since, until, postal_bills, tenant_id, status, created_at, updated_at, created_by, updated_by`

const accountColumns = `id, subscription_id, activated, user_id,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	q := r.db.Querier(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sub.ID, sub.OrganizationID, sub.SubscriptionType, sub.PaymentPlan, sub.PaymentType,
		sub.Since, sub.Until, sub.PostalBills, sub.TenantID, sub.Status,
		sub.CreatedAt, sub.UpdatedAt, sub.CreatedBy, sub.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}

	for _, a := range sub.Accounts {
		if err := r.insertAccount(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *subscriptionRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*subscription.Subscription, error) {
	return r.get(ctx, "organization_id = $1", organizationID)
}

func (r *subscriptionRepository) get(ctx context.Context, where string, arg string) (*subscription.Subscription, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE ` + where + ` AND status != 'deleted'`
	// Inside a transaction the aggregate row is locked so concurrent seat
	// allocation cannot race past the ceiling.
	if r.db.TxFromContext(ctx) != nil {
		query += " FOR UPDATE"
	}

	var sub subscription.Subscription
	if err := q.GetContext(ctx, &sub, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, subscription.NewNotFoundError(arg)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load subscription").
			Mark(ierr.ErrDatabase)
	}

	accounts := []*subscription.Account{}
	err := q.SelectContext(ctx, &accounts, `
		SELECT `+accountColumns+` FROM accounts
		WHERE subscription_id = $1 AND status != 'deleted'
		ORDER BY created_at ASC, id ASC`, sub.ID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load subscription accounts").
			Mark(ierr.ErrDatabase)
	}
	sub.Accounts = accounts

	return &sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	q := r.db.Querier(ctx)

	_, err := q.ExecContext(ctx, `
		UPDATE subscriptions
		SET subscription_type = $2, payment_plan = $3, payment_type = $4,
			until = $5, postal_bills = $6, updated_at = $7, updated_by = $8
		WHERE id = $1`,
		sub.ID, sub.SubscriptionType, sub.PaymentPlan, sub.PaymentType,
		sub.Until, sub.PostalBills, sub.UpdatedAt, sub.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}

	return r.reconcileAccounts(ctx, sub)
}

// reconcileAccounts upserts the aggregate's accounts and removes rows that
// no longer belong to it
func (r *subscriptionRepository) reconcileAccounts(ctx context.Context, sub *subscription.Subscription) error {
	q := r.db.Querier(ctx)

	keep := make([]string, 0, len(sub.Accounts))
	for _, a := range sub.Accounts {
		keep = append(keep, a.ID)
	}

	if len(keep) == 0 {
		if _, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE subscription_id = $1`, sub.ID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to remove subscription accounts").
				Mark(ierr.ErrDatabase)
		}
	} else {
		query, args, err := sqlx.In(`DELETE FROM accounts WHERE subscription_id = ? AND id NOT IN (?)`, sub.ID, keep)
		if err != nil {
			return ierr.WithError(err).Mark(ierr.ErrSystem)
		}
		query = sqlx.Rebind(sqlx.DOLLAR, query)
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to remove subscription accounts").
				Mark(ierr.ErrDatabase)
		}
	}

	for _, a := range sub.Accounts {
		if err := r.upsertAccount(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *subscriptionRepository) insertAccount(ctx context.Context, a *subscription.Account) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.SubscriptionID, a.Activated, a.UserID, a.TenantID, a.Status,
		a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create account").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) upsertAccount(ctx context.Context, a *subscription.Account) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET activated = EXCLUDED.activated, user_id = EXCLUDED.user_id,
			updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`,
		a.ID, a.SubscriptionID, a.Activated, a.UserID, a.TenantID, a.Status,
		a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save account").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Querier(ctx)

	// Accounts are cascade-deleted with the subscription
	if _, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE subscription_id = $1`, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete subscription accounts").
			Mark(ierr.ErrDatabase)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*subscription.Subscription, error) {
	q := r.db.Querier(ctx)

	subs := []*subscription.Subscription{}
	err := q.SelectContext(ctx, &subs, `
		SELECT `+subscriptionColumns+` FROM subscriptions
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY created_at DESC`, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}
