package repository

import (
	"context"
	"database/sql"

	"github.com/seatstack/seatstack/internal/domain/organization"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
	"github.com/seatstack/seatstack/internal/types"
)

type organizationRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewOrganizationRepository creates a sqlx-backed organization repository
func NewOrganizationRepository(db postgres.IClient, logger *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, logger: logger}
}

const organizationColumns = `id, name, owner_id, billing_customer_id, has_billing_account, reseller,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO organizations (`+organizationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		org.ID, org.Name, org.OwnerID, org.BillingCustomerID, org.HasBillingAccount, org.Reseller,
		org.TenantID, org.Status, org.CreatedAt, org.UpdatedAt, org.CreatedBy, org.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create organization").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *organizationRepository) GetByBillingCustomerID(ctx context.Context, billingCustomerID string) (*organization.Organization, error) {
	return r.get(ctx, "billing_customer_id = $1", billingCustomerID)
}

func (r *organizationRepository) get(ctx context.Context, where string, arg string) (*organization.Organization, error) {
	q := r.db.Querier(ctx)

	var org organization.Organization
	err := q.GetContext(ctx, &org, `
		SELECT `+organizationColumns+` FROM organizations
		WHERE `+where+` AND status != 'deleted'`, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("organization not found").
				WithHint("Organization not found").
				WithReportableDetails(map[string]any{"lookup": arg}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load organization").
			Mark(ierr.ErrDatabase)
	}
	return &org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		UPDATE organizations
		SET name = $2, owner_id = $3, billing_customer_id = $4, has_billing_account = $5,
			reseller = $6, updated_at = $7, updated_by = $8
		WHERE id = $1`,
		org.ID, org.Name, org.OwnerID, org.BillingCustomerID, org.HasBillingAccount,
		org.Reseller, org.UpdatedAt, org.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update organization").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	q := r.db.Querier(ctx)

	orgs := []*organization.Organization{}
	err := q.SelectContext(ctx, &orgs, `
		SELECT `+organizationColumns+` FROM organizations
		WHERE tenant_id = $1 AND status != 'deleted'
		ORDER BY created_at DESC`, types.GetTenantID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list organizations").
			Mark(ierr.ErrDatabase)
	}
	return orgs, nil
}

func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `UPDATE organizations SET status = 'deleted' WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete organization").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
