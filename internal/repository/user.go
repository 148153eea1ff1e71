package repository

import (
	"context"
	"database/sql"

	"github.com/seatstack/seatstack/internal/domain/user"
	ierr "github.com/seatstack/seatstack/internal/errors"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/postgres"
)

type userRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

// NewUserRepository creates a sqlx-backed user repository
func NewUserRepository(db postgres.IClient, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, organization_id, email, name,
	tenant_id, status, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.OrganizationID, u.Email, u.Name,
		u.TenantID, u.Status, u.CreatedAt, u.UpdatedAt, u.CreatedBy, u.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.get(ctx, "email = $1", email)
}

func (r *userRepository) get(ctx context.Context, where string, arg string) (*user.User, error) {
	q := r.db.Querier(ctx)

	var u user.User
	err := q.GetContext(ctx, &u, `
		SELECT `+userColumns+` FROM users
		WHERE `+where+` AND status != 'deleted'`, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				WithReportableDetails(map[string]any{"lookup": arg}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) ListByOrganization(ctx context.Context, organizationID string) ([]*user.User, error) {
	q := r.db.Querier(ctx)

	users := []*user.User{}
	err := q.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users
		WHERE organization_id = $1 AND status != 'deleted'
		ORDER BY created_at ASC`, organizationID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list users").
			Mark(ierr.ErrDatabase)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		UPDATE users
		SET email = $2, name = $3, updated_at = $4, updated_by = $5
		WHERE id = $1`,
		u.ID, u.Email, u.Name, u.UpdatedAt, u.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx, `UPDATE users SET status = 'deleted' WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
