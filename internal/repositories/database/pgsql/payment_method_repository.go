package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/models"
	"github.com/centsible/centsible_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentMethodRepository struct {
	BaseRepository
}

func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `
	payment_method_id, user_id, name, type, last_four_digits, issuer, active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.LastFourDigits,
		&m.Issuer,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePaymentMethod persists a new payment method.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	query := `
		INSERT INTO payment_methods (payment_method_id, user_id, name, type, last_four_digits, issuer, active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentMethodID, m.UserID, m.Name, m.Type, m.LastFourDigits, m.Issuer, m.Active,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment method "+m.PaymentMethodID, err)
	}
	return nil
}

// FindPaymentMethodByID retrieves a payment method by ID.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE payment_method_id = $1;`
	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, query, paymentMethodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment method by ID "+paymentMethodID, err)
	}
	d := mapping.ToDomainPaymentMethod(m)
	return &d, nil
}

// FindPaymentMethodsByUser retrieves all of a user's payment methods.
func (r *PgxPaymentMethodRepository) FindPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment methods for user "+userID, err)
	}
	defer rows.Close()

	out := []domain.PaymentMethod{}
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment method row", err)
		}
		out = append(out, mapping.ToDomainPaymentMethod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment method rows", err)
	}
	return out, nil
}

// UpdatePaymentMethod updates an existing payment method.
func (r *PgxPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(pm)
	query := `
		UPDATE payment_methods
		SET name = $2, last_four_digits = $3, issuer = $4, last_updated_at = $5, last_updated_by = $6
		WHERE payment_method_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PaymentMethodID, m.Name, m.LastFourDigits, m.Issuer, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment method "+m.PaymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePaymentMethod soft-deletes a payment method.
func (r *PgxPaymentMethodRepository) DeactivatePaymentMethod(ctx context.Context, paymentMethodID string, updatedBy string) error {
	query := `
		UPDATE payment_methods
		SET active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_method_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentMethodID, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate payment method "+paymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
