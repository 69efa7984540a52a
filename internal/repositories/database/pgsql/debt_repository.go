package pgsql

import (
	"context"
	"errors"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/models"
	"github.com/centsible/centsible_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDebtRepository struct {
	BaseRepository
}

func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `
	debt_id, user_id, creditor_id, description, amount, start_date, due_date, paid,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDebt(row pgx.Row) (models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.UserID,
		&m.CreditorID,
		&m.Description,
		&m.Amount,
		&m.StartDate,
		&m.DueDate,
		&m.Paid,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDebt persists a new debt.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (debt_id, user_id, creditor_id, description, amount, start_date, due_date, paid,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DebtID, m.UserID, m.CreditorID, m.Description, m.Amount, m.StartDate, m.DueDate, m.Paid,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert debt "+m.DebtID, err)
	}
	return nil
}

// FindDebtByID retrieves a specific debt.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	m, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt by ID "+debtID, err)
	}
	d := mapping.ToDomainDebt(m)
	return &d, nil
}

// FindDebtsByUser retrieves all debts owed by a user.
func (r *PgxDebtRepository) FindDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 ORDER BY due_date;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts for user "+userID, err)
	}
	defer rows.Close()

	out := []domain.Debt{}
	for rows.Next() {
		m, err := scanDebt(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row", err)
		}
		out = append(out, mapping.ToDomainDebt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows", err)
	}
	return out, nil
}

// UpdateDebt updates an existing debt.
func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		UPDATE debts
		SET description = $2, amount = $3, due_date = $4, paid = $5, last_updated_at = $6, last_updated_by = $7
		WHERE debt_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DebtID, m.Description, m.Amount, m.DueDate, m.Paid, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update debt "+m.DebtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDebt removes a debt.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM debts WHERE debt_id = $1;`, debtID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete debt "+debtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
