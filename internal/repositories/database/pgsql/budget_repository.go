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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `
	budget_id, user_id, category, limit_amount, current_amount, month, exceeded_alert,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.Category,
		&m.LimitAmount,
		&m.CurrentAmount,
		&m.Month,
		&m.ExceededAlert,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget persists a new budget. One budget per (user, category, month).
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, user_id, category, limit_amount, current_amount, month, exceeded_alert,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.UserID, m.Category, m.LimitAmount, m.CurrentAmount, m.Month, m.ExceededAlert,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert budget "+m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find budget by ID "+budgetID, err)
	}
	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// FindBudgetsByUser retrieves a user's budgets for the given month.
func (r *PgxBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1 AND month = $2 ORDER BY category;`
	rows, err := r.Pool.Query(ctx, query, userID, month)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budgets for user "+userID, err)
	}
	defer rows.Close()

	out := []domain.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget row", err)
		}
		out = append(out, mapping.ToDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating budget rows", err)
	}
	return out, nil
}

// UpdateBudget updates an existing budget.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET limit_amount = $2, exceeded_alert = current_amount > $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.BudgetID, m.LimitAmount, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget "+m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete budget "+budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddToBudgetSpend folds a transaction's amount into the matching (category,
// month) budget, if one exists, refreshing the exceeded flag in the same
// statement. No matching budget is not an error.
func (r *PgxBudgetRepository) AddToBudgetSpend(ctx context.Context, userID string, category domain.TransactionCategory, month time.Time, amount decimal.Decimal) error {
	query := `
		UPDATE budgets
		SET current_amount = current_amount + $4,
		    exceeded_alert = current_amount + $4 > limit_amount,
		    last_updated_at = $5,
		    last_updated_by = $1
		WHERE user_id = $1 AND category = $2 AND month = $3;
	`
	_, err := r.Pool.Exec(ctx, query, userID, string(category), month, amount, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to update budget spend for user "+userID, err)
	}
	return nil
}
