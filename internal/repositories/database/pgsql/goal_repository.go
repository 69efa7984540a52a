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

type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

const goalColumns = `
	goal_id, user_id, name, target_amount, current_amount, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveGoal persists a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (goal_id, user_id, name, target_amount, current_amount, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.CurrentAmount, m.StartDate, m.EndDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert goal "+m.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a specific goal.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find goal by ID "+goalID, err)
	}
	d := mapping.ToDomainGoal(m)
	return &d, nil
}

// FindGoalsByUser retrieves all of a user's goals.
func (r *PgxGoalRepository) FindGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY end_date;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query goals for user "+userID, err)
	}
	defer rows.Close()

	out := []domain.Goal{}
	for rows.Next() {
		m, err := scanGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan goal row", err)
		}
		out = append(out, mapping.ToDomainGoal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating goal rows", err)
	}
	return out, nil
}

// UpdateGoal updates an existing goal.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, current_amount = $4, end_date = $5, status = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE goal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.Name, m.TargetAmount, m.CurrentAmount, m.EndDate, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update goal "+m.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete goal "+goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
