package repositories

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// GoalReader defines read operations for goals.
type GoalReader interface {
	// FindGoalByID retrieves a specific goal.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// FindGoalsByUser retrieves all of a user's goals.
	FindGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goals.
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal updates an existing goal.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalRepositoryFacade combines all goal repository interfaces.
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
