package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// GoalSvcFacade defines operations for managing savings goals.
type GoalSvcFacade interface {
	// CreateGoal creates a new goal in IN_PROGRESS state.
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error)

	// GetGoalByID retrieves a goal, enforcing ownership.
	GetGoalByID(ctx context.Context, goalID, requestingUserID string) (*domain.Goal, error)

	// ListGoals retrieves all of the user's goals.
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)

	// UpdateGoal updates a goal, enforcing ownership.
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, requestingUserID string) (*domain.Goal, error)

	// ContributeToGoal adds to the goal's current amount, completing the goal
	// when the target is reached.
	ContributeToGoal(ctx context.Context, goalID string, req dto.ContributeGoalRequest, requestingUserID string) (*domain.Goal, error)

	// DeleteGoal removes a goal, enforcing ownership.
	DeleteGoal(ctx context.Context, goalID, requestingUserID string) error
}
