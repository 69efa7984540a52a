package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalService struct {
	goalRepo portsrepo.GoalRepositoryFacade
}

func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade) *goalService {
	return &goalService{goalRepo: goalRepo}
}

// CreateGoal creates a new goal in IN_PROGRESS state.
func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest, userID string) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.TargetAmount.IsPositive() {
		return nil, apperrors.NewAppError(400, "target amount must be positive", apperrors.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewAppError(400, "end date cannot precede start date", apperrors.ErrValidation)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        domain.GoalInProgress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		logger.Error("Failed to save goal", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, goalID, requestingUserID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := s.goalRepo.FindGoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []domain.Goal{}, nil
	}
	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, requestingUserID string) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	goal, err := s.GetGoalByID(ctx, goalID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalInProgress {
		return nil, apperrors.NewAppError(400, "only an in-progress goal can be edited", apperrors.ErrValidation)
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, apperrors.NewAppError(400, "target amount must be positive", apperrors.ErrValidation)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.EndDate != nil {
		if req.EndDate.Before(goal.StartDate) {
			return nil, apperrors.NewAppError(400, "end date cannot precede start date", apperrors.ErrValidation)
		}
		goal.EndDate = *req.EndDate
	}
	// Raising the target can un-complete; reaching it completes.
	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = domain.GoalCompleted
	}
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = requestingUserID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		logger.Error("Failed to update goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		return nil, err
	}

	return goal, nil
}

// ContributeToGoal adds to the goal's current amount, completing the goal when
// the target is reached.
func (s *goalService) ContributeToGoal(ctx context.Context, goalID string, req dto.ContributeGoalRequest, requestingUserID string) (*domain.Goal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "contribution must be positive", apperrors.ErrValidation)
	}

	goal, err := s.GetGoalByID(ctx, goalID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if goal.Status != domain.GoalInProgress {
		return nil, apperrors.NewAppError(400, "goal is not in progress", apperrors.ErrValidation)
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(req.Amount)
	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = domain.GoalCompleted
	}
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = requestingUserID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		logger.Error("Failed to record goal contribution", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		return nil, err
	}

	logger.Info("Goal contribution recorded",
		slog.String("goal_id", goalID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(goal.Status)),
	)
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, goalID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetGoalByID(ctx, goalID, requestingUserID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete goal", slog.String("error", err.Error()), slog.String("goal_id", goalID))
		}
		return err
	}

	logger.Info("Goal deleted", slog.String("goal_id", goalID))
	return nil
}
