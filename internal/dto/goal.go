package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the payload for creating a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	StartDate    time.Time       `json:"startDate" binding:"required"`
	EndDate      time.Time       `json:"endDate" binding:"required"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
type UpdateGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	EndDate      *time.Time       `json:"endDate"`
}

// ContributeGoalRequest adds funds toward a goal.
type ContributeGoalRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse is the public view of a goal.
type GoalResponse struct {
	GoalID        string          `json:"goalID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Status        string          `json:"status"`
}

// ToGoalResponse converts a domain.Goal to its DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:        g.GoalID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		Status:        string(g.Status),
	}
}

// ToGoalListResponse converts a slice of goals.
func ToGoalListResponse(gs []domain.Goal) []GoalResponse {
	out := make([]GoalResponse, len(gs))
	for i := range gs {
		out[i] = ToGoalResponse(&gs[i])
	}
	return out
}
