package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
)

type obligationService struct {
	obRepo portsrepo.ObligationRepositoryFacade
	pmRepo portsrepo.PaymentMethodRepositoryFacade
	now    func() time.Time
}

func NewObligationService(obRepo portsrepo.ObligationRepositoryFacade, pmRepo portsrepo.PaymentMethodRepositoryFacade) *obligationService {
	return &obligationService{obRepo: obRepo, pmRepo: pmRepo, now: time.Now}
}

func newChange(obligationID, userID string, changeType domain.ChangeType, details map[string]any, at time.Time) domain.ObligationChange {
	return domain.ObligationChange{
		ChangeID:     uuid.NewString(),
		ObligationID: obligationID,
		UserID:       userID,
		ChangeType:   changeType,
		Details:      details,
		ChangeDate:   at,
	}
}

// CreateObligation creates a new ACTIVE obligation with its schedule cursor
// set to the first occurrence (the start date itself, which may be in the
// past; the scheduler will then catch up one occurrence at a time).
func (s *obligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start := DateOnly(req.StartDate)
	if req.EndDate != nil && DateOnly(*req.EndDate).Before(start) {
		return nil, apperrors.NewAppError(400, "end date cannot precede start date", apperrors.ErrValidation)
	}
	if req.PaymentMethodID != nil {
		pm, err := s.pmRepo.FindPaymentMethodByID(ctx, *req.PaymentMethodID)
		if err != nil {
			return nil, apperrors.NewAppError(400, "payment method not found", apperrors.ErrValidation)
		}
		if pm.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
	}

	now := s.now()
	ob := domain.Obligation{
		ObligationID:    uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Amount:          req.Amount,
		Category:        domain.TransactionCategory(req.Category),
		Description:     req.Description,
		PaymentMethodID: req.PaymentMethodID,
		Frequency:       domain.Frequency(req.Frequency),
		StartDate:       start,
		RepetitionLimit: req.RepetitionLimit,
		RepetitionsDone: 0,
		NextExecution:   FirstOccurrence(start),
		Status:          domain.ObligationActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.EndDate != nil {
		end := DateOnly(*req.EndDate)
		ob.EndDate = &end
	}

	record := newChange(ob.ObligationID, userID, domain.ChangeCreated, map[string]any{
		"name":          ob.Name,
		"amount":        ob.Amount.String(),
		"frequency":     string(ob.Frequency),
		"startDate":     ob.StartDate.Format(time.DateOnly),
		"nextExecution": ob.NextExecution.Format(time.DateOnly),
	}, now)

	if err := s.obRepo.SaveObligation(ctx, ob, record); err != nil {
		logger.Error("Failed to save obligation", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Obligation created",
		slog.String("obligation_id", ob.ObligationID),
		slog.String("frequency", string(ob.Frequency)),
		slog.Time("next_execution", ob.NextExecution),
	)
	return &ob, nil
}

func (s *obligationService) GetObligationByID(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	ob, err := s.obRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	if ob.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return ob, nil
}

func (s *obligationService) ListObligations(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error) {
	obs, err := s.obRepo.FindObligationsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		return []domain.Obligation{}, nil
	}
	return obs, nil
}

func (s *obligationService) ListObligationHistory(ctx context.Context, obligationID, requestingUserID string) ([]domain.ObligationChange, error) {
	if _, err := s.GetObligationByID(ctx, obligationID, requestingUserID); err != nil {
		return nil, err
	}
	return s.obRepo.FindChangesByObligation(ctx, obligationID)
}

// UpdateObligation applies user edits. Frequency and start date are immutable.
// Editing an obligation that was flagged for review clears the flag, returning
// it to the scheduler's working set on the next scan.
func (s *obligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, requestingUserID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ob, err := s.GetObligationByID(ctx, obligationID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if ob.Status == domain.ObligationCancelled || ob.Status == domain.ObligationCompleted {
		return nil, apperrors.NewAppError(400, "obligation is terminal and cannot be edited", apperrors.ErrValidation)
	}

	details := map[string]any{}
	if req.Name != nil && *req.Name != ob.Name {
		details["name"] = map[string]any{"old": ob.Name, "new": *req.Name}
		ob.Name = *req.Name
	}
	if req.Amount != nil && !req.Amount.Equal(ob.Amount) {
		details["amount"] = map[string]any{"old": ob.Amount.String(), "new": req.Amount.String()}
		ob.Amount = *req.Amount
	}
	if req.Category != nil && domain.TransactionCategory(*req.Category) != ob.Category {
		details["category"] = map[string]any{"old": string(ob.Category), "new": *req.Category}
		ob.Category = domain.TransactionCategory(*req.Category)
	}
	if req.Description != nil {
		ob.Description = *req.Description
	}
	if req.PaymentMethodID != nil {
		pm, err := s.pmRepo.FindPaymentMethodByID(ctx, *req.PaymentMethodID)
		if err != nil {
			return nil, apperrors.NewAppError(400, "payment method not found", apperrors.ErrValidation)
		}
		if pm.UserID != requestingUserID {
			return nil, apperrors.ErrForbidden
		}
		ob.PaymentMethodID = req.PaymentMethodID
	}
	if req.EndDate != nil {
		end := DateOnly(*req.EndDate)
		if end.Before(ob.StartDate) {
			return nil, apperrors.NewAppError(400, "end date cannot precede start date", apperrors.ErrValidation)
		}
		ob.EndDate = &end
		details["endDate"] = end.Format(time.DateOnly)
	}
	if req.RepetitionLimit != nil {
		if *req.RepetitionLimit < ob.RepetitionsDone {
			return nil, apperrors.NewAppError(400, "repetition limit cannot be below executions already done", apperrors.ErrValidation)
		}
		ob.RepetitionLimit = req.RepetitionLimit
		details["repetitionLimit"] = *req.RepetitionLimit
	}

	now := s.now()
	if ob.NeedsReview {
		ob.NeedsReview = false
		details["needsReviewCleared"] = true
	}
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = requestingUserID

	record := newChange(obligationID, requestingUserID, domain.ChangeEdited, details, now)
	if err := s.obRepo.UpdateObligation(ctx, *ob, record); err != nil {
		logger.Error("Failed to update obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, err
	}

	logger.Info("Obligation updated", slog.String("obligation_id", obligationID))
	return ob, nil
}

// PauseObligation suspends scheduling. The cursor stays where it is, but
// flipping the status takes the obligation out of the due scan, so occurrences
// that fall due while paused are not generated.
func (s *obligationService) PauseObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ob, err := s.GetObligationByID(ctx, obligationID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if ob.Status != domain.ObligationActive {
		return nil, apperrors.NewAppError(400, "only an active obligation can be paused", apperrors.ErrValidation)
	}

	now := s.now()
	ob.Status = domain.ObligationPaused
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = requestingUserID

	record := newChange(obligationID, requestingUserID, domain.ChangePaused, nil, now)
	if err := s.obRepo.UpdateObligation(ctx, *ob, record); err != nil {
		logger.Error("Failed to pause obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, err
	}

	logger.Info("Obligation paused", slog.String("obligation_id", obligationID))
	return ob, nil
}

// ResumeObligation reactivates a paused obligation. The cursor is rolled
// forward past the paused window so the occurrences skipped while paused are
// not replayed: the next occurrence is the earliest one not before today.
func (s *obligationService) ResumeObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ob, err := s.GetObligationByID(ctx, obligationID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if ob.Status != domain.ObligationPaused {
		return nil, apperrors.NewAppError(400, "only a paused obligation can be resumed", apperrors.ErrValidation)
	}

	now := s.now()
	today := DateOnly(now)
	next := ob.NextExecution
	for next.Before(today) {
		next = NextOccurrence(ob.Frequency, next, ob.StartDate)
	}

	ob.Status = domain.ObligationActive
	ob.NextExecution = next
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = requestingUserID

	record := newChange(obligationID, requestingUserID, domain.ChangeResumed, map[string]any{
		"nextExecution": next.Format(time.DateOnly),
	}, now)
	if err := s.obRepo.UpdateObligation(ctx, *ob, record); err != nil {
		logger.Error("Failed to resume obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, err
	}

	logger.Info("Obligation resumed",
		slog.String("obligation_id", obligationID),
		slog.Time("next_execution", next),
	)
	return ob, nil
}

// CancelObligation terminates an obligation. Terminal: the record is kept for
// history but never scheduled again.
func (s *obligationService) CancelObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ob, err := s.GetObligationByID(ctx, obligationID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if ob.Status == domain.ObligationCancelled || ob.Status == domain.ObligationCompleted {
		return nil, apperrors.NewAppError(400, "obligation is already terminal", apperrors.ErrValidation)
	}

	now := s.now()
	ob.Status = domain.ObligationCancelled
	ob.LastUpdatedAt = now
	ob.LastUpdatedBy = requestingUserID

	record := newChange(obligationID, requestingUserID, domain.ChangeCancelled, nil, now)
	if err := s.obRepo.UpdateObligation(ctx, *ob, record); err != nil {
		logger.Error("Failed to cancel obligation", slog.String("error", err.Error()), slog.String("obligation_id", obligationID))
		return nil, err
	}

	logger.Info("Obligation cancelled", slog.String("obligation_id", obligationID))
	return ob, nil
}
