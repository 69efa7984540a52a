package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
)

// obligationExecutor turns one due occurrence of a claimed obligation into a
// ledger entry and a cursor advance. Every step is written so that a crash at
// any point leaves the system recoverable: the ledger write is idempotent on
// the (obligation, occurrence) pair, and the cursor only moves in the final
// atomic Advance. Re-running after a crash therefore converges instead of
// double-charging.
type obligationExecutor struct {
	obRepo     portsrepo.ObligationRepositoryFacade
	txnRepo    portsrepo.TransactionRepositoryFacade
	budgetRepo portsrepo.BudgetRepositoryFacade
	now        func() time.Time
}

func NewObligationExecutor(obRepo portsrepo.ObligationRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) *obligationExecutor {
	return &obligationExecutor{obRepo: obRepo, txnRepo: txnRepo, budgetRepo: budgetRepo, now: time.Now}
}

// ExecuteDue processes exactly one occurrence (the obligation's current
// cursor) of a claimed obligation. Callers own the claim; ExecuteDue releases
// or consumes it depending on the outcome:
//
//   - transient failure: the claim is released and the occurrence stays due,
//     so the next scan retries it.
//   - permanent data problem: the obligation is flagged for review and drops
//     out of scheduling until a user edit clears the flag.
//   - success or termination: Advance clears the claim atomically with the
//     state it persists.
func (e *obligationExecutor) ExecuteDue(ctx context.Context, ob domain.Obligation) (portssvc.ExecutionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("obligation_id", ob.ObligationID))
	occurrence := DateOnly(ob.NextExecution)

	if err := e.checkInvariants(ob); err != nil {
		// A violated invariant means a bug upstream, not bad user data.
		// Fail loudly and leave the claim to expire rather than guessing at
		// a repair.
		logger.Error("Refusing to execute obligation in invalid state", slog.String("error", err.Error()))
		return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed, Occurrence: occurrence, Status: ob.Status}, err
	}

	// Terminal window checks come before any write. An occurrence beyond the
	// end date or past the repetition limit must never produce an entry.
	if ob.PastEndDate(occurrence) || ob.LimitReached() {
		return e.complete(ctx, logger, ob, occurrence)
	}

	if err := e.checkData(ob); err != nil {
		return e.flag(ctx, logger, ob, occurrence, err)
	}

	txnID, created, err := e.writeLedgerEntry(ctx, ob, occurrence)
	if err != nil {
		// Storage trouble is transient: release the claim and let a later
		// scan retry the same occurrence.
		logger.Warn("Ledger write failed, releasing claim", slog.String("error", err.Error()), slog.Time("occurrence", occurrence))
		if relErr := e.obRepo.Release(ctx, ob.ObligationID); relErr != nil {
			logger.Error("Failed to release claim after ledger error", slog.String("error", relErr.Error()))
		}
		return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed, Occurrence: occurrence, Status: ob.Status}, err
	}

	if created && ob.Amount.IsPositive() {
		// Advisory budget tracking; a failure here never blocks the advance.
		if err := e.budgetRepo.AddToBudgetSpend(ctx, ob.UserID, ob.Category, monthOf(occurrence), ob.Amount); err != nil {
			logger.Error("Failed to fold scheduled entry into budget", slog.String("error", err.Error()))
		}
	}

	// Repetition accounting counts the occurrence, not the insert: when the
	// entry already existed (crash recovery), the previous run died before
	// advancing, so the count still has to move with the cursor now.
	repetitionsDone := ob.RepetitionsDone + 1
	next := NextOccurrence(ob.Frequency, occurrence, ob.StartDate)

	status := domain.ObligationActive
	limitNowReached := ob.RepetitionLimit != nil && repetitionsDone >= *ob.RepetitionLimit
	if limitNowReached || ob.PastEndDate(next) {
		status = domain.ObligationCompleted
	}

	now := e.now()
	record := domain.ObligationChange{
		ChangeID:     uuid.NewString(),
		ObligationID: ob.ObligationID,
		UserID:       ob.UserID,
		ChangeType:   domain.ChangeExecuted,
		Details: map[string]any{
			"occurrence":    occurrence.Format(time.DateOnly),
			"transactionID": txnID,
			"entryCreated":  created,
			"repetitions":   repetitionsDone,
			"nextExecution": next.Format(time.DateOnly),
		},
		ChangeDate: now,
	}

	params := portsrepo.AdvanceParams{
		ObligationID:     ob.ObligationID,
		NewStatus:        status,
		NewNextExecution: next,
		LastExecution:    &occurrence,
		RepetitionsDone:  repetitionsDone,
		Record:           record,
	}
	if err := e.obRepo.Advance(ctx, params); err != nil {
		// The entry exists but the cursor did not move. The claim will
		// expire and a later run will re-find the same occurrence, hit the
		// unique pair, and complete the advance without a second entry.
		logger.Error("Failed to advance obligation after ledger write", slog.String("error", err.Error()))
		return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed, Occurrence: occurrence, Status: ob.Status, TransactionID: txnID, EntryCreated: created}, err
	}

	outcome := portssvc.OutcomeExecuted
	if !created {
		outcome = portssvc.OutcomeSkipped
	}
	logger.Info("Obligation executed",
		slog.String("outcome", string(outcome)),
		slog.Time("occurrence", occurrence),
		slog.String("transaction_id", txnID),
		slog.Time("next_execution", next),
		slog.String("status", string(status)),
	)
	return portssvc.ExecutionResult{
		Outcome:       outcome,
		Occurrence:    occurrence,
		TransactionID: txnID,
		Status:        status,
		NextExecution: next,
		EntryCreated:  created,
	}, nil
}

// checkInvariants verifies state the claim path should have guaranteed.
func (e *obligationExecutor) checkInvariants(ob domain.Obligation) error {
	if ob.Status != domain.ObligationActive {
		return fmt.Errorf("obligation %s claimed with status %s", ob.ObligationID, ob.Status)
	}
	if ob.NeedsReview {
		return fmt.Errorf("obligation %s claimed while flagged for review", ob.ObligationID)
	}
	if ob.NextExecution.IsZero() {
		return fmt.Errorf("obligation %s has no schedule cursor", ob.ObligationID)
	}
	if !domain.ValidFrequency(ob.Frequency) {
		return fmt.Errorf("obligation %s has unknown frequency %q", ob.ObligationID, ob.Frequency)
	}
	return nil
}

// checkData validates the fields that flow into the ledger entry. Failures
// here are permanent: retrying cannot fix a bad amount or category, only a
// user edit can.
func (e *obligationExecutor) checkData(ob domain.Obligation) error {
	if !ob.Amount.IsPositive() {
		return fmt.Errorf("amount %s is not positive: %w", ob.Amount, apperrors.ErrValidation)
	}
	if !domain.ValidTransactionCategory(ob.Category) {
		return fmt.Errorf("unknown category %q: %w", ob.Category, apperrors.ErrValidation)
	}
	return nil
}

func (e *obligationExecutor) writeLedgerEntry(ctx context.Context, ob domain.Obligation, occurrence time.Time) (string, bool, error) {
	now := e.now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		UserID:             ob.UserID,
		Amount:             ob.Amount,
		Type:               domain.Expense,
		Category:           ob.Category,
		Description:        ob.Description,
		PaymentMethodID:    ob.PaymentMethodID,
		Date:               occurrence,
		IsScheduled:        true,
		SourceObligationID: &ob.ObligationID,
		OccurrenceDate:     &occurrence,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ob.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ob.UserID,
		},
	}
	return e.txnRepo.SaveScheduledTransaction(ctx, txn)
}

// complete terminates an obligation whose window closed without a final
// occurrence: the cursor stays put and the status flips to COMPLETED.
func (e *obligationExecutor) complete(ctx context.Context, logger *slog.Logger, ob domain.Obligation, occurrence time.Time) (portssvc.ExecutionResult, error) {
	now := e.now()
	reason := "repetition limit reached"
	if ob.PastEndDate(occurrence) {
		reason = "occurrence past end date"
	}
	record := domain.ObligationChange{
		ChangeID:     uuid.NewString(),
		ObligationID: ob.ObligationID,
		UserID:       ob.UserID,
		ChangeType:   domain.ChangeCompleted,
		Details: map[string]any{
			"reason":     reason,
			"occurrence": occurrence.Format(time.DateOnly),
		},
		ChangeDate: now,
	}
	params := portsrepo.AdvanceParams{
		ObligationID:     ob.ObligationID,
		NewStatus:        domain.ObligationCompleted,
		NewNextExecution: ob.NextExecution,
		LastExecution:    ob.LastExecution,
		RepetitionsDone:  ob.RepetitionsDone,
		Record:           record,
	}
	if err := e.obRepo.Advance(ctx, params); err != nil {
		logger.Error("Failed to complete obligation", slog.String("error", err.Error()))
		return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed, Occurrence: occurrence, Status: ob.Status}, err
	}

	logger.Info("Obligation completed", slog.String("reason", reason))
	return portssvc.ExecutionResult{
		Outcome:       portssvc.OutcomeCompleted,
		Occurrence:    occurrence,
		Status:        domain.ObligationCompleted,
		NextExecution: ob.NextExecution,
	}, nil
}

// flag marks an obligation for manual review after a permanent data error.
func (e *obligationExecutor) flag(ctx context.Context, logger *slog.Logger, ob domain.Obligation, occurrence time.Time, cause error) (portssvc.ExecutionResult, error) {
	now := e.now()
	record := domain.ObligationChange{
		ChangeID:     uuid.NewString(),
		ObligationID: ob.ObligationID,
		UserID:       ob.UserID,
		ChangeType:   domain.ChangeExecutionFailed,
		Details: map[string]any{
			"occurrence": occurrence.Format(time.DateOnly),
			"error":      cause.Error(),
		},
		ChangeDate: now,
	}
	if err := e.obRepo.FlagForReview(ctx, ob.ObligationID, record); err != nil {
		logger.Error("Failed to flag obligation for review", slog.String("error", err.Error()))
		if !errors.Is(err, apperrors.ErrNotFound) {
			if relErr := e.obRepo.Release(ctx, ob.ObligationID); relErr != nil {
				logger.Error("Failed to release claim after flagging error", slog.String("error", relErr.Error()))
			}
		}
		return portssvc.ExecutionResult{Outcome: portssvc.OutcomeFailed, Occurrence: occurrence, Status: ob.Status}, err
	}

	logger.Warn("Obligation flagged for review",
		slog.Time("occurrence", occurrence),
		slog.String("cause", cause.Error()),
	)
	return portssvc.ExecutionResult{
		Outcome:    portssvc.OutcomeFlagged,
		Occurrence: occurrence,
		Status:     ob.Status,
	}, nil
}
