package services

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// ObligationReaderSvc defines read operations for obligations.
type ObligationReaderSvc interface {
	// GetObligationByID retrieves an obligation, enforcing ownership.
	GetObligationByID(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error)

	// ListObligations retrieves a paginated list of the user's obligations.
	ListObligations(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error)

	// ListObligationHistory returns the append-only audit trail, oldest first.
	ListObligationHistory(ctx context.Context, obligationID, requestingUserID string) ([]domain.ObligationChange, error)
}

// ObligationWriterSvc defines user-driven write operations for obligations.
// Every transition appends an audit record as part of the same unit of work.
type ObligationWriterSvc interface {
	// CreateObligation creates a new ACTIVE obligation with its schedule cursor
	// initialized to the first occurrence.
	CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error)

	// UpdateObligation applies user edits. Editing a flagged obligation clears
	// its needs-review mark.
	UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, requestingUserID string) (*domain.Obligation, error)

	// PauseObligation suspends scheduling. Occurrences that fall due while
	// paused are skipped, not replayed.
	PauseObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error)

	// ResumeObligation reactivates a paused obligation, moving the cursor
	// forward past the paused window.
	ResumeObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error)

	// CancelObligation terminates an obligation. Terminal: the record is kept
	// for history but never scheduled again.
	CancelObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error)
}

// ObligationSvcFacade combines all obligation-related service interfaces.
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
}

// ExecutionOutcome classifies one execution attempt of a due obligation.
type ExecutionOutcome string

const (
	// OutcomeExecuted: a ledger entry was created and the cursor advanced.
	OutcomeExecuted ExecutionOutcome = "EXECUTED"
	// OutcomeSkipped: the entry already existed (recovered crash); only the
	// cursor advance was completed.
	OutcomeSkipped ExecutionOutcome = "SKIPPED"
	// OutcomeCompleted: the obligation terminated (end date or repetition
	// limit) during this attempt.
	OutcomeCompleted ExecutionOutcome = "COMPLETED"
	// OutcomeFailed: a transient failure; the claim was released and the
	// occurrence stays due for the next scan.
	OutcomeFailed ExecutionOutcome = "FAILED"
	// OutcomeFlagged: a permanent data problem; the obligation was marked for
	// manual review and will not be retried until edited.
	OutcomeFlagged ExecutionOutcome = "FLAGGED"
)

// ExecutionResult reports what one ExecuteDue call did.
type ExecutionResult struct {
	Outcome       ExecutionOutcome
	Occurrence    time.Time
	TransactionID string
	Status        domain.ObligationStatus
	NextExecution time.Time
	EntryCreated  bool
}

// ObligationExecutorSvc executes exactly one due occurrence of a claimed
// obligation: ledger entry (idempotent), repetition accounting, recurrence
// advance, atomic persist with its audit record.
type ObligationExecutorSvc interface {
	ExecuteDue(ctx context.Context, obligation domain.Obligation) (ExecutionResult, error)
}
