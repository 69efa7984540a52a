package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// ObligationReader defines read operations for obligation data.
type ObligationReader interface {
	// FindObligationByID retrieves a specific obligation.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// FindObligationsByUser retrieves a paginated list of a user's obligations.
	FindObligationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data. Every write
// carries the audit record describing it; implementations persist both in one
// database transaction so the trail can never miss a transition.
type ObligationWriter interface {
	// SaveObligation persists a new obligation together with its CREATED record.
	SaveObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error

	// UpdateObligation persists user-driven edits (including pause/resume/cancel)
	// together with the record describing the delta.
	UpdateObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error
}

// AdvanceParams is the post-execution state persisted by Advance.
type AdvanceParams struct {
	ObligationID    string
	NewStatus       domain.ObligationStatus
	NewNextExecution time.Time
	LastExecution   *time.Time
	RepetitionsDone int
	Record          domain.ObligationChange
}

// ObligationScheduler is the persistence boundary the due scanner and
// executor run against. Claim/Release provide storage-level mutual exclusion:
// a conditional update only one concurrent caller can win, with a bounded
// lease so abandoned claims expire instead of sticking forever.
type ObligationScheduler interface {
	// FindDue returns obligations with status ACTIVE, an unexpired claim not
	// held, not flagged for review, and next_execution <= asOf.
	FindDue(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error)

	// Claim marks an obligation as being processed until now+lease. Losing the
	// race is expected and non-exceptional: Claim returns apperrors.ErrNotFound
	// rather than a distinct failure.
	Claim(ctx context.Context, obligationID string, now time.Time, lease time.Duration) (*domain.Obligation, error)

	// Release undoes a claim after a failed execution so the obligation becomes
	// eligible again on the next scan.
	Release(ctx context.Context, obligationID string) error

	// Advance atomically persists the post-execution state, appends the audit
	// record, and clears the claim.
	Advance(ctx context.Context, params AdvanceParams) error

	// FlagForReview marks an obligation for manual attention after a permanent
	// data error, appending the record in the same transaction. Flagged
	// obligations stay ACTIVE but stop surfacing from FindDue.
	FlagForReview(ctx context.Context, obligationID string, record domain.ObligationChange) error
}

// ObligationChangeReader exposes the audit trail to reporting surfaces. The
// execution path itself is write-only with respect to changes.
type ObligationChangeReader interface {
	// FindChangesByObligation returns the append-only history, oldest first.
	FindChangesByObligation(ctx context.Context, obligationID string) ([]domain.ObligationChange, error)
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces.
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
	ObligationScheduler
	ObligationChangeReader
}
