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
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxObligationRepository persists obligations and their append-only audit
// trail. Claim, Release and Advance are the storage-level mutual-exclusion
// primitives the scheduler relies on: a conditional update only one caller
// can win, a lease that expires on its own, and a single-transaction state
// advance that also writes the audit record.
type PgxObligationRepository struct {
	BaseRepository
}

func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

const obligationColumns = `
	obligation_id, user_id, name, amount, category, description, payment_method_id,
	frequency, start_date, end_date, repetition_limit, repetitions_done,
	last_execution, next_execution, status, active, needs_review, claimed_until,
	created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (models.Obligation, error) {
	var m models.Obligation
	err := row.Scan(
		&m.ObligationID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.Category,
		&m.Description,
		&m.PaymentMethodID,
		&m.Frequency,
		&m.StartDate,
		&m.EndDate,
		&m.RepetitionLimit,
		&m.RepetitionsDone,
		&m.LastExecution,
		&m.NextExecution,
		&m.Status,
		&m.Active,
		&m.NeedsReview,
		&m.ClaimedUntil,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveObligation inserts a new obligation and its CREATED audit record in one
// database transaction.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelObligation(obligation)
	query := `
		INSERT INTO obligations (
			obligation_id, user_id, name, amount, category, description, payment_method_id,
			frequency, start_date, end_date, repetition_limit, repetitions_done,
			last_execution, next_execution, status, active, needs_review, claimed_until,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22);
	`
	_, err = tx.Exec(ctx, query,
		m.ObligationID, m.UserID, m.Name, m.Amount, m.Category, m.Description, m.PaymentMethodID,
		m.Frequency, m.StartDate, m.EndDate, m.RepetitionLimit, m.RepetitionsDone,
		m.LastExecution, m.NextExecution, m.Status, m.Active, m.NeedsReview, m.ClaimedUntil,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert obligation "+m.ObligationID, err)
	}

	if err := insertChangeTx(ctx, tx, record); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateObligation persists user-driven edits plus the audit record
// describing them in one database transaction. User edits clear the
// needs-review flag and never touch the claim column.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelObligation(obligation)
	query := `
		UPDATE obligations
		SET name = $2, amount = $3, category = $4, description = $5,
		    payment_method_id = $6, end_date = $7, repetition_limit = $8,
		    next_execution = $9, status = $10, active = $11, needs_review = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE obligation_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ObligationID, m.Name, m.Amount, m.Category, m.Description,
		m.PaymentMethodID, m.EndDate, m.RepetitionLimit,
		m.NextExecution, m.Status, m.Active, m.NeedsReview,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update obligation "+m.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertChangeTx(ctx, tx, record); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE obligation_id = $1;`
	m, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find obligation by ID "+obligationID, err)
	}
	d := mapping.ToDomainObligation(m)
	return &d, nil
}

// FindObligationsByUser retrieves a page of a user's obligations, newest first.
func (r *PgxObligationRepository) FindObligationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query obligations for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.Obligation{}
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan obligation row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating obligation rows", err)
	}
	return mapping.ToDomainObligationSlice(ms), nil
}

// FindDue returns obligations eligible for execution as of asOf: ACTIVE, not
// flagged for review, due cursor reached, and no live claim. An expired claim
// simply stops matching the predicate, which is how abandoned leases release
// themselves without a reaper.
func (r *PgxObligationRepository) FindDue(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE active = TRUE
		  AND needs_review = FALSE
		  AND next_execution <= $1
		  AND (claimed_until IS NULL OR claimed_until <= $2)
		ORDER BY next_execution
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, asOf, time.Now().UTC(), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query due obligations", err)
	}
	defer rows.Close()

	ms := []models.Obligation{}
	for rows.Next() {
		m, err := scanObligation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan due obligation row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating due obligation rows", err)
	}
	return mapping.ToDomainObligationSlice(ms), nil
}

// Claim attempts to take a lease on an obligation. The conditional update can
// only succeed for one concurrent caller; everyone else sees zero rows and
// gets ErrNotFound, which callers treat as "lost the race", not a failure.
func (r *PgxObligationRepository) Claim(ctx context.Context, obligationID string, now time.Time, lease time.Duration) (*domain.Obligation, error) {
	query := `
		UPDATE obligations
		SET claimed_until = $2
		WHERE obligation_id = $1
		  AND active = TRUE
		  AND needs_review = FALSE
		  AND (claimed_until IS NULL OR claimed_until <= $3)
		RETURNING ` + obligationColumns + `;
	`
	m, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID, now.Add(lease), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to claim obligation "+obligationID, err)
	}
	d := mapping.ToDomainObligation(m)
	return &d, nil
}

// Release clears a claim after a failed execution so the obligation is
// immediately eligible again.
func (r *PgxObligationRepository) Release(ctx context.Context, obligationID string) error {
	_, err := r.Pool.Exec(ctx, `UPDATE obligations SET claimed_until = NULL WHERE obligation_id = $1;`, obligationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to release obligation "+obligationID, err)
	}
	return nil
}

// Advance atomically persists the post-execution state: schedule cursor,
// repetition counter, status (with the active column kept in sync), the audit
// record, and the claim cleared, all in one database transaction.
func (r *PgxObligationRepository) Advance(ctx context.Context, params portsrepo.AdvanceParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE obligations
		SET next_execution = $2,
		    last_execution = $3,
		    repetitions_done = $4,
		    status = $5,
		    active = $6,
		    claimed_until = NULL,
		    last_updated_at = $7,
		    last_updated_by = user_id
		WHERE obligation_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		params.ObligationID,
		params.NewNextExecution,
		params.LastExecution,
		params.RepetitionsDone,
		string(params.NewStatus),
		params.NewStatus == domain.ObligationActive,
		time.Now().UTC(),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance obligation "+params.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertChangeTx(ctx, tx, params.Record); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FlagForReview marks an obligation for manual attention and appends the
// failure record, clearing the claim, in one database transaction.
func (r *PgxObligationRepository) FlagForReview(ctx context.Context, obligationID string, record domain.ObligationChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE obligations
		SET needs_review = TRUE, claimed_until = NULL, last_updated_at = $2, last_updated_by = user_id
		WHERE obligation_id = $1;
	`, obligationID, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to flag obligation "+obligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertChangeTx(ctx, tx, record); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindChangesByObligation returns the obligation's audit trail, oldest first.
func (r *PgxObligationRepository) FindChangesByObligation(ctx context.Context, obligationID string) ([]domain.ObligationChange, error) {
	query := `
		SELECT change_id, obligation_id, user_id, change_type, change_details, change_date
		FROM obligation_changes
		WHERE obligation_id = $1
		ORDER BY change_date, change_id;
	`
	rows, err := r.Pool.Query(ctx, query, obligationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query changes for obligation "+obligationID, err)
	}
	defer rows.Close()

	changes := []domain.ObligationChange{}
	for rows.Next() {
		var m models.ObligationChange
		if err := rows.Scan(&m.ChangeID, &m.ObligationID, &m.UserID, &m.ChangeType, &m.Details, &m.ChangeDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan obligation change row", err)
		}
		changes = append(changes, mapping.ToDomainObligationChange(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating obligation change rows", err)
	}
	return changes, nil
}

// insertChangeTx appends one audit record inside the caller's transaction.
// Records are insert-only; nothing in the schema or code updates them.
func insertChangeTx(ctx context.Context, tx pgx.Tx, record domain.ObligationChange) error {
	m, err := mapping.ToModelObligationChange(record)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode change details for obligation "+record.ObligationID, err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO obligation_changes (change_id, obligation_id, user_id, change_type, change_details, change_date)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.ChangeID, m.ObligationID, m.UserID, m.ChangeType, m.Details, m.ChangeDate)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert change record for obligation "+record.ObligationID, err)
	}
	return nil
}
