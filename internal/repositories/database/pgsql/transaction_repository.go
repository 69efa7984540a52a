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

// PgxTransactionRepository persists ledger entries. Scheduled entries are
// guarded by a partial unique index on (source_obligation_id,
// occurrence_date); SaveScheduledTransaction leans on it to make the
// scheduler's ledger writes idempotent.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, user_id, amount, type, category, description, payment_method_id,
	date, is_scheduled, source_obligation_id, occurrence_date,
	created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, user_id, amount, type, category, description, payment_method_id,
		date, is_scheduled, source_obligation_id, occurrence_date,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.Description,
		&m.PaymentMethodID,
		&m.Date,
		&m.IsScheduled,
		&m.SourceObligationID,
		&m.OccurrenceDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func transactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID, m.UserID, m.Amount, m.Type, m.Category, m.Description, m.PaymentMethodID,
		m.Date, m.IsScheduled, m.SourceObligationID, m.OccurrenceDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveTransaction persists a new user-entered ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionQuery+";", transactionArgs(m)...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// SaveScheduledTransaction persists a scheduler-produced entry. If an entry
// for the (obligation, occurrence) pair already exists (a crash between
// ledger write and cursor advance), the insert is a no-op and the existing
// entry's ID is returned with created=false.
func (r *PgxTransactionRepository) SaveScheduledTransaction(ctx context.Context, txn domain.Transaction) (string, bool, error) {
	m := mapping.ToModelTransaction(txn)
	query := insertTransactionQuery + `
	ON CONFLICT (source_obligation_id, occurrence_date) WHERE source_obligation_id IS NOT NULL
	DO NOTHING
	RETURNING transaction_id;`

	var id string
	err := r.Pool.QueryRow(ctx, query, transactionArgs(m)...).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, apperrors.NewAppError(500, "failed to insert scheduled transaction for obligation "+*m.SourceObligationID, err)
	}

	// Conflict path: the entry already exists; fetch its ID.
	existing, err := r.FindTransactionByObligationOccurrence(ctx, *txn.SourceObligationID, *txn.OccurrenceDate)
	if err != nil {
		return "", false, err
	}
	return existing.TransactionID, false, nil
}

// FindTransactionByObligationOccurrence looks up the ledger entry created for
// one (obligation, occurrence date) pair.
func (r *PgxTransactionRepository) FindTransactionByObligationOccurrence(ctx context.Context, obligationID string, occurrence time.Time) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_obligation_id = $1 AND occurrence_date = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, obligationID, occurrence))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find scheduled transaction for obligation "+obligationID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionsByUser retrieves a page of a user's ledger entries, newest first.
func (r *PgxTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, transaction_id
		LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// UpdateTransaction updates an existing ledger entry.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $2, type = $3, category = $4, description = $5,
		    payment_method_id = $6, date = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.Amount, m.Type, m.Category, m.Description,
		m.PaymentMethodID, m.Date, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a ledger entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
