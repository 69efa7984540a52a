package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByUser retrieves a paginated list of a user's entries,
	// newest first.
	FindTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)

	// FindTransactionByObligationOccurrence looks up the entry created for one
	// (obligation, occurrence date) pair, or apperrors.ErrNotFound.
	FindTransactionByObligationOccurrence(ctx context.Context, obligationID string, occurrence time.Time) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries.
type TransactionWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing entry.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes an entry.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// SaveScheduledTransaction persists an entry produced by the obligation
	// scheduler. The (source obligation, occurrence date) pair is unique at the
	// storage level; if an entry already exists for the pair (e.g. a crash
	// between entry creation and cursor advance), the existing entry's ID is
	// returned with created=false and nothing is written.
	SaveScheduledTransaction(ctx context.Context, txn domain.Transaction) (transactionID string, created bool, err error)
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
