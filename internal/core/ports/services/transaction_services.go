package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger entries.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves an entry, enforcing ownership.
	GetTransactionByID(ctx context.Context, transactionID, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of the user's entries.
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for ledger entries.
type TransactionWriterSvc interface {
	// CreateTransaction records a new ledger entry and folds its amount into
	// the matching category budget, if any.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction updates an entry, enforcing ownership. Entries created
	// by the scheduler cannot be repointed at a different obligation.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction removes an entry, enforcing ownership.
	DeleteTransaction(ctx context.Context, transactionID, requestingUserID string) error
}

// TransactionSvcFacade combines all ledger service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
