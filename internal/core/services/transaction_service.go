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
)

type transactionService struct {
	txnRepo    portsrepo.TransactionRepositoryFacade
	budgetRepo portsrepo.BudgetRepositoryFacade
}

func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) *transactionService {
	return &transactionService{txnRepo: txnRepo, budgetRepo: budgetRepo}
}

// monthOf truncates a date to the first day of its month, the key budgets are
// stored under.
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CreateTransaction records a new ledger entry and folds its amount into the
// matching category budget, if any. Budget folding only applies to expenses.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		Type:            domain.TransactionType(req.Type),
		Category:        domain.TransactionCategory(req.Category),
		Description:     req.Description,
		PaymentMethodID: req.PaymentMethodID,
		Date:            req.Date,
		IsScheduled:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, err
	}

	if txn.Type == domain.Expense {
		if err := s.budgetRepo.AddToBudgetSpend(ctx, userID, txn.Category, monthOf(txn.Date), txn.Amount); err != nil {
			// The ledger entry is already committed; budget tracking is
			// advisory, so log and keep going.
			logger.Error("Failed to fold transaction into budget", slog.String("error", err.Error()), slog.String("transaction_id", txn.TransactionID))
		}
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.txnRepo.FindTransactionsByUser(ctx, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction updates an entry, enforcing ownership. The scheduler
// provenance fields are never touched here, so an entry created from an
// obligation stays attributable to its (obligation, occurrence) pair.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, requestingUserID)
	if err != nil {
		return nil, err
	}

	oldAmount := txn.Amount
	oldCategory := txn.Category
	oldDate := txn.Date
	oldType := txn.Type

	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = domain.TransactionType(*req.Type)
	}
	if req.Category != nil {
		txn.Category = domain.TransactionCategory(*req.Category)
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.PaymentMethodID != nil {
		txn.PaymentMethodID = req.PaymentMethodID
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	// Rebalance budgets: back the old expense out, fold the new one in.
	if oldType == domain.Expense {
		if err := s.budgetRepo.AddToBudgetSpend(ctx, requestingUserID, oldCategory, monthOf(oldDate), oldAmount.Neg()); err != nil {
			logger.Error("Failed to back out old budget spend", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
	}
	if txn.Type == domain.Expense {
		if err := s.budgetRepo.AddToBudgetSpend(ctx, requestingUserID, txn.Category, monthOf(txn.Date), txn.Amount); err != nil {
			logger.Error("Failed to fold updated transaction into budget", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
	}

	return txn, nil
}

// DeleteTransaction removes an entry, enforcing ownership.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.GetTransactionByID(ctx, transactionID, requestingUserID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	if txn.Type == domain.Expense {
		if err := s.budgetRepo.AddToBudgetSpend(ctx, requestingUserID, txn.Category, monthOf(txn.Date), txn.Amount.Neg()); err != nil {
			logger.Error("Failed to back out budget spend after delete", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
