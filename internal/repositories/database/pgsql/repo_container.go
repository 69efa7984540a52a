package pgsql

import (
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	paymentMethodRepo := newPgxPaymentMethodRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	obligationRepo := newPgxObligationRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	friendRepo := newPgxFriendRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		PaymentMethodRepo: paymentMethodRepo,
		TransactionRepo:   transactionRepo,
		ObligationRepo:    obligationRepo,
		BudgetRepo:        budgetRepo,
		GoalRepo:          goalRepo,
		DebtRepo:          debtRepo,
		FriendRepo:        friendRepo,
	}
}
