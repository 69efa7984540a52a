package services

import (
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.BudgetRepo)
	container.Obligation = NewObligationService(repos.ObligationRepo, repos.PaymentMethodRepo)
	container.ObligationExecutor = NewObligationExecutor(repos.ObligationRepo, repos.TransactionRepo, repos.BudgetRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.Debt = NewDebtService(repos.DebtRepo, repos.UserRepo)
	container.Friend = NewFriendService(repos.FriendRepo, repos.UserRepo)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.UserSvcFacade          = (*userService)(nil)
	_ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)
	_ portssvc.TransactionSvcFacade   = (*transactionService)(nil)
	_ portssvc.ObligationSvcFacade    = (*obligationService)(nil)
	_ portssvc.ObligationExecutorSvc  = (*obligationExecutor)(nil)
	_ portssvc.BudgetSvcFacade        = (*budgetService)(nil)
	_ portssvc.GoalSvcFacade          = (*goalService)(nil)
	_ portssvc.DebtSvcFacade          = (*debtService)(nil)
	_ portssvc.FriendSvcFacade        = (*friendService)(nil)
)
