package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo          UserRepositoryFacade
	PaymentMethodRepo PaymentMethodRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	ObligationRepo    ObligationRepositoryFacade
	BudgetRepo        BudgetRepositoryFacade
	GoalRepo          GoalRepositoryFacade
	DebtRepo          DebtRepositoryFacade
	FriendRepo        FriendRepositoryFacade
}
