package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockObligationRepository is a mock type for the ObligationRepositoryFacade interface
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) FindObligationsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error {
	args := m.Called(ctx, obligation, record)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation, record domain.ObligationChange) error {
	args := m.Called(ctx, obligation, record)
	return args.Error(0)
}

func (m *MockObligationRepository) FindDue(ctx context.Context, asOf time.Time, limit int) ([]domain.Obligation, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) Claim(ctx context.Context, obligationID string, now time.Time, lease time.Duration) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, now, lease)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) Release(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

func (m *MockObligationRepository) Advance(ctx context.Context, params portsrepo.AdvanceParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockObligationRepository) FlagForReview(ctx context.Context, obligationID string, record domain.ObligationChange) error {
	args := m.Called(ctx, obligationID, record)
	return args.Error(0)
}

func (m *MockObligationRepository) FindChangesByObligation(ctx context.Context, obligationID string) ([]domain.ObligationChange, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ObligationChange), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByObligationOccurrence(ctx context.Context, obligationID string, occurrence time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, obligationID, occurrence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveScheduledTransaction(ctx context.Context, txn domain.Transaction) (string, bool, error) {
	args := m.Called(ctx, txn)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) AddToBudgetSpend(ctx context.Context, userID string, category domain.TransactionCategory, month time.Time, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, category, month, amount)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ObligationExecutorTestSuite struct {
	suite.Suite
	mockObRepo     *MockObligationRepository
	mockTxnRepo    *MockTransactionRepository
	mockBudgetRepo *MockBudgetRepository
	executor       portssvc.ObligationExecutorSvc
}

func (suite *ObligationExecutorTestSuite) SetupTest() {
	suite.mockObRepo = new(MockObligationRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.executor = services.NewObligationExecutor(suite.mockObRepo, suite.mockTxnRepo, suite.mockBudgetRepo)
}

func intPtr(n int) *int { return &n }

func (suite *ObligationExecutorTestSuite) activeObligation() domain.Obligation {
	return domain.Obligation{
		ObligationID:    uuid.NewString(),
		UserID:          uuid.NewString(),
		Name:            "Rent",
		Amount:          decimal.NewFromInt(1200),
		Category:        domain.CategoryHousing,
		Frequency:       domain.Monthly,
		StartDate:       date(2024, time.January, 31),
		RepetitionsDone: 0,
		NextExecution:   date(2024, time.January, 31),
		Status:          domain.ObligationActive,
	}
}

// --- Test Cases ---

func (suite *ObligationExecutorTestSuite) TestExecuteDue_HappyPath() {
	ctx := context.Background()
	ob := suite.activeObligation()

	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == ob.UserID &&
			txn.IsScheduled &&
			txn.SourceObligationID != nil && *txn.SourceObligationID == ob.ObligationID &&
			txn.OccurrenceDate != nil && txn.OccurrenceDate.Equal(date(2024, time.January, 31)) &&
			txn.Amount.Equal(ob.Amount)
	})).Return("txn-1", true, nil).Once()
	suite.mockBudgetRepo.On("AddToBudgetSpend", ctx, ob.UserID, ob.Category, date(2024, time.January, 1), ob.Amount).Return(nil).Once()

	var advanced portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { advanced = args.Get(1).(portsrepo.AdvanceParams) }).
		Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeExecuted, result.Outcome)
	suite.Equal("txn-1", result.TransactionID)
	suite.True(result.EntryCreated)
	suite.Equal(domain.ObligationActive, result.Status)
	suite.Equal(date(2024, time.February, 29), result.NextExecution)

	suite.Equal(ob.ObligationID, advanced.ObligationID)
	suite.Equal(domain.ObligationActive, advanced.NewStatus)
	suite.Equal(date(2024, time.February, 29), advanced.NewNextExecution)
	suite.Equal(1, advanced.RepetitionsDone)
	suite.Require().NotNil(advanced.LastExecution)
	suite.Equal(date(2024, time.January, 31), *advanced.LastExecution)
	suite.Equal(domain.ChangeExecuted, advanced.Record.ChangeType)
	suite.Equal(true, advanced.Record.Details["entryCreated"])

	suite.mockObRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_RecoversAfterCrash() {
	ctx := context.Background()
	ob := suite.activeObligation()

	// A previous run wrote the entry and died before advancing. The entry is
	// found, nothing new is written, and only the cursor moves.
	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-existing", false, nil).Once()

	var advanced portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { advanced = args.Get(1).(portsrepo.AdvanceParams) }).
		Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeSkipped, result.Outcome)
	suite.Equal("txn-existing", result.TransactionID)
	suite.False(result.EntryCreated)

	// The occurrence still counts toward the repetition total.
	suite.Equal(1, advanced.RepetitionsDone)
	suite.Equal(date(2024, time.February, 29), advanced.NewNextExecution)

	// Budgets were already folded by the run that created the entry.
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AddToBudgetSpend", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockObRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_RepetitionLimitReachedByThisRun() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.RepetitionLimit = intPtr(2)
	ob.RepetitionsDone = 1
	ob.NextExecution = date(2024, time.February, 29)

	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-final", true, nil).Once()
	suite.mockBudgetRepo.On("AddToBudgetSpend", ctx, ob.UserID, ob.Category, date(2024, time.February, 1), ob.Amount).Return(nil).Once()

	var advanced portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { advanced = args.Get(1).(portsrepo.AdvanceParams) }).
		Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	// The final occurrence produces its entry and terminates in the same run.
	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeExecuted, result.Outcome)
	suite.Equal(domain.ObligationCompleted, result.Status)
	suite.Equal(domain.ObligationCompleted, advanced.NewStatus)
	suite.Equal(2, advanced.RepetitionsDone)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_LimitAlreadyExhausted() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.RepetitionLimit = intPtr(2)
	ob.RepetitionsDone = 2

	var advanced portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { advanced = args.Get(1).(portsrepo.AdvanceParams) }).
		Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeCompleted, result.Outcome)
	suite.Equal(domain.ObligationCompleted, advanced.NewStatus)
	suite.Equal(domain.ChangeCompleted, advanced.Record.ChangeType)

	// Termination must never write a ledger entry.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveScheduledTransaction", mock.Anything, mock.Anything)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_OccurrencePastEndDate() {
	ctx := context.Background()
	ob := suite.activeObligation()
	end := date(2024, time.February, 15)
	ob.EndDate = &end
	ob.NextExecution = date(2024, time.February, 29)

	var advanced portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { advanced = args.Get(1).(portsrepo.AdvanceParams) }).
		Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeCompleted, result.Outcome)
	suite.Equal("occurrence past end date", advanced.Record.Details["reason"])
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveScheduledTransaction", mock.Anything, mock.Anything)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_InvariantViolationTouchesNothing() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.Status = domain.ObligationPaused

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().Error(err)
	suite.Equal(portssvc.OutcomeFailed, result.Outcome)

	// No writes of any kind: the claim is left to expire on its own.
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveScheduledTransaction", mock.Anything, mock.Anything)
	suite.mockObRepo.AssertNotCalled(suite.T(), "Advance", mock.Anything, mock.Anything)
	suite.mockObRepo.AssertNotCalled(suite.T(), "Release", mock.Anything, mock.Anything)
	suite.mockObRepo.AssertNotCalled(suite.T(), "FlagForReview", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_TransientFailureReleasesClaim() {
	ctx := context.Background()
	ob := suite.activeObligation()

	dbErr := errors.New("connection reset")
	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("", false, dbErr).Once()
	suite.mockObRepo.On("Release", ctx, ob.ObligationID).Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().ErrorIs(err, dbErr)
	suite.Equal(portssvc.OutcomeFailed, result.Outcome)
	suite.mockObRepo.AssertNotCalled(suite.T(), "Advance", mock.Anything, mock.Anything)
	suite.mockObRepo.AssertExpectations(suite.T())
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_PermanentFailureFlagsForReview() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.Amount = decimal.Zero

	suite.mockObRepo.On("FlagForReview", ctx, ob.ObligationID, mock.MatchedBy(func(record domain.ObligationChange) bool {
		return record.ChangeType == domain.ChangeExecutionFailed && record.ObligationID == ob.ObligationID
	})).Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	// Flagging is the successful handling of bad data, not a failure of the
	// executor itself.
	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeFlagged, result.Outcome)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveScheduledTransaction", mock.Anything, mock.Anything)
	suite.mockObRepo.AssertExpectations(suite.T())
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_UnknownCategoryFlagsForReview() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.Category = domain.TransactionCategory("GAMBLING")

	suite.mockObRepo.On("FlagForReview", ctx, ob.ObligationID, mock.AnythingOfType("domain.ObligationChange")).Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeFlagged, result.Outcome)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_AdvanceFailureAfterLedgerWrite() {
	ctx := context.Background()
	ob := suite.activeObligation()

	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-1", true, nil).Once()
	suite.mockBudgetRepo.On("AddToBudgetSpend", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	advErr := errors.New("deadlock detected")
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).Return(advErr).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	// The entry exists but the cursor did not move; the claim expires and a
	// later run converges via the unique (obligation, occurrence) pair.
	suite.Require().ErrorIs(err, advErr)
	suite.Equal(portssvc.OutcomeFailed, result.Outcome)
	suite.True(result.EntryCreated)
	suite.Equal("txn-1", result.TransactionID)
}

func (suite *ObligationExecutorTestSuite) TestExecuteDue_BudgetFailureDoesNotBlockAdvance() {
	ctx := context.Background()
	ob := suite.activeObligation()

	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-1", true, nil).Once()
	suite.mockBudgetRepo.On("AddToBudgetSpend", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("budget table busy")).Once()
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).Return(nil).Once()

	result, err := suite.executor.ExecuteDue(ctx, ob)

	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeExecuted, result.Outcome)
}

// TestExecuteDue_MonthlyLimitTwoLifecycle walks a MONTHLY obligation with a
// repetition limit of 2 through both executions, carrying the advanced state
// between runs the way successive scans would.
func (suite *ObligationExecutorTestSuite) TestExecuteDue_MonthlyLimitTwoLifecycle() {
	ctx := context.Background()
	ob := suite.activeObligation()
	ob.RepetitionLimit = intPtr(2)

	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-jan", true, nil).Once()
	suite.mockTxnRepo.On("SaveScheduledTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Return("txn-feb", true, nil).Once()
	suite.mockBudgetRepo.On("AddToBudgetSpend", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	var history []portsrepo.AdvanceParams
	suite.mockObRepo.On("Advance", ctx, mock.AnythingOfType("repositories.AdvanceParams")).
		Run(func(args mock.Arguments) { history = append(history, args.Get(1).(portsrepo.AdvanceParams)) }).
		Return(nil).Twice()

	// First execution: Jan 31 entry, cursor to Feb 29, still active.
	result, err := suite.executor.ExecuteDue(ctx, ob)
	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeExecuted, result.Outcome)
	suite.Equal(domain.ObligationActive, result.Status)
	suite.Equal(date(2024, time.February, 29), result.NextExecution)

	// Apply the persisted advance, as the next scan's claim would observe it.
	ob.RepetitionsDone = history[0].RepetitionsDone
	ob.NextExecution = history[0].NewNextExecution
	ob.LastExecution = history[0].LastExecution

	// Second execution: Feb 29 entry, limit reached, terminal.
	result, err = suite.executor.ExecuteDue(ctx, ob)
	suite.Require().NoError(err)
	suite.Equal(portssvc.OutcomeExecuted, result.Outcome)
	suite.Equal(domain.ObligationCompleted, result.Status)

	suite.Require().Len(history, 2)
	suite.Equal(date(2024, time.January, 31), *history[0].LastExecution)
	suite.Equal(date(2024, time.February, 29), *history[1].LastExecution)
	suite.Equal(2, history[1].RepetitionsDone)
	suite.Equal(domain.ObligationCompleted, history[1].NewStatus)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestObligationExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationExecutorTestSuite))
}
