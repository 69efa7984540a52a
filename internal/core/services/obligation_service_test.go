package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/core/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockPaymentMethodRepository is a mock type for the PaymentMethodRepositoryFacade interface
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) DeactivatePaymentMethod(ctx context.Context, paymentMethodID string, updatedBy string) error {
	args := m.Called(ctx, paymentMethodID, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ObligationServiceTestSuite struct {
	suite.Suite
	mockObRepo *MockObligationRepository
	mockPmRepo *MockPaymentMethodRepository
	service    portssvc.ObligationSvcFacade
}

func (suite *ObligationServiceTestSuite) SetupTest() {
	suite.mockObRepo = new(MockObligationRepository)
	suite.mockPmRepo = new(MockPaymentMethodRepository)
	suite.service = services.NewObligationService(suite.mockObRepo, suite.mockPmRepo)
}

// --- Test Cases ---

func (suite *ObligationServiceTestSuite) TestCreateObligation_InitializesCursor() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateObligationRequest{
		Name:      "Gym membership",
		Amount:    decimal.NewFromInt(45),
		Category:  string(domain.CategoryHealthcare),
		Frequency: string(domain.Monthly),
		StartDate: time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC),
	}

	var saved domain.Obligation
	var record domain.ObligationChange
	suite.mockObRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Obligation)
			record = args.Get(2).(domain.ObligationChange)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateObligation(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ObligationID)
	suite.Equal(domain.ObligationActive, created.Status)
	suite.Equal(0, created.RepetitionsDone)
	// The cursor starts at the start date itself, stripped to the calendar day.
	suite.Equal(date(2024, time.March, 5), created.NextExecution)
	suite.Equal(date(2024, time.March, 5), created.StartDate)
	suite.False(created.NeedsReview)

	suite.Equal(created.ObligationID, saved.ObligationID)
	suite.Equal(domain.ChangeCreated, record.ChangeType)
	suite.Equal(created.ObligationID, record.ObligationID)
	suite.mockObRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestCreateObligation_EndBeforeStart() {
	ctx := context.Background()
	end := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateObligationRequest{
		Name:      "Backwards",
		Amount:    decimal.NewFromInt(10),
		Category:  string(domain.CategoryOther),
		Frequency: string(domain.Weekly),
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}

	created, err := suite.service.CreateObligation(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.mockObRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestCreateObligation_ForeignPaymentMethod() {
	ctx := context.Background()
	userID := uuid.NewString()
	pmID := uuid.NewString()
	req := dto.CreateObligationRequest{
		Name:            "Streaming",
		Amount:          decimal.NewFromInt(15),
		Category:        string(domain.CategoryEntertainment),
		Frequency:       string(domain.Monthly),
		StartDate:       time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethodID: &pmID,
	}

	suite.mockPmRepo.On("FindPaymentMethodByID", ctx, pmID).
		Return(&domain.PaymentMethod{PaymentMethodID: pmID, UserID: uuid.NewString()}, nil).Once()

	created, err := suite.service.CreateObligation(ctx, req, userID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(created)
}

func (suite *ObligationServiceTestSuite) TestGetObligationByID_OwnershipEnforced() {
	ctx := context.Background()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: uuid.NewString()}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	got, err := suite.service.GetObligationByID(ctx, ob.ObligationID, uuid.NewString())

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *ObligationServiceTestSuite) TestUpdateObligation_ClearsNeedsReview() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{
		ObligationID: uuid.NewString(),
		UserID:       userID,
		Name:         "Rent",
		Amount:       decimal.Zero,
		Category:     domain.CategoryHousing,
		Frequency:    domain.Monthly,
		StartDate:    date(2024, time.January, 31),
		NextExecution: date(2024, time.March, 31),
		Status:       domain.ObligationActive,
		NeedsReview:  true,
	}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	var updated domain.Obligation
	var record domain.ObligationChange
	suite.mockObRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Obligation)
			record = args.Get(2).(domain.ObligationChange)
		}).
		Return(nil).Once()

	amount := decimal.NewFromInt(1250)
	result, err := suite.service.UpdateObligation(ctx, ob.ObligationID, dto.UpdateObligationRequest{Amount: &amount}, userID)

	suite.Require().NoError(err)
	suite.False(result.NeedsReview)
	suite.False(updated.NeedsReview)
	suite.True(updated.Amount.Equal(amount))
	suite.Equal(domain.ChangeEdited, record.ChangeType)
	suite.Equal(true, record.Details["needsReviewCleared"])
}

func (suite *ObligationServiceTestSuite) TestUpdateObligation_TerminalRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationCancelled}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	name := "Renamed"
	result, err := suite.service.UpdateObligation(ctx, ob.ObligationID, dto.UpdateObligationRequest{Name: &name}, userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockObRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestPauseObligation() {
	ctx := context.Background()
	userID := uuid.NewString()
	cursor := date(2024, time.April, 30)
	ob := &domain.Obligation{
		ObligationID:  uuid.NewString(),
		UserID:        userID,
		Frequency:     domain.Monthly,
		StartDate:     date(2024, time.January, 31),
		NextExecution: cursor,
		Status:        domain.ObligationActive,
	}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	var record domain.ObligationChange
	suite.mockObRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).
		Run(func(args mock.Arguments) { record = args.Get(2).(domain.ObligationChange) }).
		Return(nil).Once()

	paused, err := suite.service.PauseObligation(ctx, ob.ObligationID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ObligationPaused, paused.Status)
	// Pausing leaves the cursor alone; resume decides what to skip.
	suite.Equal(cursor, paused.NextExecution)
	suite.Equal(domain.ChangePaused, record.ChangeType)
}

func (suite *ObligationServiceTestSuite) TestPauseObligation_NotActive() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationPaused}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	paused, err := suite.service.PauseObligation(ctx, ob.ObligationID, userID)

	suite.Require().Error(err)
	suite.Nil(paused)
}

func (suite *ObligationServiceTestSuite) TestResumeObligation_SkipsPausedWindow() {
	ctx := context.Background()
	userID := uuid.NewString()
	today := services.DateOnly(time.Now())

	// The obligation sat paused through ten daily occurrences. Resuming must
	// not replay them: the cursor rolls forward to today.
	ob := &domain.Obligation{
		ObligationID:  uuid.NewString(),
		UserID:        userID,
		Frequency:     domain.Daily,
		StartDate:     today.AddDate(0, 0, -30),
		NextExecution: today.AddDate(0, 0, -10),
		Status:        domain.ObligationPaused,
	}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	var record domain.ObligationChange
	suite.mockObRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).
		Run(func(args mock.Arguments) { record = args.Get(2).(domain.ObligationChange) }).
		Return(nil).Once()

	resumed, err := suite.service.ResumeObligation(ctx, ob.ObligationID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ObligationActive, resumed.Status)
	suite.Equal(today, resumed.NextExecution)
	suite.Equal(domain.ChangeResumed, record.ChangeType)
}

func (suite *ObligationServiceTestSuite) TestResumeObligation_FutureCursorUntouched() {
	ctx := context.Background()
	userID := uuid.NewString()
	future := services.DateOnly(time.Now()).AddDate(0, 0, 5)

	ob := &domain.Obligation{
		ObligationID:  uuid.NewString(),
		UserID:        userID,
		Frequency:     domain.Weekly,
		StartDate:     future.AddDate(0, 0, -7),
		NextExecution: future,
		Status:        domain.ObligationPaused,
	}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()
	suite.mockObRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).Return(nil).Once()

	resumed, err := suite.service.ResumeObligation(ctx, ob.ObligationID, userID)

	suite.Require().NoError(err)
	suite.Equal(future, resumed.NextExecution)
}

func (suite *ObligationServiceTestSuite) TestCancelObligation_Terminal() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationPaused}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	var record domain.ObligationChange
	suite.mockObRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.ObligationChange")).
		Run(func(args mock.Arguments) { record = args.Get(2).(domain.ObligationChange) }).
		Return(nil).Once()

	cancelled, err := suite.service.CancelObligation(ctx, ob.ObligationID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ObligationCancelled, cancelled.Status)
	suite.Equal(domain.ChangeCancelled, record.ChangeType)
}

func (suite *ObligationServiceTestSuite) TestCancelObligation_AlreadyTerminal() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationCompleted}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()

	cancelled, err := suite.service.CancelObligation(ctx, ob.ObligationID, userID)

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.mockObRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestListObligationHistory() {
	ctx := context.Background()
	userID := uuid.NewString()
	ob := &domain.Obligation{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationActive}
	changes := []domain.ObligationChange{
		{ChangeID: uuid.NewString(), ObligationID: ob.ObligationID, ChangeType: domain.ChangeCreated},
		{ChangeID: uuid.NewString(), ObligationID: ob.ObligationID, ChangeType: domain.ChangeExecuted},
	}
	suite.mockObRepo.On("FindObligationByID", ctx, ob.ObligationID).Return(ob, nil).Once()
	suite.mockObRepo.On("FindChangesByObligation", ctx, ob.ObligationID).Return(changes, nil).Once()

	got, err := suite.service.ListObligationHistory(ctx, ob.ObligationID, userID)

	suite.Require().NoError(err)
	suite.Equal(changes, got)
}

func TestObligationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationServiceTestSuite))
}
