package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/handlers"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

func (m *MockObligationService) GetObligationByID(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ListObligations(ctx context.Context, userID string, limit, offset int) ([]domain.Obligation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ListObligationHistory(ctx context.Context, obligationID, requestingUserID string) ([]domain.ObligationChange, error) {
	args := m.Called(ctx, obligationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ObligationChange), args.Error(1)
}

func (m *MockObligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, requestingUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) PauseObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ResumeObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) CancelObligation(ctx context.Context, obligationID, requestingUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockObligationService
	jwtSecret   string
}

func (suite *ObligationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "centsible-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockObligationService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterObligationRoutes(v1, suite.mockService)
}

func (suite *ObligationHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	req := dto.CreateObligationRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(1200),
		Category:  string(domain.CategoryHousing),
		Frequency: string(domain.Monthly),
		StartDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	expected := &domain.Obligation{
		ObligationID:  uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		Amount:        req.Amount,
		Category:      domain.CategoryHousing,
		Frequency:     domain.Monthly,
		StartDate:     req.StartDate,
		NextExecution: req.StartDate,
		Status:        domain.ObligationActive,
	}
	suite.mockService.On("CreateObligation", mock.Anything, mock.AnythingOfType("dto.CreateObligationRequest"), userID).
		Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations", token, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.ObligationID, resp.ObligationID)
	suite.Equal("ACTIVE", resp.Status)
	suite.Equal("MONTHLY", resp.Frequency)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_InvalidFrequency() {
	token := suite.generateTestToken(uuid.NewString())

	req := dto.CreateObligationRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(1200),
		Category:  string(domain.CategoryHousing),
		Frequency: "FORTNIGHTLY",
		StartDate: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations", token, req)

	// The binding validator rejects unknown frequencies before the service runs.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/obligations", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_NotFound() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	suite.mockService.On("GetObligationByID", mock.Anything, obligationID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/obligations/"+obligationID, token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_ForeignReturnsForbidden() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	suite.mockService.On("GetObligationByID", mock.Anything, obligationID, userID).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/obligations/"+obligationID, token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestListObligations_Defaults() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	obs := []domain.Obligation{
		{ObligationID: uuid.NewString(), UserID: userID, Status: domain.ObligationActive, Frequency: domain.Weekly},
	}
	suite.mockService.On("ListObligations", mock.Anything, userID, 20, 0).Return(obs, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/obligations", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListObligationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Obligations, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestPauseObligation_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	paused := &domain.Obligation{ObligationID: obligationID, UserID: userID, Status: domain.ObligationPaused, Frequency: domain.Monthly}
	suite.mockService.On("PauseObligation", mock.Anything, obligationID, userID).Return(paused, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations/"+obligationID+"/pause", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("PAUSED", resp.Status)
}

func (suite *ObligationHandlerTestSuite) TestPauseObligation_NotActive() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	suite.mockService.On("PauseObligation", mock.Anything, obligationID, userID).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "only an active obligation can be paused", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations/"+obligationID+"/pause", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestCancelObligation_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	cancelled := &domain.Obligation{ObligationID: obligationID, UserID: userID, Status: domain.ObligationCancelled, Frequency: domain.Daily}
	suite.mockService.On("CancelObligation", mock.Anything, obligationID, userID).Return(cancelled, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/obligations/"+obligationID+"/cancel", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("CANCELLED", resp.Status)
}

func (suite *ObligationHandlerTestSuite) TestGetObligationHistory_Success() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)
	obligationID := uuid.NewString()

	changes := []domain.ObligationChange{
		{ChangeID: uuid.NewString(), ObligationID: obligationID, ChangeType: domain.ChangeCreated, ChangeDate: time.Now().UTC()},
		{ChangeID: uuid.NewString(), ObligationID: obligationID, ChangeType: domain.ChangeExecuted, ChangeDate: time.Now().UTC()},
	}
	suite.mockService.On("ListObligationHistory", mock.Anything, obligationID, userID).Return(changes, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/obligations/"+obligationID+"/history", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ObligationChangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("CREATED", resp[0].ChangeType)
	suite.Equal("EXECUTED", resp[1].ChangeType)
}

func TestObligationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
