package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// --- Mock CaseService ---
type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) GetCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) ListCases(ctx context.Context, filter repositories.CaseFilter, limit int, pageToken string) ([]domain.Case, string, error) {
	args := m.Called(ctx, filter, limit, pageToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Case), args.String(1), args.Error(2)
}

func (m *MockCaseService) GetKYCStatuses(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyKYCStatus), args.Error(1)
}

func (m *MockCaseService) CreateCase(ctx context.Context, req dto.CreateCaseRequest, creatorUserID string) (*domain.Case, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) AdvanceStatus(ctx context.Context, caseID string, next domain.CaseStatus, userID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID, next, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) SetExpenditure(ctx context.Context, caseID string, expenditure decimal.Decimal, userID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID, expenditure, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) UpsertKYC(ctx context.Context, caseID string, req dto.UpsertKYCRequest, userID string) (*domain.CompanyKYCStatus, error) {
	args := m.Called(ctx, caseID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyKYCStatus), args.Error(1)
}

func (m *MockCaseService) DeleteKYC(ctx context.Context, caseID string, companyName string, userID string) error {
	args := m.Called(ctx, caseID, companyName, userID)
	return args.Error(0)
}

func (m *MockCaseService) Assign(ctx context.Context, caseID string, rmID string, fieldBoyID string, requestingUserID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID, rmID, fieldBoyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) Unassign(ctx context.Context, caseID string, requestingUserID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CaseSvcFacade = (*MockCaseService)(nil)

// --- Test Suite ---
type CaseHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCaseService *MockCaseService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CaseHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "crm-test",
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

func (suite *CaseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCaseService = new(MockCaseService)

	v1 := suite.router.Group("/api/v1")
	registerCaseRoutes(v1, suite.mockCaseService)
}

func (suite *CaseHandlerTestSuite) doRequest(method, url, userID string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CaseHandlerTestSuite) TestListCases_Success() {
	userID := uuid.NewString()
	limit := 10
	status := domain.StatusUnderValuation

	expectedCases := []domain.Case{
		{
			CaseID:        uuid.NewString(),
			Name:          "Sharma Family Holdings",
			ContactPerson: "R Sharma",
			Mobile:        "9800000001",
			CaseType:      domain.CaseTypeDirectDemat,
			LeadSource:    domain.LeadReferral,
			Status:        status,
			Shareholders:  []string{"R Sharma"},
			Expenditure:   decimal.NewFromInt(5000),
			Version:       1,
		},
		{
			CaseID:        uuid.NewString(),
			Name:          "Mehta Estate",
			ContactPerson: "P Mehta",
			Mobile:        "9800000002",
			CaseType:      domain.CaseTypeTransmission,
			LeadSource:    domain.LeadWebsite,
			Status:        status,
			Shareholders:  []string{"P Mehta", "S Mehta"},
			Version:       3,
		},
	}

	suite.mockCaseService.On("ListCases",
		mock.Anything,
		mock.MatchedBy(func(f repositories.CaseFilter) bool {
			return f.Status != nil && *f.Status == status && f.AssignedRM == nil
		}),
		limit,
		"",
	).Return(expectedCases, "", nil).Once()

	url := fmt.Sprintf("/api/v1/cases?status=%s&limit=%d", "Under+Valuation", limit)
	w := suite.doRequest(http.MethodGet, url, userID, "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListCasesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Cases, 2)
	suite.Equal(expectedCases[0].CaseID, resp.Cases[0].CaseID)
	suite.Equal(expectedCases[1].CaseID, resp.Cases[1].CaseID)
	suite.Empty(resp.NextPageToken)

	suite.mockCaseService.AssertExpectations(suite.T())
}

func (suite *CaseHandlerTestSuite) TestGetCase_NotFound() {
	userID := uuid.NewString()
	caseID := uuid.NewString()

	suite.mockCaseService.On("GetCaseByID", mock.Anything, caseID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/cases/"+caseID, userID, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockCaseService.AssertExpectations(suite.T())
}

func (suite *CaseHandlerTestSuite) TestCreateCase_Success() {
	userID := uuid.NewString()
	body := `{
		"name": "Kapoor Holdings",
		"contactPerson": "A Kapoor",
		"mobile": "9800000003",
		"caseType": "Transmission",
		"leadSource": "referral",
		"shareholders": ["A Kapoor"]
	}`

	created := &domain.Case{
		CaseID:        uuid.NewString(),
		Name:          "Kapoor Holdings",
		ContactPerson: "A Kapoor",
		Mobile:        "9800000003",
		CaseType:      domain.CaseTypeTransmission,
		LeadSource:    domain.LeadReferral,
		Status:        domain.StatusInitialAssessment,
		Shareholders:  []string{"A Kapoor"},
		Version:       1,
	}

	suite.mockCaseService.On("CreateCase",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateCaseRequest) bool {
			return req.Name == "Kapoor Holdings" && len(req.Shareholders) == 1
		}),
		userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/cases", userID, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CaseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.CaseID, resp.CaseID)
	suite.Equal(domain.StatusInitialAssessment, resp.Status)

	suite.mockCaseService.AssertExpectations(suite.T())
}

func (suite *CaseHandlerTestSuite) TestCreateCase_MissingShareholders() {
	userID := uuid.NewString()
	body := `{
		"name": "Kapoor Holdings",
		"contactPerson": "A Kapoor",
		"mobile": "9800000003",
		"caseType": "Transmission",
		"leadSource": "referral",
		"shareholders": []
	}`

	w := suite.doRequest(http.MethodPost, "/api/v1/cases", userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCaseService.AssertNotCalled(suite.T(), "CreateCase")
}

func (suite *CaseHandlerTestSuite) TestAssignCase_Conflict() {
	userID := uuid.NewString()
	caseID := uuid.NewString()
	rmID := uuid.NewString()
	fieldBoyID := uuid.NewString()

	suite.mockCaseService.On("Assign", mock.Anything, caseID, rmID, fieldBoyID, userID).
		Return(nil, fmt.Errorf("case already assigned: %w", apperrors.ErrConflict)).Once()

	body := fmt.Sprintf(`{"rmID": %q, "fieldBoyID": %q}`, rmID, fieldBoyID)
	w := suite.doRequest(http.MethodPost, "/api/v1/cases/"+caseID+"/assignment", userID, body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockCaseService.AssertExpectations(suite.T())
}

func (suite *CaseHandlerTestSuite) TestRequests_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/cases", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestCaseHandler(t *testing.T) {
	suite.Run(t, new(CaseHandlerTestSuite))
}
