package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/core/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

type CaseServiceTestSuite struct {
	suite.Suite
	mockCaseRepo      *MockCaseRepository
	mockUserRepo      *MockUserRepository
	mockValuationRepo *MockValuationRepository
	service           portssvc.CaseSvcFacade

	actorID string
}

func (s *CaseServiceTestSuite) SetupTest() {
	s.mockCaseRepo = new(MockCaseRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockValuationRepo = new(MockValuationRepository)
	s.service = services.NewCaseService(
		s.mockCaseRepo,
		services.WithUserReader(s.mockUserRepo),
		services.WithValuationReader(s.mockValuationRepo),
	)
	s.actorID = uuid.NewString()
}

func (s *CaseServiceTestSuite) newCase(status domain.CaseStatus) *domain.Case {
	return &domain.Case{
		CaseID:       uuid.NewString(),
		Name:         "Ramesh Gupta",
		Mobile:       "9876543210",
		CaseType:     domain.CaseTypeDirectDemat,
		LeadSource:   domain.LeadReferral,
		Status:       status,
		Shareholders: []string{"Ramesh Gupta"},
		Expenditure:  decimal.Zero,
		Version:      1,
	}
}

func (s *CaseServiceTestSuite) activeUser(role domain.Role) *domain.User {
	return &domain.User{
		UserID: uuid.NewString(),
		Name:   "Staff",
		Role:   role,
		Status: domain.UserActive,
	}
}

// --- CreateCase ---

func (s *CaseServiceTestSuite) TestCreateCase_StartsInInitialAssessment() {
	ctx := context.Background()
	req := dto.CreateCaseRequest{
		Name:          "Ramesh Gupta",
		ContactPerson: "Suresh Gupta",
		Mobile:        "9876543210",
		CaseType:      string(domain.CaseTypeTransmission),
		LeadSource:    string(domain.LeadWebsite),
		Shareholders:  []string{"Ramesh Gupta", "Sunita Gupta"},
	}

	s.mockCaseRepo.On("SaveCase", ctx, mock.MatchedBy(func(c domain.Case) bool {
		return c.Status == domain.StatusInitialAssessment &&
			c.Version == 1 &&
			len(c.Shareholders) == 2 &&
			c.CreatedBy == s.actorID
	})).Return(nil).Once()

	c, err := s.service.CreateCase(ctx, req, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusInitialAssessment, c.Status)
	s.False(c.IsAssigned())
	s.mockCaseRepo.AssertExpectations(s.T())
}

func (s *CaseServiceTestSuite) TestCreateCase_RequiresShareholders() {
	ctx := context.Background()
	req := dto.CreateCaseRequest{Name: "N", ContactPerson: "C", Mobile: "1"}

	c, err := s.service.CreateCase(ctx, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(c)
	s.mockCaseRepo.AssertNotCalled(s.T(), "SaveCase", mock.Anything, mock.Anything)
}

// --- AdvanceStatus ---

func (s *CaseServiceTestSuite) TestAdvanceStatus_Forward() {
	ctx := context.Background()
	c := s.newCase(domain.StatusInitialAssessment)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockCaseRepo.On("UpdateCase", ctx, mock.MatchedBy(func(updated domain.Case) bool {
		return updated.Status == domain.StatusUnderValuation && updated.LastUpdatedBy == s.actorID
	})).Return(nil).Once()

	updated, err := s.service.AdvanceStatus(ctx, c.CaseID, domain.StatusUnderValuation, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusUnderValuation, updated.Status)
	s.mockCaseRepo.AssertExpectations(s.T())
}

func (s *CaseServiceTestSuite) TestAdvanceStatus_BackwardRejected() {
	ctx := context.Background()
	c := s.newCase(domain.StatusUnderValuation)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()

	_, err := s.service.AdvanceStatus(ctx, c.CaseID, domain.StatusInitialAssessment, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestAdvanceStatus_ClosedCaseRejected() {
	ctx := context.Background()
	c := s.newCase(domain.StatusDealClosed)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()

	_, err := s.service.AdvanceStatus(ctx, c.CaseID, domain.StatusClientFollowUp, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestAdvanceStatus_AssignmentGuard() {
	ctx := context.Background()
	c := s.newCase(domain.StatusValuationComplete)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()

	_, err := s.service.AdvanceStatus(ctx, c.CaseID, domain.StatusDocumentationPending, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestAdvanceStatus_ValuationGuardOnEntry() {
	ctx := context.Background()
	c := s.newCase(domain.StatusUnderValuation)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, c.CaseID).Return([]domain.ValuationEntry{}, nil).Once()

	_, err := s.service.AdvanceStatus(ctx, c.CaseID, domain.StatusValuationComplete, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

// --- Assignment ---

func (s *CaseServiceTestSuite) TestAssign_Success() {
	ctx := context.Background()
	c := s.newCase(domain.StatusValuationComplete)
	rm := s.activeUser(domain.RoleRM)
	fieldBoy := s.activeUser(domain.RoleFieldBoy)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, rm.UserID).Return(rm, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, fieldBoy.UserID).Return(fieldBoy, nil).Once()
	s.mockCaseRepo.On("AssignCase", ctx, mock.MatchedBy(func(updated domain.Case) bool {
		return updated.AssignedRM == rm.UserID &&
			updated.AssignedFieldBoy == fieldBoy.UserID &&
			updated.AssignmentTimestamp != nil
	}), rm.UserID, fieldBoy.UserID).Return(nil).Once()

	updated, err := s.service.Assign(ctx, c.CaseID, rm.UserID, fieldBoy.UserID, s.actorID)

	s.Require().NoError(err)
	s.True(updated.IsAssigned())
	s.NotNil(updated.AssignmentTimestamp)
	s.mockCaseRepo.AssertExpectations(s.T())
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *CaseServiceTestSuite) TestAssign_BlankIDRejected() {
	ctx := context.Background()

	_, err := s.service.Assign(ctx, uuid.NewString(), "", uuid.NewString(), s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "AssignCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestAssign_RoleMismatchRejected() {
	ctx := context.Background()
	c := s.newCase(domain.StatusValuationComplete)
	notAnRM := s.activeUser(domain.RoleFieldBoy)
	fieldBoy := s.activeUser(domain.RoleFieldBoy)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, notAnRM.UserID).Return(notAnRM, nil).Once()

	_, err := s.service.Assign(ctx, c.CaseID, notAnRM.UserID, fieldBoy.UserID, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "AssignCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestAssign_AlreadyAssignedRejected() {
	ctx := context.Background()
	c := s.newCase(domain.StatusDocumentationPending)
	c.AssignedRM = uuid.NewString()
	c.AssignedFieldBoy = uuid.NewString()

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()

	_, err := s.service.Assign(ctx, c.CaseID, uuid.NewString(), uuid.NewString(), s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockCaseRepo.AssertNotCalled(s.T(), "AssignCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestUnassign_Success() {
	ctx := context.Background()
	c := s.newCase(domain.StatusDocumentationPending)
	rmID := uuid.NewString()
	fieldBoyID := uuid.NewString()
	c.AssignedRM = rmID
	c.AssignedFieldBoy = fieldBoyID

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockCaseRepo.On("UnassignCase", ctx, mock.MatchedBy(func(updated domain.Case) bool {
		return updated.AssignedRM == "" &&
			updated.AssignedFieldBoy == "" &&
			updated.AssignmentTimestamp == nil
	}), rmID, fieldBoyID).Return(nil).Once()

	updated, err := s.service.Unassign(ctx, c.CaseID, s.actorID)

	s.Require().NoError(err)
	s.False(updated.IsAssigned())
	s.mockCaseRepo.AssertExpectations(s.T())
}

func (s *CaseServiceTestSuite) TestUnassign_NotAssignedRejected() {
	ctx := context.Background()
	c := s.newCase(domain.StatusInitialAssessment)

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()

	_, err := s.service.Unassign(ctx, c.CaseID, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UnassignCase", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Expenditure and KYC ---

func (s *CaseServiceTestSuite) TestSetExpenditure_NegativeRejected() {
	ctx := context.Background()

	_, err := s.service.SetExpenditure(ctx, uuid.NewString(), decimal.RequireFromString("-1"), s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func (s *CaseServiceTestSuite) TestUpsertKYC_KeyedByCompany() {
	ctx := context.Background()
	c := s.newCase(domain.StatusDocumentationPending)
	req := dto.UpsertKYCRequest{CompanyName: "Reliance Industries", KYCCompleted: true}

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockCaseRepo.On("UpsertKYC", ctx, mock.MatchedBy(func(st domain.CompanyKYCStatus) bool {
		return st.CaseID == c.CaseID && st.CompanyName == "Reliance Industries" && st.KYCCompleted && st.UpdatedBy == s.actorID
	})).Return(nil).Once()

	status, err := s.service.UpsertKYC(ctx, c.CaseID, req, s.actorID)

	s.Require().NoError(err)
	s.True(status.KYCCompleted)
	s.mockCaseRepo.AssertExpectations(s.T())
}

func (s *CaseServiceTestSuite) TestUpsertKYC_AppendsOnClosedCase() {
	ctx := context.Background()
	c := s.newCase(domain.StatusDealClosed)
	req := dto.UpsertKYCRequest{CompanyName: "Tata Steel", KYCCompleted: true}

	s.mockCaseRepo.On("FindCaseByID", ctx, c.CaseID).Return(c, nil).Once()
	s.mockCaseRepo.On("UpsertKYC", ctx, mock.MatchedBy(func(st domain.CompanyKYCStatus) bool {
		return st.CaseID == c.CaseID && st.CompanyName == "Tata Steel" && st.KYCCompleted
	})).Return(nil).Once()

	status, err := s.service.UpsertKYC(ctx, c.CaseID, req, s.actorID)

	s.Require().NoError(err)
	s.Equal("Tata Steel", status.CompanyName)
	s.mockCaseRepo.AssertExpectations(s.T())
}

func TestCaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CaseServiceTestSuite))
}
