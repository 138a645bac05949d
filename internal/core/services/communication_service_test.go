package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/core/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

type CommunicationServiceTestSuite struct {
	suite.Suite
	mockCommRepo      *MockCommunicationRepository
	mockCaseRepo      *MockCaseRepository
	mockValuationRepo *MockValuationRepository
	mockDispatcher    *MockTelephonyDispatcher
	service           portssvc.CommunicationSvcFacade

	actorID string
	theCase *domain.Case
}

func (s *CommunicationServiceTestSuite) SetupTest() {
	s.mockCommRepo = new(MockCommunicationRepository)
	s.mockCaseRepo = new(MockCaseRepository)
	s.mockValuationRepo = new(MockValuationRepository)
	s.mockDispatcher = new(MockTelephonyDispatcher)
	s.service = services.NewCommunicationService(s.mockCommRepo, s.mockCaseRepo, s.mockValuationRepo, s.mockDispatcher)
	s.actorID = uuid.NewString()
	s.theCase = &domain.Case{
		CaseID: uuid.NewString(),
		Name:   "Ramesh Gupta",
		Status: domain.StatusClientFollowUp,
	}
}

func (s *CommunicationServiceTestSuite) TestLogCall_AppendsSettledEntry() {
	ctx := context.Background()
	settled := domain.CommunicationLogEntry{
		Type:        domain.CommCall,
		Direction:   domain.DirectionOutbound,
		Status:      domain.CommCompleted,
		Duration:    "2m10s",
		Timestamp:   time.Now(),
		InitiatedBy: s.actorID,
		PhoneNumber: "9876543210",
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.theCase.CaseID).Return(s.theCase, nil).Once()
	s.mockDispatcher.On("Dispatch", ctx, mock.MatchedBy(func(req collaborators.DispatchRequest) bool {
		return req.Type == domain.CommCall && req.PhoneNumber == "9876543210"
	})).Return(settled, nil).Once()
	s.mockCommRepo.On("AppendLog", ctx, mock.MatchedBy(func(e domain.CommunicationLogEntry) bool {
		return e.LogID != "" && e.CaseID == s.theCase.CaseID && e.Status == domain.CommCompleted
	})).Return(nil).Once()

	entry, err := s.service.LogCall(ctx, s.theCase.CaseID, "9876543210", s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.CommCompleted, entry.Status)
	s.mockDispatcher.AssertExpectations(s.T())
	s.mockCommRepo.AssertExpectations(s.T())
}

func (s *CommunicationServiceTestSuite) TestLogCall_FailedDispatchStillLogged() {
	ctx := context.Background()
	settled := domain.CommunicationLogEntry{
		Type:        domain.CommCall,
		Direction:   domain.DirectionOutbound,
		Status:      domain.CommFailed,
		Timestamp:   time.Now(),
		InitiatedBy: s.actorID,
		PhoneNumber: "9876543210",
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.theCase.CaseID).Return(s.theCase, nil).Once()
	s.mockDispatcher.On("Dispatch", ctx, mock.Anything).Return(settled, nil).Once()
	s.mockCommRepo.On("AppendLog", ctx, mock.MatchedBy(func(e domain.CommunicationLogEntry) bool {
		return e.Status == domain.CommFailed
	})).Return(nil).Once()

	entry, err := s.service.LogCall(ctx, s.theCase.CaseID, "9876543210", s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.CommFailed, entry.Status)
}

func (s *CommunicationServiceTestSuite) TestSendSMS_RendersTemplate() {
	ctx := context.Background()
	tmpl := &domain.SMSTemplate{
		TemplateID: uuid.NewString(),
		Name:       "Valuation update",
		Content:    "Dear {clientName}, your shares are worth {totalValue}.",
	}
	entries := []domain.ValuationEntry{
		{TotalValue: decimal.RequireFromString("735000")},
	}
	settled := domain.CommunicationLogEntry{
		Type:      domain.CommSMS,
		Direction: domain.DirectionOutbound,
		Status:    domain.CommCompleted,
		Timestamp: time.Now(),
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.theCase.CaseID).Return(s.theCase, nil).Once()
	s.mockCommRepo.On("FindTemplateByID", ctx, tmpl.TemplateID).Return(tmpl, nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.theCase.CaseID).Return(entries, nil).Once()
	s.mockDispatcher.On("Dispatch", ctx, mock.MatchedBy(func(req collaborators.DispatchRequest) bool {
		return req.Message == "Dear Ramesh Gupta, your shares are worth ₹7,35,000.00."
	})).Return(settled, nil).Once()
	s.mockCommRepo.On("AppendLog", ctx, mock.AnythingOfType("domain.CommunicationLogEntry")).Return(nil).Once()

	req := dto.SendSMSRequest{PhoneNumber: "9876543210", TemplateID: tmpl.TemplateID}

	_, err := s.service.SendSMS(ctx, s.theCase.CaseID, req, s.actorID)

	s.Require().NoError(err)
	s.mockDispatcher.AssertExpectations(s.T())
}

func (s *CommunicationServiceTestSuite) TestSendSMS_MessageOrTemplateRequired() {
	ctx := context.Background()

	req := dto.SendSMSRequest{PhoneNumber: "9876543210"}

	_, err := s.service.SendSMS(ctx, s.theCase.CaseID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockDispatcher.AssertNotCalled(s.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (s *CommunicationServiceTestSuite) TestRecordInbound_AppendsOnClosedCase() {
	ctx := context.Background()
	closed := &domain.Case{CaseID: uuid.NewString(), Name: "R", Status: domain.StatusDealClosed}

	s.mockCaseRepo.On("FindCaseByID", ctx, closed.CaseID).Return(closed, nil).Once()
	s.mockCommRepo.On("AppendLog", ctx, mock.MatchedBy(func(e domain.CommunicationLogEntry) bool {
		return e.Direction == domain.DirectionInbound && e.CaseID == closed.CaseID
	})).Return(nil).Once()

	req := dto.RecordInboundRequest{Type: "call", PhoneNumber: "9876543210", Duration: "45s"}

	entry, err := s.service.RecordInbound(ctx, closed.CaseID, req, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.DirectionInbound, entry.Direction)
	s.mockCommRepo.AssertExpectations(s.T())
}

func TestCommunicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommunicationServiceTestSuite))
}
