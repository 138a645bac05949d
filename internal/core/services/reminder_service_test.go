package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/core/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

type ReminderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReminderRepository
	service  portssvc.ReminderSvcFacade

	actorID string
}

func (s *ReminderServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockReminderRepository)
	s.service = services.NewReminderService(s.mockRepo)
	s.actorID = uuid.NewString()
}

func (s *ReminderServiceTestSuite) TestUpsertRule_New() {
	ctx := context.Background()
	req := dto.UpsertReminderRuleRequest{
		Name:               "Document follow-up",
		TriggerDescription: "Documentation pending for too long",
		ActionType:         "sms",
		DaysThreshold:      7,
		Enabled:            true,
	}

	s.mockRepo.On("SaveRule", ctx, mock.MatchedBy(func(r domain.ReminderRule) bool {
		return r.RuleID != "" &&
			r.Name == req.Name &&
			r.ActionType == domain.ReminderSMS &&
			r.DaysThreshold == 7 &&
			r.Enabled
	})).Return(nil).Once()

	rule, err := s.service.UpsertRule(ctx, req, s.actorID)

	s.Require().NoError(err)
	s.NotEmpty(rule.RuleID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReminderServiceTestSuite) TestUpsertRule_BlankNameRejected() {
	ctx := context.Background()
	req := dto.UpsertReminderRuleRequest{
		TriggerDescription: "something",
		ActionType:         "call",
		DaysThreshold:      3,
	}

	rule, err := s.service.UpsertRule(ctx, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(rule)
	s.mockRepo.AssertNotCalled(s.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (s *ReminderServiceTestSuite) TestUpsertRule_UnknownActionRejected() {
	ctx := context.Background()
	req := dto.UpsertReminderRuleRequest{
		Name:               "R",
		TriggerDescription: "T",
		ActionType:         "carrier-pigeon",
		DaysThreshold:      3,
	}

	_, err := s.service.UpsertRule(ctx, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReminderServiceTestSuite) TestUpsertRule_ReplacePreservesSchedulerFields() {
	ctx := context.Background()
	existing := &domain.ReminderRule{
		RuleID:             uuid.NewString(),
		Name:               "Old name",
		TriggerDescription: "Old trigger",
		ActionType:         domain.ReminderCall,
		DaysThreshold:      5,
		Enabled:            true,
	}
	lastExecuted := existing.CreatedAt
	existing.LastExecuted = &lastExecuted

	s.mockRepo.On("FindRuleByID", ctx, existing.RuleID).Return(existing, nil).Once()
	s.mockRepo.On("SaveRule", ctx, mock.MatchedBy(func(r domain.ReminderRule) bool {
		return r.RuleID == existing.RuleID &&
			r.Name == "New name" &&
			r.LastExecuted != nil // scheduler timestamps survive the edit
	})).Return(nil).Once()

	req := dto.UpsertReminderRuleRequest{
		RuleID:             existing.RuleID,
		Name:               "New name",
		TriggerDescription: "New trigger",
		ActionType:         "both",
		DaysThreshold:      10,
		Enabled:            false,
	}

	rule, err := s.service.UpsertRule(ctx, req, s.actorID)

	s.Require().NoError(err)
	s.Equal("New name", rule.Name)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReminderServiceTestSuite) TestToggleRule_TwiceRestoresOriginal() {
	ctx := context.Background()
	ruleID := uuid.NewString()
	rule := &domain.ReminderRule{RuleID: ruleID, Name: "R", TriggerDescription: "T", Enabled: true}

	s.mockRepo.On("FindRuleByID", ctx, ruleID).Return(rule, nil).Twice()
	s.mockRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.ReminderRule")).Return(nil).Twice()

	first, err := s.service.ToggleRule(ctx, ruleID, s.actorID)
	s.Require().NoError(err)
	s.False(first.Enabled)

	second, err := s.service.ToggleRule(ctx, ruleID, s.actorID)
	s.Require().NoError(err)
	s.True(second.Enabled)

	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReminderServiceTestSuite) TestDeleteRule_Unconditional() {
	ctx := context.Background()
	ruleID := uuid.NewString()

	s.mockRepo.On("DeleteRule", ctx, ruleID).Return(nil).Once()

	err := s.service.DeleteRule(ctx, ruleID, s.actorID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}
