package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// reminderService stores follow-up rules. The external scheduler reads them
// over the API and owns execution; LastExecuted and NextScheduled are its
// fields and survive rule edits untouched.
type reminderService struct {
	BaseService
	reminderRepo portsrepo.ReminderRepositoryFacade
}

// ReminderServiceOption configures optional dependencies of the reminder service.
type ReminderServiceOption func(*reminderService)

// WithReminderAuthorizer wires the capability authorizer.
func WithReminderAuthorizer(authorizer portssvc.CapabilityAuthorizerSvc) ReminderServiceOption {
	return func(s *reminderService) {
		s.Authorizer = authorizer
	}
}

// NewReminderService creates a new reminder service.
func NewReminderService(reminderRepo portsrepo.ReminderRepositoryFacade, opts ...ReminderServiceOption) portssvc.ReminderSvcFacade {
	s := &reminderService{reminderRepo: reminderRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

// ListRules retrieves all reminder rules.
func (s *reminderService) ListRules(ctx context.Context) ([]domain.ReminderRule, error) {
	rules, err := s.reminderRepo.FindRules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reminder rules")
		return nil, fmt.Errorf("failed to list reminder rules: %w", err)
	}
	return rules, nil
}

// UpsertRule creates or replaces a rule. A blank RuleID means a new rule.
func (s *reminderService) UpsertRule(ctx context.Context, req dto.UpsertReminderRuleRequest, userID string) (*domain.ReminderRule, error) {
	if err := s.Authorize(ctx, userID, domain.CapReminderManage); err != nil {
		return nil, err
	}

	if req.Name == "" || req.TriggerDescription == "" {
		return nil, fmt.Errorf("%w: rule name and trigger description are required", apperrors.ErrValidation)
	}
	if !domain.ValidReminderAction(domain.ReminderAction(req.ActionType)) {
		return nil, fmt.Errorf("%w: unknown action type %s", apperrors.ErrValidation, req.ActionType)
	}
	if req.DaysThreshold < 1 {
		return nil, fmt.Errorf("%w: days threshold must be at least 1", apperrors.ErrValidation)
	}

	now := time.Now()
	rule := domain.ReminderRule{
		RuleID:               req.RuleID,
		Name:                 req.Name,
		TriggerDescription:   req.TriggerDescription,
		ActionType:           domain.ReminderAction(req.ActionType),
		FrequencyDescription: req.FrequencyDescription,
		DaysThreshold:        req.DaysThreshold,
		Enabled:              req.Enabled,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if rule.RuleID == "" {
		rule.RuleID = uuid.NewString()
	} else if existing, err := s.reminderRepo.FindRuleByID(ctx, rule.RuleID); err == nil {
		// Replacing an existing rule keeps its creation audit and the
		// scheduler-owned timestamps.
		rule.CreatedAt = existing.CreatedAt
		rule.CreatedBy = existing.CreatedBy
		rule.LastExecuted = existing.LastExecuted
		rule.NextScheduled = existing.NextScheduled
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up reminder rule: %w", err)
	}

	if err := s.reminderRepo.SaveRule(ctx, rule); err != nil {
		s.LogError(ctx, err, "Failed to save reminder rule", slog.String("rule_id", rule.RuleID))
		return nil, fmt.Errorf("failed to save reminder rule: %w", err)
	}

	return &rule, nil
}

// ToggleRule flips the enabled flag and returns the updated rule.
func (s *reminderService) ToggleRule(ctx context.Context, ruleID string, userID string) (*domain.ReminderRule, error) {
	if err := s.Authorize(ctx, userID, domain.CapReminderManage); err != nil {
		return nil, err
	}

	rule, err := s.reminderRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	rule.Enabled = !rule.Enabled
	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = userID

	if err := s.reminderRepo.SaveRule(ctx, *rule); err != nil {
		s.LogError(ctx, err, "Failed to toggle reminder rule", slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to toggle reminder rule: %w", err)
	}

	s.LogDebug(ctx, "Reminder rule toggled", slog.String("rule_id", ruleID), slog.Bool("enabled", rule.Enabled))
	return rule, nil
}

// DeleteRule removes a rule unconditionally, whether enabled or not.
func (s *reminderService) DeleteRule(ctx context.Context, ruleID string, userID string) error {
	if err := s.Authorize(ctx, userID, domain.CapReminderManage); err != nil {
		return err
	}
	if err := s.reminderRepo.DeleteRule(ctx, ruleID); err != nil {
		s.LogError(ctx, err, "Failed to delete reminder rule", slog.String("rule_id", ruleID))
		return err
	}
	return nil
}

// ListScheduled retrieves scheduler-produced reminder instances, newest first.
func (s *reminderService) ListScheduled(ctx context.Context, limit, offset int) ([]domain.ScheduledReminder, error) {
	if limit <= 0 {
		limit = 50
	}
	reminders, err := s.reminderRepo.FindScheduledReminders(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scheduled reminders")
		return nil, fmt.Errorf("failed to list scheduled reminders: %w", err)
	}
	return reminders, nil
}
