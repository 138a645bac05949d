package services

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// ReminderSvcFacade is CRUD over reminder rules. Execution belongs to the
// external scheduler collaborator; toggling a rule does not recompute
// NextScheduled here.
type ReminderSvcFacade interface {
	// ListRules retrieves all reminder rules.
	ListRules(ctx context.Context) ([]domain.ReminderRule, error)

	// UpsertRule creates or replaces a rule. A blank name or trigger
	// description fails with ErrValidation.
	UpsertRule(ctx context.Context, req dto.UpsertReminderRuleRequest, userID string) (*domain.ReminderRule, error)

	// ToggleRule flips the enabled flag and returns the updated rule.
	ToggleRule(ctx context.Context, ruleID string, userID string) (*domain.ReminderRule, error)

	// DeleteRule removes a rule unconditionally.
	DeleteRule(ctx context.Context, ruleID string, userID string) error

	// ListScheduled retrieves scheduler-produced reminder instances (read-only).
	ListScheduled(ctx context.Context, limit, offset int) ([]domain.ScheduledReminder, error)
}
