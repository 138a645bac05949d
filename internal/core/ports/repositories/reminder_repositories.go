package repositories

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// ReminderReader defines read operations for reminder configuration
type ReminderReader interface {
	// FindRuleByID retrieves a specific reminder rule.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.ReminderRule, error)

	// FindRules retrieves all reminder rules.
	FindRules(ctx context.Context) ([]domain.ReminderRule, error)

	// FindScheduledReminders retrieves scheduler-produced reminder instances,
	// newest first. The core never writes these.
	FindScheduledReminders(ctx context.Context, limit int, offset int) ([]domain.ScheduledReminder, error)
}

// ReminderWriter defines write operations for reminder rules
type ReminderWriter interface {
	// SaveRule inserts or replaces a reminder rule by its ID.
	SaveRule(ctx context.Context, rule domain.ReminderRule) error

	// DeleteRule removes a reminder rule unconditionally.
	DeleteRule(ctx context.Context, ruleID string) error
}

// ReminderRepositoryFacade combines all reminder repository interfaces.
type ReminderRepositoryFacade interface {
	ReminderReader
	ReminderWriter
}
