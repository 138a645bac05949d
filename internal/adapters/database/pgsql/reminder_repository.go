package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
)

// PgxReminderRepository stores reminder rules and reads the scheduled
// reminders the external scheduler writes into its own table.
type PgxReminderRepository struct {
	db *pgxpool.Pool
}

func newPgxReminderRepository(db *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{db: db}
}

var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

const selectRuleFields = `
	rule_id, name, trigger_description, action_type, frequency_description,
	days_threshold, enabled, last_executed, next_scheduled,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanRule(row pgx.Row) (*domain.ReminderRule, error) {
	var rule domain.ReminderRule
	err := row.Scan(
		&rule.RuleID,
		&rule.Name,
		&rule.TriggerDescription,
		&rule.ActionType,
		&rule.FrequencyDescription,
		&rule.DaysThreshold,
		&rule.Enabled,
		&rule.LastExecuted,
		&rule.NextScheduled,
		&rule.CreatedAt,
		&rule.CreatedBy,
		&rule.LastUpdatedAt,
		&rule.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *PgxReminderRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ReminderRule, error) {
	query := `SELECT ` + selectRuleFields + ` FROM reminder_rules WHERE rule_id = $1;`
	rule, err := scanRule(r.db.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reminder rule by ID: %w", err)
	}
	return rule, nil
}

func (r *PgxReminderRepository) FindRules(ctx context.Context) ([]domain.ReminderRule, error) {
	query := `SELECT ` + selectRuleFields + ` FROM reminder_rules ORDER BY created_at;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.ReminderRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder rule row: %w", err)
		}
		rules = append(rules, *rule)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reminder rule rows: %w", rows.Err())
	}

	return rules, nil
}

func (r *PgxReminderRepository) FindScheduledReminders(ctx context.Context, limit int, offset int) ([]domain.ScheduledReminder, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT reminder_id, rule_id, case_id, client_name, type, reason, scheduled_time, status
		FROM scheduled_reminders
		ORDER BY scheduled_time DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled reminders: %w", err)
	}
	defer rows.Close()

	reminders := []domain.ScheduledReminder{}
	for rows.Next() {
		var sr domain.ScheduledReminder
		err := rows.Scan(
			&sr.ReminderID,
			&sr.RuleID,
			&sr.CaseID,
			&sr.ClientName,
			&sr.Type,
			&sr.Reason,
			&sr.ScheduledTime,
			&sr.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled reminder row: %w", err)
		}
		reminders = append(reminders, sr)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating scheduled reminder rows: %w", rows.Err())
	}

	return reminders, nil
}

func (r *PgxReminderRepository) SaveRule(ctx context.Context, rule domain.ReminderRule) error {
	query := `
		INSERT INTO reminder_rules (
			rule_id, name, trigger_description, action_type, frequency_description,
			days_threshold, enabled, last_executed, next_scheduled,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (rule_id) DO UPDATE SET
			name = EXCLUDED.name,
			trigger_description = EXCLUDED.trigger_description,
			action_type = EXCLUDED.action_type,
			frequency_description = EXCLUDED.frequency_description,
			days_threshold = EXCLUDED.days_threshold,
			enabled = EXCLUDED.enabled,
			last_executed = EXCLUDED.last_executed,
			next_scheduled = EXCLUDED.next_scheduled,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		rule.RuleID,
		rule.Name,
		rule.TriggerDescription,
		rule.ActionType,
		rule.FrequencyDescription,
		rule.DaysThreshold,
		rule.Enabled,
		rule.LastExecuted,
		rule.NextScheduled,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reminder rule: %w", err)
	}
	return nil
}

func (r *PgxReminderRepository) DeleteRule(ctx context.Context, ruleID string) error {
	query := `DELETE FROM reminder_rules WHERE rule_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder rule: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
