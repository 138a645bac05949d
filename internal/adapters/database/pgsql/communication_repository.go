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

// PgxCommunicationRepository stores the append-only communication log and the
// SMS template library.
type PgxCommunicationRepository struct {
	db *pgxpool.Pool
}

func newPgxCommunicationRepository(db *pgxpool.Pool) portsrepo.CommunicationRepositoryFacade {
	return &PgxCommunicationRepository{db: db}
}

var _ portsrepo.CommunicationRepositoryFacade = (*PgxCommunicationRepository)(nil)

func (r *PgxCommunicationRepository) FindLogsByCase(ctx context.Context, caseID string, limit int, offset int) ([]domain.CommunicationLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT log_id, case_id, type, direction, status, message, duration, timestamp, initiated_by, phone_number
		FROM communication_logs
		WHERE case_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, caseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query communication logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.CommunicationLogEntry{}
	for rows.Next() {
		var entry domain.CommunicationLogEntry
		err := rows.Scan(
			&entry.LogID,
			&entry.CaseID,
			&entry.Type,
			&entry.Direction,
			&entry.Status,
			&entry.Message,
			&entry.Duration,
			&entry.Timestamp,
			&entry.InitiatedBy,
			&entry.PhoneNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan communication log row: %w", err)
		}
		logs = append(logs, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating communication log rows: %w", rows.Err())
	}

	return logs, nil
}

func (r *PgxCommunicationRepository) AppendLog(ctx context.Context, entry domain.CommunicationLogEntry) error {
	query := `
		INSERT INTO communication_logs (
			log_id, case_id, type, direction, status, message, duration, timestamp, initiated_by, phone_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		entry.LogID,
		entry.CaseID,
		entry.Type,
		entry.Direction,
		entry.Status,
		entry.Message,
		entry.Duration,
		entry.Timestamp,
		entry.InitiatedBy,
		entry.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to append communication log: %w", err)
	}
	return nil
}

const selectTemplateFields = `
	template_id, name, content, category,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanTemplate(row pgx.Row) (*domain.SMSTemplate, error) {
	var t domain.SMSTemplate
	err := row.Scan(
		&t.TemplateID,
		&t.Name,
		&t.Content,
		&t.Category,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxCommunicationRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.SMSTemplate, error) {
	query := `SELECT ` + selectTemplateFields + ` FROM sms_templates WHERE template_id = $1;`
	t, err := scanTemplate(r.db.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find SMS template by ID: %w", err)
	}
	return t, nil
}

func (r *PgxCommunicationRepository) FindTemplates(ctx context.Context) ([]domain.SMSTemplate, error) {
	query := `SELECT ` + selectTemplateFields + ` FROM sms_templates ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query SMS templates: %w", err)
	}
	defer rows.Close()

	templates := []domain.SMSTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan SMS template row: %w", err)
		}
		templates = append(templates, *t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating SMS template rows: %w", rows.Err())
	}

	return templates, nil
}

func (r *PgxCommunicationRepository) SaveTemplate(ctx context.Context, tmpl domain.SMSTemplate) error {
	query := `
		INSERT INTO sms_templates (
			template_id, name, content, category,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (template_id) DO UPDATE SET
			name = EXCLUDED.name,
			content = EXCLUDED.content,
			category = EXCLUDED.category,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		tmpl.TemplateID,
		tmpl.Name,
		tmpl.Content,
		tmpl.Category,
		tmpl.CreatedAt,
		tmpl.CreatedBy,
		tmpl.LastUpdatedAt,
		tmpl.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save SMS template: %w", err)
	}
	return nil
}

func (r *PgxCommunicationRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	query := `DELETE FROM sms_templates WHERE template_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, templateID)
	if err != nil {
		return fmt.Errorf("failed to delete SMS template: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
