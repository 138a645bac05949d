package repositories

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// CommunicationReader defines read operations for communication history
type CommunicationReader interface {
	// FindLogsByCase retrieves the communication log of a case, newest first.
	FindLogsByCase(ctx context.Context, caseID string, limit int, offset int) ([]domain.CommunicationLogEntry, error)

	// FindTemplateByID retrieves a specific SMS template.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.SMSTemplate, error)

	// FindTemplates retrieves all SMS templates.
	FindTemplates(ctx context.Context) ([]domain.SMSTemplate, error)
}

// CommunicationWriter defines write operations for communication history
type CommunicationWriter interface {
	// AppendLog persists a settled communication log entry. Logs are append-only.
	AppendLog(ctx context.Context, entry domain.CommunicationLogEntry) error

	// SaveTemplate inserts or replaces an SMS template by its ID.
	SaveTemplate(ctx context.Context, tmpl domain.SMSTemplate) error

	// DeleteTemplate removes an SMS template.
	DeleteTemplate(ctx context.Context, templateID string) error
}

// CommunicationRepositoryFacade combines all communication repository interfaces.
type CommunicationRepositoryFacade interface {
	CommunicationReader
	CommunicationWriter
}
