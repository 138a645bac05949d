package services

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// CommunicationSvcFacade logs client touchpoints through the telephony
// collaborator and manages SMS templates. Log appends remain legal on closed
// cases for audit purposes.
type CommunicationSvcFacade interface {
	// LogCall dispatches an outbound call via the telephony collaborator and
	// appends the settled log entry to the case.
	LogCall(ctx context.Context, caseID string, phoneNumber string, userID string) (*domain.CommunicationLogEntry, error)

	// SendSMS renders the message (directly or from a template), dispatches it
	// and appends the settled log entry to the case.
	SendSMS(ctx context.Context, caseID string, req dto.SendSMSRequest, userID string) (*domain.CommunicationLogEntry, error)

	// RecordInbound appends a client-initiated touchpoint to the case log.
	RecordInbound(ctx context.Context, caseID string, req dto.RecordInboundRequest, userID string) (*domain.CommunicationLogEntry, error)

	// ListLogs retrieves the communication history of a case, newest first.
	ListLogs(ctx context.Context, caseID string, limit, offset int) ([]domain.CommunicationLogEntry, error)

	// ListTemplates retrieves all SMS templates.
	ListTemplates(ctx context.Context) ([]domain.SMSTemplate, error)

	// UpsertTemplate creates or replaces an SMS template.
	UpsertTemplate(ctx context.Context, req dto.UpsertSMSTemplateRequest, userID string) (*domain.SMSTemplate, error)

	// DeleteTemplate removes an SMS template.
	DeleteTemplate(ctx context.Context, templateID string, userID string) error
}
