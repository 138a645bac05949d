package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/utils"
	valuationcalc "github.com/sharesarthi/share_recovery_crm/internal/utils/valuation"
)

// communicationService logs client touchpoints. Outbound calls and SMS go
// through the telephony collaborator and the settled entry it returns is
// appended as-is; inbound contact is recorded directly. Appends stay legal on
// closed cases so the audit trail remains complete.
type communicationService struct {
	BaseService
	commRepo      portsrepo.CommunicationRepositoryFacade
	caseRepo      portsrepo.CaseReader
	valuationRepo portsrepo.ValuationReader
	dispatcher    collaborators.TelephonyDispatcher
}

// CommunicationServiceOption configures optional dependencies of the communication service.
type CommunicationServiceOption func(*communicationService)

// WithCommunicationAuthorizer wires the capability authorizer.
func WithCommunicationAuthorizer(authorizer portssvc.CapabilityAuthorizerSvc) CommunicationServiceOption {
	return func(s *communicationService) {
		s.Authorizer = authorizer
	}
}

// NewCommunicationService creates a new communication service.
func NewCommunicationService(
	commRepo portsrepo.CommunicationRepositoryFacade,
	caseRepo portsrepo.CaseReader,
	valuationRepo portsrepo.ValuationReader,
	dispatcher collaborators.TelephonyDispatcher,
	opts ...CommunicationServiceOption,
) portssvc.CommunicationSvcFacade {
	s := &communicationService{
		commRepo:      commRepo,
		caseRepo:      caseRepo,
		valuationRepo: valuationRepo,
		dispatcher:    dispatcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CommunicationSvcFacade = (*communicationService)(nil)

// LogCall dispatches an outbound call via the telephony collaborator and
// appends the settled log entry to the case.
func (s *communicationService) LogCall(ctx context.Context, caseID string, phoneNumber string, userID string) (*domain.CommunicationLogEntry, error) {
	if err := s.Authorize(ctx, userID, domain.CapCommunicationLog); err != nil {
		return nil, err
	}
	if phoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", apperrors.ErrValidation)
	}
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}

	entry, err := s.dispatcher.Dispatch(ctx, collaborators.DispatchRequest{
		Type:        domain.CommCall,
		PhoneNumber: phoneNumber,
		InitiatedBy: userID,
	})
	if err != nil {
		s.LogError(ctx, err, "Telephony dispatch failed", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to dispatch call: %w", err)
	}

	return s.appendEntry(ctx, caseID, entry)
}

// SendSMS renders the message (directly or from a template), dispatches it and
// appends the settled log entry to the case.
func (s *communicationService) SendSMS(ctx context.Context, caseID string, req dto.SendSMSRequest, userID string) (*domain.CommunicationLogEntry, error) {
	if err := s.Authorize(ctx, userID, domain.CapCommunicationLog); err != nil {
		return nil, err
	}
	if req.Message == "" && req.TemplateID == "" {
		return nil, fmt.Errorf("%w: either a message or a template is required", apperrors.ErrValidation)
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	message := req.Message
	if req.TemplateID != "" {
		tmpl, err := s.commRepo.FindTemplateByID(ctx, req.TemplateID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: template %s not found", apperrors.ErrValidation, req.TemplateID)
			}
			return nil, fmt.Errorf("failed to load SMS template: %w", err)
		}
		message, err = s.renderTemplate(ctx, tmpl.Content, c)
		if err != nil {
			return nil, err
		}
	}

	entry, err := s.dispatcher.Dispatch(ctx, collaborators.DispatchRequest{
		Type:        domain.CommSMS,
		PhoneNumber: req.PhoneNumber,
		Message:     message,
		InitiatedBy: userID,
	})
	if err != nil {
		s.LogError(ctx, err, "SMS dispatch failed", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to dispatch SMS: %w", err)
	}

	return s.appendEntry(ctx, caseID, entry)
}

// renderTemplate substitutes the {clientName} and {totalValue} placeholders
// using the case and its current valuation aggregate.
func (s *communicationService) renderTemplate(ctx context.Context, content string, c *domain.Case) (string, error) {
	rendered := strings.ReplaceAll(content, "{clientName}", c.Name)
	if strings.Contains(rendered, "{totalValue}") {
		entries, err := s.valuationRepo.FindEntriesByCase(ctx, c.CaseID)
		if err != nil {
			return "", fmt.Errorf("failed to compute total value for template: %w", err)
		}
		total := valuationcalc.SumTotalValue(entries)
		rendered = strings.ReplaceAll(rendered, "{totalValue}", utils.FormatINR(total))
	}
	return rendered, nil
}

// RecordInbound appends a client-initiated touchpoint to the case log.
func (s *communicationService) RecordInbound(ctx context.Context, caseID string, req dto.RecordInboundRequest, userID string) (*domain.CommunicationLogEntry, error) {
	if err := s.Authorize(ctx, userID, domain.CapCommunicationLog); err != nil {
		return nil, err
	}
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}

	entry := domain.CommunicationLogEntry{
		Type:        domain.CommunicationType(req.Type),
		Direction:   domain.DirectionInbound,
		Status:      domain.CommCompleted,
		Message:     req.Message,
		Duration:    req.Duration,
		Timestamp:   time.Now(),
		InitiatedBy: userID,
		PhoneNumber: req.PhoneNumber,
	}

	return s.appendEntry(ctx, caseID, entry)
}

// appendEntry assigns identity to the settled entry and persists it.
func (s *communicationService) appendEntry(ctx context.Context, caseID string, entry domain.CommunicationLogEntry) (*domain.CommunicationLogEntry, error) {
	entry.LogID = uuid.NewString()
	entry.CaseID = caseID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := s.commRepo.AppendLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append communication log", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to append communication log: %w", err)
	}

	s.LogDebug(ctx, "Communication logged",
		slog.String("case_id", caseID),
		slog.String("type", string(entry.Type)),
		slog.String("status", string(entry.Status)))
	return &entry, nil
}

// ListLogs retrieves the communication history of a case, newest first.
func (s *communicationService) ListLogs(ctx context.Context, caseID string, limit, offset int) ([]domain.CommunicationLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}
	logs, err := s.commRepo.FindLogsByCase(ctx, caseID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list communication logs", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to list communication logs: %w", err)
	}
	return logs, nil
}

// ListTemplates retrieves all SMS templates.
func (s *communicationService) ListTemplates(ctx context.Context) ([]domain.SMSTemplate, error) {
	templates, err := s.commRepo.FindTemplates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list SMS templates")
		return nil, fmt.Errorf("failed to list SMS templates: %w", err)
	}
	return templates, nil
}

// UpsertTemplate creates or replaces an SMS template.
func (s *communicationService) UpsertTemplate(ctx context.Context, req dto.UpsertSMSTemplateRequest, userID string) (*domain.SMSTemplate, error) {
	if err := s.Authorize(ctx, userID, domain.CapReminderManage); err != nil {
		return nil, err
	}
	if req.Name == "" || req.Content == "" {
		return nil, fmt.Errorf("%w: template name and content are required", apperrors.ErrValidation)
	}

	now := time.Now()
	tmpl := domain.SMSTemplate{
		TemplateID: req.TemplateID,
		Name:       req.Name,
		Content:    req.Content,
		Category:   req.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if tmpl.TemplateID == "" {
		tmpl.TemplateID = uuid.NewString()
	} else if existing, err := s.commRepo.FindTemplateByID(ctx, tmpl.TemplateID); err == nil {
		tmpl.CreatedAt = existing.CreatedAt
		tmpl.CreatedBy = existing.CreatedBy
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up SMS template: %w", err)
	}

	if err := s.commRepo.SaveTemplate(ctx, tmpl); err != nil {
		s.LogError(ctx, err, "Failed to save SMS template", slog.String("template_id", tmpl.TemplateID))
		return nil, fmt.Errorf("failed to save SMS template: %w", err)
	}

	return &tmpl, nil
}

// DeleteTemplate removes an SMS template.
func (s *communicationService) DeleteTemplate(ctx context.Context, templateID string, userID string) error {
	if err := s.Authorize(ctx, userID, domain.CapReminderManage); err != nil {
		return err
	}
	if err := s.commRepo.DeleteTemplate(ctx, templateID); err != nil {
		s.LogError(ctx, err, "Failed to delete SMS template", slog.String("template_id", templateID))
		return err
	}
	return nil
}
