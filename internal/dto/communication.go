package dto

import (
	"time"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// SendSMSRequest dispatches an outbound SMS on a case. Either Message or
// TemplateID must be set; a template is rendered with the case's client name
// and total share value before dispatch.
type SendSMSRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Message     string `json:"message"`
	TemplateID  string `json:"templateID"`
}

// RecordInboundRequest appends a client-initiated touchpoint to the log.
type RecordInboundRequest struct {
	Type        string `json:"type" binding:"required,oneof=call sms email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Message     string `json:"message"`
	Duration    string `json:"duration"`
}

// ListLogsParams defines query parameters for listing communication logs.
type ListLogsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// CommunicationLogResponse defines the data returned for a log entry.
type CommunicationLogResponse struct {
	LogID       string                        `json:"logID"`
	CaseID      string                        `json:"caseID"`
	Type        domain.CommunicationType      `json:"type"`
	Direction   domain.CommunicationDirection `json:"direction"`
	Status      domain.CommunicationStatus    `json:"status"`
	Message     string                        `json:"message,omitempty"`
	Duration    string                        `json:"duration,omitempty"`
	Timestamp   time.Time                     `json:"timestamp"`
	InitiatedBy string                        `json:"initiatedBy"`
	PhoneNumber string                        `json:"phoneNumber"`
}

// ToCommunicationLogResponse converts a domain.CommunicationLogEntry to DTO.
func ToCommunicationLogResponse(e *domain.CommunicationLogEntry) CommunicationLogResponse {
	return CommunicationLogResponse{
		LogID:       e.LogID,
		CaseID:      e.CaseID,
		Type:        e.Type,
		Direction:   e.Direction,
		Status:      e.Status,
		Message:     e.Message,
		Duration:    e.Duration,
		Timestamp:   e.Timestamp,
		InitiatedBy: e.InitiatedBy,
		PhoneNumber: e.PhoneNumber,
	}
}

// ListLogsResponse wraps the communication history of a case.
type ListLogsResponse struct {
	Logs []CommunicationLogResponse `json:"logs"`
}

// ToListLogsResponse converts a slice of log entries to DTO.
func ToListLogsResponse(entries []domain.CommunicationLogEntry) ListLogsResponse {
	out := make([]CommunicationLogResponse, len(entries))
	for i := range entries {
		out[i] = ToCommunicationLogResponse(&entries[i])
	}
	return ListLogsResponse{Logs: out}
}

// UpsertSMSTemplateRequest creates or replaces an SMS template.
// A blank TemplateID means a new template.
type UpsertSMSTemplateRequest struct {
	TemplateID string `json:"templateID"`
	Name       string `json:"name" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Category   string `json:"category"`
}

// SMSTemplateResponse defines the data returned for an SMS template.
type SMSTemplateResponse struct {
	TemplateID string `json:"templateID"`
	Name       string `json:"name"`
	Content    string `json:"content"`
	Category   string `json:"category"`
}

// ToSMSTemplateResponse converts a domain.SMSTemplate to DTO.
func ToSMSTemplateResponse(t *domain.SMSTemplate) SMSTemplateResponse {
	return SMSTemplateResponse{
		TemplateID: t.TemplateID,
		Name:       t.Name,
		Content:    t.Content,
		Category:   t.Category,
	}
}
