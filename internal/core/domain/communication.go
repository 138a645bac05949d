package domain

import "time"

// CommunicationType is the channel of a logged client touchpoint.
type CommunicationType string

const (
	CommCall  CommunicationType = "call"
	CommSMS   CommunicationType = "sms"
	CommEmail CommunicationType = "email"
)

// CommunicationDirection distinguishes outbound from client-initiated contact.
type CommunicationDirection string

const (
	DirectionOutbound CommunicationDirection = "outbound"
	DirectionInbound  CommunicationDirection = "inbound"
)

// CommunicationStatus is the settled state reported by the telephony collaborator.
type CommunicationStatus string

const (
	CommPending   CommunicationStatus = "pending"
	CommCompleted CommunicationStatus = "completed"
	CommFailed    CommunicationStatus = "failed"
)

// CommunicationLogEntry records one call, SMS or email against a case. Entries
// are append-only and remain writable on closed cases for audit purposes.
type CommunicationLogEntry struct {
	LogID       string                 `json:"logID"` // Primary key (UUID)
	CaseID      string                 `json:"caseID"`
	Type        CommunicationType      `json:"type"`
	Direction   CommunicationDirection `json:"direction"`
	Status      CommunicationStatus    `json:"status"`
	Message     string                 `json:"message,omitempty"`
	Duration    string                 `json:"duration,omitempty"` // Calls only, e.g. "3m24s"
	Timestamp   time.Time              `json:"timestamp"`
	InitiatedBy string                 `json:"initiatedBy"`
	PhoneNumber string                 `json:"phoneNumber"`
}

// SMSTemplate is a reusable outbound message body. Placeholders {clientName}
// and {totalValue} are substituted at send time.
type SMSTemplate struct {
	TemplateID string `json:"templateID"` // Primary key (UUID)
	Name       string `json:"name"`
	Content    string `json:"content"`
	Category   string `json:"category"`

	AuditFields
}
