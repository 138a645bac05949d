package collaborators

import (
	"context"
	"io"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// DispatchRequest describes one outbound call or SMS for the telephony collaborator.
type DispatchRequest struct {
	Type        domain.CommunicationType
	PhoneNumber string
	Message     string // Empty for calls
	InitiatedBy string
}

// TelephonyDispatcher is the outbound telephony/SMS collaborator. Dispatch
// performs (or simulates) the call or SMS and returns a log entry with its
// status settled to completed or failed; the core only appends that entry and
// never retries on its own.
type TelephonyDispatcher interface {
	Dispatch(ctx context.Context, req DispatchRequest) (domain.CommunicationLogEntry, error)
}

// DocumentStore is the document storage collaborator. It owns the bytes of
// uploaded files; the core keeps only the returned URI and size as metadata.
type DocumentStore interface {
	Store(ctx context.Context, caseID string, shareholder string, category string, fileName string, data io.Reader) (uri string, size int64, err error)
}
