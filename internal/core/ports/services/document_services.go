package services

import (
	"context"
	"io"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// DocumentSvcFacade records metadata for case documents. Bytes are handed to
// the storage collaborator; the core keeps the returned URI.
type DocumentSvcFacade interface {
	// UploadDocument stores the file with the collaborator and records its metadata.
	UploadDocument(ctx context.Context, caseID string, shareholder string, category string, fileName string, data io.Reader, userID string) (*domain.DocumentRecord, error)

	// ListDocuments retrieves the document records of a case.
	ListDocuments(ctx context.Context, caseID string) ([]domain.DocumentRecord, error)
}
