package repositories

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// DocumentReader defines read operations for document metadata
type DocumentReader interface {
	// FindDocumentsByCase retrieves all document records for a case.
	FindDocumentsByCase(ctx context.Context, caseID string) ([]domain.DocumentRecord, error)
}

// DocumentWriter defines write operations for document metadata
type DocumentWriter interface {
	// SaveDocument persists a new document record.
	SaveDocument(ctx context.Context, doc domain.DocumentRecord) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
