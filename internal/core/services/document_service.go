package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
)

// documentService records metadata for case documents. The bytes go to the
// storage collaborator; only the URI it returns is kept.
type documentService struct {
	BaseService
	docRepo  portsrepo.DocumentRepositoryFacade
	caseRepo portsrepo.CaseReader
	store    collaborators.DocumentStore
}

// DocumentServiceOption configures optional dependencies of the document service.
type DocumentServiceOption func(*documentService)

// WithDocumentAuthorizer wires the capability authorizer.
func WithDocumentAuthorizer(authorizer portssvc.CapabilityAuthorizerSvc) DocumentServiceOption {
	return func(s *documentService) {
		s.Authorizer = authorizer
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, caseRepo portsrepo.CaseReader, store collaborators.DocumentStore, opts ...DocumentServiceOption) portssvc.DocumentSvcFacade {
	s := &documentService{
		docRepo:  docRepo,
		caseRepo: caseRepo,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// UploadDocument stores the file with the collaborator and records its metadata.
func (s *documentService) UploadDocument(ctx context.Context, caseID string, shareholder string, category string, fileName string, data io.Reader, userID string) (*domain.DocumentRecord, error) {
	if err := s.Authorize(ctx, userID, domain.CapDocumentUpload); err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", apperrors.ErrValidation)
	}
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}

	uri, size, err := s.store.Store(ctx, caseID, shareholder, category, fileName, data)
	if err != nil {
		s.LogError(ctx, err, "Failed to store document", slog.String("case_id", caseID), slog.String("file_name", fileName))
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := domain.DocumentRecord{
		DocumentID:  uuid.NewString(),
		CaseID:      caseID,
		Shareholder: shareholder,
		Category:    category,
		FileName:    fileName,
		Size:        size,
		StoredURI:   uri,
		UploadDate:  time.Now(),
		UploadedBy:  userID,
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document record", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	s.LogInfo(ctx, "Document uploaded",
		slog.String("case_id", caseID),
		slog.String("document_id", doc.DocumentID),
		slog.Int64("size", size))
	return &doc, nil
}

// ListDocuments retrieves the document records of a case.
func (s *documentService) ListDocuments(ctx context.Context, caseID string) ([]domain.DocumentRecord, error) {
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.FindDocumentsByCase(ctx, caseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
