package dto

import (
	"time"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// DocumentResponse defines the metadata returned for an uploaded document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentID"`
	CaseID      string    `json:"caseID"`
	Shareholder string    `json:"shareholder"`
	Category    string    `json:"category"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	StoredURI   string    `json:"storedURI"`
	UploadDate  time.Time `json:"uploadDate"`
	UploadedBy  string    `json:"uploadedBy"`
}

// ToDocumentResponse converts a domain.DocumentRecord to DTO.
func ToDocumentResponse(d *domain.DocumentRecord) DocumentResponse {
	return DocumentResponse{
		DocumentID:  d.DocumentID,
		CaseID:      d.CaseID,
		Shareholder: d.Shareholder,
		Category:    d.Category,
		FileName:    d.FileName,
		Size:        d.Size,
		StoredURI:   d.StoredURI,
		UploadDate:  d.UploadDate,
		UploadedBy:  d.UploadedBy,
	}
}

// ListDocumentsResponse wraps the document records of a case.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of document records to DTO.
func ToListDocumentsResponse(docs []domain.DocumentRecord) ListDocumentsResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return ListDocumentsResponse{Documents: out}
}
