package domain

import "time"

// DocumentRecord is the metadata kept for an uploaded case document. The bytes
// themselves live with the document storage collaborator; the core only holds
// the stored URI it returned.
type DocumentRecord struct {
	DocumentID  string    `json:"documentID"` // Primary key (UUID)
	CaseID      string    `json:"caseID"`
	Shareholder string    `json:"shareholder"`
	Category    string    `json:"category"` // e.g. "PAN Card", "Share Certificate"
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"` // Bytes
	StoredURI   string    `json:"storedURI"`
	UploadDate  time.Time `json:"uploadDate"`
	UploadedBy  string    `json:"uploadedBy"`
}
