package domain

import "time"

// CompanyKYCStatus tracks KYC completion for one company under a case.
// Entries are keyed by company name within the case; writing an existing
// company updates it in place rather than adding a duplicate.
type CompanyKYCStatus struct {
	CaseID       string    `json:"caseID"`
	CompanyName  string    `json:"companyName"`
	KYCCompleted bool      `json:"kycCompleted"`
	LastUpdated  time.Time `json:"lastUpdated"`
	UpdatedBy    string    `json:"updatedBy"`
}
