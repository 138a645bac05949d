package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// UpdateValuationEntryRequest defines the data allowed for updating an entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
// FinalShares and TotalValue are derived and cannot be set directly.
type UpdateValuationEntryRequest struct {
	ClientName            *string          `json:"clientName"`
	CompanyName           *string          `json:"companyName"`
	NewCompanyName        *string          `json:"newCompanyName"`
	OriginalShares        *int64           `json:"originalShares"`
	Bonus                 *int64           `json:"bonus"`
	Split                 *int64           `json:"split"`
	FolioNumber           *string          `json:"folioNumber"`
	ValuePerShare         *decimal.Decimal `json:"valuePerShare"`
	RTA                   *string          `json:"rta"`
	RTAMail               *string          `json:"rtaMail"`
	IsOriginalCertificate *bool            `json:"isOriginalCertificate"`
}

// ValuationEntryResponse defines the data returned for a valuation entry.
type ValuationEntryResponse struct {
	EntryID               string          `json:"entryID"`
	CaseID                string          `json:"caseID"`
	ClientName            string          `json:"clientName"`
	CompanyName           string          `json:"companyName"`
	NewCompanyName        string          `json:"newCompanyName,omitempty"`
	OriginalShares        int64           `json:"originalShares"`
	Bonus                 int64           `json:"bonus"`
	Split                 int64           `json:"split"`
	FinalShares           int64           `json:"finalShares"`
	FolioNumber           string          `json:"folioNumber"`
	ValuePerShare         decimal.Decimal `json:"valuePerShare"`
	TotalValue            decimal.Decimal `json:"totalValue"`
	RTA                   string          `json:"rta"`
	RTAMail               string          `json:"rtaMail"`
	IsOriginalCertificate bool            `json:"isOriginalCertificate"`
	LastUpdatedAt         time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy         string          `json:"lastUpdatedBy"`
}

// ToValuationEntryResponse converts a domain.ValuationEntry to DTO.
func ToValuationEntryResponse(e *domain.ValuationEntry) ValuationEntryResponse {
	return ValuationEntryResponse{
		EntryID:               e.EntryID,
		CaseID:                e.CaseID,
		ClientName:            e.ClientName,
		CompanyName:           e.CompanyName,
		NewCompanyName:        e.NewCompanyName,
		OriginalShares:        e.OriginalShares,
		Bonus:                 e.Bonus,
		Split:                 e.Split,
		FinalShares:           e.FinalShares,
		FolioNumber:           e.FolioNumber,
		ValuePerShare:         e.ValuePerShare,
		TotalValue:            e.TotalValue,
		RTA:                   e.RTA,
		RTAMail:               e.RTAMail,
		IsOriginalCertificate: e.IsOriginalCertificate,
		LastUpdatedAt:         e.LastUpdatedAt,
		LastUpdatedBy:         e.LastUpdatedBy,
	}
}

// ValuationSummaryResponse reports the case-level aggregates.
type ValuationSummaryResponse struct {
	CaseID          string                   `json:"caseID"`
	Entries         []ValuationEntryResponse `json:"entries"`
	TotalShareValue decimal.Decimal          `json:"totalShareValue"`
	Expenditure     decimal.Decimal          `json:"expenditure"`
	NetValue        decimal.Decimal          `json:"netValue"`
}
