package domain

import (
	"github.com/shopspring/decimal"
)

// ValuationEntry is one share line under a case: the holding in one company,
// with its derived final share count and value.
//
// FinalShares and TotalValue are never written directly by callers; they are
// recomputed through Recalculate whenever any of their inputs changes so the
// invariants
//
//	FinalShares == (OriginalShares + Bonus) * Split
//	TotalValue  == FinalShares * ValuePerShare
//
// hold after every mutation.
type ValuationEntry struct {
	EntryID        string `json:"entryID"` // Primary key (UUID)
	CaseID         string `json:"caseID"`  // Owning case
	ClientName     string `json:"clientName"`
	CompanyName    string `json:"companyName"`
	NewCompanyName string `json:"newCompanyName,omitempty"` // Post merger/rename

	OriginalShares int64 `json:"originalShares"`
	Bonus          int64 `json:"bonus"`
	Split          int64 `json:"split"`
	FinalShares    int64 `json:"finalShares"` // Derived

	FolioNumber   string          `json:"folioNumber"`
	ValuePerShare decimal.Decimal `json:"valuePerShare"`
	TotalValue    decimal.Decimal `json:"totalValue"` // Derived

	RTA                   string `json:"rta"`
	RTAMail               string `json:"rtaMail"`
	IsOriginalCertificate bool   `json:"isOriginalCertificate"`

	AuditFields
}

// NewValuationEntryDefaults returns a zeroed entry for the case with Split=1,
// mirroring the blank row the valuation desk starts from.
func NewValuationEntryDefaults(caseID string) ValuationEntry {
	return ValuationEntry{
		CaseID:        caseID,
		Split:         1,
		ValuePerShare: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
}

// Recalculate rederives FinalShares and then TotalValue from the current
// inputs. A change to OriginalShares, Bonus or Split cascades through
// FinalShares into TotalValue.
func (e *ValuationEntry) Recalculate() {
	e.FinalShares = (e.OriginalShares + e.Bonus) * e.Split
	e.TotalValue = decimal.NewFromInt(e.FinalShares).Mul(e.ValuePerShare)
}

// ReadyForCompletion reports whether the entry satisfies the Valuation
// Complete guard: folio, RTA and a positive price are all populated.
func (e *ValuationEntry) ReadyForCompletion() bool {
	return e.FolioNumber != "" && e.RTA != "" && e.ValuePerShare.IsPositive()
}
