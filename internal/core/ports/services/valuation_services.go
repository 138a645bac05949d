package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// ValuationReaderSvc defines read operations over a case's valuation entries
type ValuationReaderSvc interface {
	// ListEntries retrieves all valuation entries of a case in insertion order.
	ListEntries(ctx context.Context, caseID string) ([]domain.ValuationEntry, error)

	// TotalShareValue sums TotalValue across all entries of the case.
	TotalShareValue(ctx context.Context, caseID string) (decimal.Decimal, error)

	// NetValue is TotalShareValue minus the case expenditure.
	NetValue(ctx context.Context, caseID string) (decimal.Decimal, error)
}

// ValuationWriterSvc maintains the derived-value invariants on mutation
type ValuationWriterSvc interface {
	// AddEntry appends a blank entry (numeric fields zero, split 1) to the case.
	AddEntry(ctx context.Context, caseID string, userID string) (*domain.ValuationEntry, error)

	// UpdateEntry applies the non-nil fields of req and rederives FinalShares
	// and TotalValue. Negative share counts or prices fail with ErrValidation
	// and leave the entry unchanged.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateValuationEntryRequest, userID string) (*domain.ValuationEntry, error)

	// RemoveEntry deletes an entry; case aggregates follow from the remainder.
	RemoveEntry(ctx context.Context, entryID string, userID string) error

	// MarkValuationComplete moves the case to Valuation Complete once every
	// entry carries a folio number, an RTA and a positive price. An empty
	// entry list or an incomplete entry fails with ErrValidation.
	MarkValuationComplete(ctx context.Context, caseID string, userID string) (*domain.Case, error)
}

// ValuationSvcFacade combines the valuation service interfaces
type ValuationSvcFacade interface {
	ValuationReaderSvc
	ValuationWriterSvc
}
