package repositories

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// ValuationReader defines read operations for valuation entries
type ValuationReader interface {
	// FindEntryByID retrieves a specific valuation entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.ValuationEntry, error)

	// FindEntriesByCase retrieves all valuation entries for a case in insertion order.
	FindEntriesByCase(ctx context.Context, caseID string) ([]domain.ValuationEntry, error)
}

// ValuationWriter defines write operations for valuation entries
type ValuationWriter interface {
	// SaveEntry persists a new valuation entry.
	SaveEntry(ctx context.Context, entry domain.ValuationEntry) error

	// UpdateEntry updates an existing valuation entry.
	UpdateEntry(ctx context.Context, entry domain.ValuationEntry) error

	// DeleteEntry removes a valuation entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// ValuationRepositoryFacade combines all valuation repository interfaces.
type ValuationRepositoryFacade interface {
	ValuationReader
	ValuationWriter
}
