package repositories

import (
	"context"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// CaseFilter narrows ListCases results. Nil fields match everything.
type CaseFilter struct {
	Status     *domain.CaseStatus
	AssignedRM *string
}

// CaseReader defines read operations for case data
type CaseReader interface {
	// FindCaseByID retrieves a specific case by its ID.
	FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error)

	// ListCases retrieves cases matching the filter, newest first. nextToken is
	// the opaque pagination token for the following page, empty on the last page.
	ListCases(ctx context.Context, filter CaseFilter, limit int, pageToken string) (cases []domain.Case, nextToken string, err error)
}

// CaseWriter defines write operations for case data
type CaseWriter interface {
	// SaveCase persists a new case together with its shareholder list.
	SaveCase(ctx context.Context, c domain.Case) error

	// UpdateCase updates an existing case. The update is applied only when the
	// stored version matches c.Version; a stale version yields ErrConflict.
	UpdateCase(ctx context.Context, c domain.Case) error
}

// CaseAssignmentManager covers the atomic assignment mutation: the case fields
// and both staff active-case counters change in a single transaction.
type CaseAssignmentManager interface {
	// AssignCase writes the assignment fields of c and increments the active
	// case counters of rmID and fieldBoyID.
	AssignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error

	// UnassignCase clears the assignment fields of c and decrements the active
	// case counters of rmID and fieldBoyID, floored at zero.
	UnassignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error
}

// KYCReader defines read operations for per-company KYC state
type KYCReader interface {
	// FindKYCByCase retrieves all KYC entries for a case.
	FindKYCByCase(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error)
}

// KYCWriter defines write operations for per-company KYC state
type KYCWriter interface {
	// UpsertKYC inserts or replaces the entry keyed by (caseID, companyName).
	UpsertKYC(ctx context.Context, status domain.CompanyKYCStatus) error

	// DeleteKYC removes the entry keyed by (caseID, companyName).
	DeleteKYC(ctx context.Context, caseID string, companyName string) error
}

// CaseRepositoryFacade combines all case-related repository interfaces.
type CaseRepositoryFacade interface {
	CaseReader
	CaseWriter
	CaseAssignmentManager
	KYCReader
	KYCWriter
}
