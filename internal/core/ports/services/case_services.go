package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// CaseReaderSvc defines read operations on cases
type CaseReaderSvc interface {
	// GetCaseByID retrieves a case by ID.
	GetCaseByID(ctx context.Context, caseID string) (*domain.Case, error)

	// ListCases retrieves cases matching the filter, newest first, with an
	// opaque token for the next page.
	ListCases(ctx context.Context, filter repositories.CaseFilter, limit int, pageToken string) ([]domain.Case, string, error)

	// GetKYCStatuses retrieves the per-company KYC entries of a case.
	GetKYCStatuses(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error)
}

// CaseWriterSvc defines the case lifecycle commands
type CaseWriterSvc interface {
	// CreateCase starts a new case in Initial Assessment (intake, Process 1).
	CreateCase(ctx context.Context, req dto.CreateCaseRequest, creatorUserID string) (*domain.Case, error)

	// AdvanceStatus moves a case forward to the target stage, enforcing the
	// valuation and assignment guards. Backward moves and any mutation of a
	// closed case fail with ErrValidation / ErrConflict.
	AdvanceStatus(ctx context.Context, caseID string, next domain.CaseStatus, userID string) (*domain.Case, error)

	// SetExpenditure records the case-level expenditure used by net value.
	SetExpenditure(ctx context.Context, caseID string, expenditure decimal.Decimal, userID string) (*domain.Case, error)

	// UpsertKYC inserts or updates the KYC entry for a company under the case.
	UpsertKYC(ctx context.Context, caseID string, req dto.UpsertKYCRequest, userID string) (*domain.CompanyKYCStatus, error)

	// DeleteKYC removes a company's KYC entry from the case.
	DeleteKYC(ctx context.Context, caseID string, companyName string, userID string) error
}

// CaseAssignmentSvc pairs exactly one RM and one field boy with a case
type CaseAssignmentSvc interface {
	// Assign atomically sets both assignment fields, stamps the assignment
	// time and increments both staff members' active case counters. A blank
	// or role-mismatched id fails with ErrValidation and leaves the case
	// untouched; an already-assigned case fails with ErrConflict.
	Assign(ctx context.Context, caseID string, rmID string, fieldBoyID string, requestingUserID string) (*domain.Case, error)

	// Unassign clears the assignment pair and decrements both counters,
	// floored at zero.
	Unassign(ctx context.Context, caseID string, requestingUserID string) (*domain.Case, error)
}

// CaseSvcFacade combines all case-related service interfaces
type CaseSvcFacade interface {
	CaseReaderSvc
	CaseWriterSvc
	CaseAssignmentSvc
}
