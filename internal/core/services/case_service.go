package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// caseService handles the case lifecycle: intake, status progression,
// assignment and per-company KYC.
type caseService struct {
	BaseService
	caseRepo      portsrepo.CaseRepositoryFacade
	userRepo      portsrepo.UserReader
	valuationRepo portsrepo.ValuationReader
}

// CaseServiceOption configures optional dependencies of the case service.
type CaseServiceOption func(*caseService)

// WithCaseAuthorizer wires the capability authorizer.
func WithCaseAuthorizer(authorizer portssvc.CapabilityAuthorizerSvc) CaseServiceOption {
	return func(s *caseService) {
		s.Authorizer = authorizer
	}
}

// WithUserReader wires the staff lookup used to validate assignments.
func WithUserReader(userRepo portsrepo.UserReader) CaseServiceOption {
	return func(s *caseService) {
		s.userRepo = userRepo
	}
}

// WithValuationReader wires the entry lookup used by the Valuation Complete guard.
func WithValuationReader(valuationRepo portsrepo.ValuationReader) CaseServiceOption {
	return func(s *caseService) {
		s.valuationRepo = valuationRepo
	}
}

// NewCaseService creates a new case service.
func NewCaseService(caseRepo portsrepo.CaseRepositoryFacade, opts ...CaseServiceOption) portssvc.CaseSvcFacade {
	s := &caseService{caseRepo: caseRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CaseSvcFacade = (*caseService)(nil)

// CreateCase starts a new case in Initial Assessment.
func (s *caseService) CreateCase(ctx context.Context, req dto.CreateCaseRequest, creatorUserID string) (*domain.Case, error) {
	if err := s.Authorize(ctx, creatorUserID, domain.CapCaseCreate); err != nil {
		return nil, err
	}

	if len(req.Shareholders) == 0 {
		return nil, fmt.Errorf("%w: at least one shareholder is required", apperrors.ErrValidation)
	}

	now := time.Now()
	c := domain.Case{
		CaseID:          uuid.NewString(),
		Name:            req.Name,
		ContactPerson:   req.ContactPerson,
		Mobile:          req.Mobile,
		AlternateMobile: req.AlternateMobile,
		Email:           req.Email,
		Folios:          req.Folios,
		CaseType:        domain.CaseType(req.CaseType),
		LeadSource:      domain.LeadSource(req.LeadSource),
		Status:          domain.StatusInitialAssessment,
		Shareholders:    req.Shareholders,
		OldAddress:      req.OldAddress,
		NewAddress:      req.NewAddress,
		Expenditure:     decimal.Zero,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.caseRepo.SaveCase(ctx, c); err != nil {
		s.LogError(ctx, err, "Failed to save case in repository", slog.String("case_name", req.Name))
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	s.LogInfo(ctx, "Case created", slog.String("case_id", c.CaseID), slog.String("created_by", creatorUserID))
	return &c, nil
}

// GetCaseByID retrieves a case by ID.
func (s *caseService) GetCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find case by ID", slog.String("case_id", caseID))
		}
		return nil, err
	}
	return c, nil
}

// ListCases retrieves cases matching the filter, newest first.
func (s *caseService) ListCases(ctx context.Context, filter portsrepo.CaseFilter, limit int, pageToken string) ([]domain.Case, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if filter.Status != nil && !domain.ValidStatus(*filter.Status) {
		return nil, "", fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, *filter.Status)
	}
	cases, nextToken, err := s.caseRepo.ListCases(ctx, filter, limit, pageToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cases")
		return nil, "", fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nextToken, nil
}

// AdvanceStatus moves a case forward to the target stage. The workflow only
// moves forward; entering Valuation Complete requires every entry to be ready
// and the documentation stages require an assigned team.
func (s *caseService) AdvanceStatus(ctx context.Context, caseID string, next domain.CaseStatus, userID string) (*domain.Case, error) {
	capability := domain.CapCaseAdvance
	if next == domain.StatusDealClosed {
		capability = domain.CapCaseClose
	}
	if err := s.Authorize(ctx, userID, capability); err != nil {
		return nil, err
	}

	if !domain.ValidStatus(next) {
		return nil, fmt.Errorf("%w: unknown status %s", apperrors.ErrValidation, next)
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}
	if !c.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrValidation, c.Status, next)
	}
	if next.RequiresAssignment() && !c.IsAssigned() {
		return nil, fmt.Errorf("%w: case must be assigned before entering %s", apperrors.ErrValidation, next)
	}
	if next.Order() >= domain.StatusValuationComplete.Order() && c.Status.Order() < domain.StatusValuationComplete.Order() {
		if err := s.checkValuationReady(ctx, caseID); err != nil {
			return nil, err
		}
		now := time.Now()
		c.ValuationCompletedAt = &now
	}

	s.LogInfo(ctx, "Case status advancing",
		slog.String("case_id", caseID),
		slog.String("from", string(c.Status)),
		slog.String("to", string(next)))

	c.Status = next
	c.LastUpdatedAt = time.Now()
	c.LastUpdatedBy = userID

	if err := s.caseRepo.UpdateCase(ctx, *c); err != nil {
		s.LogError(ctx, err, "Failed to update case status", slog.String("case_id", caseID))
		return nil, err
	}
	c.Version++

	return c, nil
}

// checkValuationReady enforces the Valuation Complete guard: the case must
// have at least one entry and every entry carries folio, RTA and a positive price.
func (s *caseService) checkValuationReady(ctx context.Context, caseID string) error {
	if s.valuationRepo == nil {
		return nil
	}
	entries, err := s.valuationRepo.FindEntriesByCase(ctx, caseID)
	if err != nil {
		return fmt.Errorf("failed to check valuation entries: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: case has no valuation entries", apperrors.ErrValidation)
	}
	for i := range entries {
		if !entries[i].ReadyForCompletion() {
			return fmt.Errorf("%w: valuation entry %s is incomplete", apperrors.ErrValidation, entries[i].EntryID)
		}
	}
	return nil
}

// SetExpenditure records the case-level expenditure used by net value.
func (s *caseService) SetExpenditure(ctx context.Context, caseID string, expenditure decimal.Decimal, userID string) (*domain.Case, error) {
	if err := s.Authorize(ctx, userID, domain.CapExpenditureSet); err != nil {
		return nil, err
	}
	if expenditure.IsNegative() {
		return nil, fmt.Errorf("%w: expenditure cannot be negative", apperrors.ErrValidation)
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}

	c.Expenditure = expenditure
	c.LastUpdatedAt = time.Now()
	c.LastUpdatedBy = userID

	if err := s.caseRepo.UpdateCase(ctx, *c); err != nil {
		s.LogError(ctx, err, "Failed to update case expenditure", slog.String("case_id", caseID))
		return nil, err
	}
	c.Version++

	return c, nil
}

// Assign atomically pairs one RM and one field boy with the case.
func (s *caseService) Assign(ctx context.Context, caseID string, rmID string, fieldBoyID string, requestingUserID string) (*domain.Case, error) {
	if err := s.Authorize(ctx, requestingUserID, domain.CapCaseAssign); err != nil {
		return nil, err
	}

	if rmID == "" || fieldBoyID == "" {
		return nil, fmt.Errorf("%w: both an RM and a field boy are required", apperrors.ErrValidation)
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}
	if c.IsAssigned() {
		return nil, fmt.Errorf("%w: case is already assigned", apperrors.ErrConflict)
	}

	if err := s.validateAssignee(ctx, rmID, domain.RoleRM); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, fieldBoyID, domain.RoleFieldBoy); err != nil {
		return nil, err
	}

	now := time.Now()
	c.AssignedRM = rmID
	c.AssignedFieldBoy = fieldBoyID
	c.AssignmentTimestamp = &now
	c.LastUpdatedAt = now
	c.LastUpdatedBy = requestingUserID

	if err := s.caseRepo.AssignCase(ctx, *c, rmID, fieldBoyID); err != nil {
		s.LogError(ctx, err, "Failed to assign case", slog.String("case_id", caseID))
		return nil, err
	}
	c.Version++

	s.LogInfo(ctx, "Case assigned",
		slog.String("case_id", caseID),
		slog.String("rm_id", rmID),
		slog.String("field_boy_id", fieldBoyID))
	return c, nil
}

// validateAssignee checks that the staff member exists, is active and holds
// the expected role.
func (s *caseService) validateAssignee(ctx context.Context, userID string, role domain.Role) error {
	if s.userRepo == nil {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, userID)
		}
		return fmt.Errorf("failed to validate assignee: %w", err)
	}
	if !user.IsActive() {
		return fmt.Errorf("%w: user %s is inactive", apperrors.ErrValidation, userID)
	}
	if user.Role != role {
		return fmt.Errorf("%w: user %s does not have role %s", apperrors.ErrValidation, userID, role)
	}
	return nil
}

// Unassign clears the assignment pair and releases both staff members.
func (s *caseService) Unassign(ctx context.Context, caseID string, requestingUserID string) (*domain.Case, error) {
	if err := s.Authorize(ctx, requestingUserID, domain.CapCaseAssign); err != nil {
		return nil, err
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !c.IsAssigned() {
		return nil, fmt.Errorf("%w: case is not assigned", apperrors.ErrValidation)
	}

	rmID := c.AssignedRM
	fieldBoyID := c.AssignedFieldBoy

	c.AssignedRM = ""
	c.AssignedFieldBoy = ""
	c.AssignmentTimestamp = nil
	c.LastUpdatedAt = time.Now()
	c.LastUpdatedBy = requestingUserID

	if err := s.caseRepo.UnassignCase(ctx, *c, rmID, fieldBoyID); err != nil {
		s.LogError(ctx, err, "Failed to unassign case", slog.String("case_id", caseID))
		return nil, err
	}
	c.Version++

	s.LogInfo(ctx, "Case unassigned", slog.String("case_id", caseID))
	return c, nil
}

// GetKYCStatuses retrieves the per-company KYC entries of a case.
func (s *caseService) GetKYCStatuses(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error) {
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}
	statuses, err := s.caseRepo.FindKYCByCase(ctx, caseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list KYC statuses", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to list KYC statuses: %w", err)
	}
	return statuses, nil
}

// UpsertKYC inserts or updates the KYC entry for a company under the case.
// Entries are keyed by company name, so repeated writes never duplicate.
func (s *caseService) UpsertKYC(ctx context.Context, caseID string, req dto.UpsertKYCRequest, userID string) (*domain.CompanyKYCStatus, error) {
	if err := s.Authorize(ctx, userID, domain.CapKYCWrite); err != nil {
		return nil, err
	}
	if req.CompanyName == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	// KYC entries stay editable after Deal Closed for audit purposes, so only
	// the case's existence is checked here.
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}

	status := domain.CompanyKYCStatus{
		CaseID:       caseID,
		CompanyName:  req.CompanyName,
		KYCCompleted: req.KYCCompleted,
		LastUpdated:  time.Now(),
		UpdatedBy:    userID,
	}

	if err := s.caseRepo.UpsertKYC(ctx, status); err != nil {
		s.LogError(ctx, err, "Failed to upsert KYC status",
			slog.String("case_id", caseID), slog.String("company", req.CompanyName))
		return nil, fmt.Errorf("failed to upsert KYC status: %w", err)
	}

	return &status, nil
}

// DeleteKYC removes a company's KYC entry from the case.
func (s *caseService) DeleteKYC(ctx context.Context, caseID string, companyName string, userID string) error {
	if err := s.Authorize(ctx, userID, domain.CapKYCWrite); err != nil {
		return err
	}
	if companyName == "" {
		return fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}
	if err := s.caseRepo.DeleteKYC(ctx, caseID, companyName); err != nil {
		s.LogError(ctx, err, "Failed to delete KYC status",
			slog.String("case_id", caseID), slog.String("company", companyName))
		return err
	}
	return nil
}
