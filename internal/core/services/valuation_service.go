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
	valuationcalc "github.com/sharesarthi/share_recovery_crm/internal/utils/valuation"
)

// valuationService maintains the share entries of a case and their derived
// values. Every mutation rederives FinalShares and TotalValue so the entry
// invariants hold no matter which input changed.
type valuationService struct {
	BaseService
	valuationRepo portsrepo.ValuationRepositoryFacade
	caseRepo      portsrepo.CaseRepositoryFacade
}

// ValuationServiceOption configures optional dependencies of the valuation service.
type ValuationServiceOption func(*valuationService)

// WithValuationAuthorizer wires the capability authorizer.
func WithValuationAuthorizer(authorizer portssvc.CapabilityAuthorizerSvc) ValuationServiceOption {
	return func(s *valuationService) {
		s.Authorizer = authorizer
	}
}

// NewValuationService creates a new valuation service.
func NewValuationService(valuationRepo portsrepo.ValuationRepositoryFacade, caseRepo portsrepo.CaseRepositoryFacade, opts ...ValuationServiceOption) portssvc.ValuationSvcFacade {
	s := &valuationService{
		valuationRepo: valuationRepo,
		caseRepo:      caseRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

// ListEntries retrieves all valuation entries of a case in insertion order.
func (s *valuationService) ListEntries(ctx context.Context, caseID string) ([]domain.ValuationEntry, error) {
	if _, err := s.caseRepo.FindCaseByID(ctx, caseID); err != nil {
		return nil, err
	}
	entries, err := s.valuationRepo.FindEntriesByCase(ctx, caseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list valuation entries", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to list valuation entries: %w", err)
	}
	return entries, nil
}

// TotalShareValue sums TotalValue across all entries of the case.
func (s *valuationService) TotalShareValue(ctx context.Context, caseID string) (decimal.Decimal, error) {
	entries, err := s.ListEntries(ctx, caseID)
	if err != nil {
		return decimal.Zero, err
	}
	return valuationcalc.SumTotalValue(entries), nil
}

// NetValue is TotalShareValue minus the case expenditure. It goes negative
// when expenses exceed the recovered value; nothing clamps it.
func (s *valuationService) NetValue(ctx context.Context, caseID string) (decimal.Decimal, error) {
	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return decimal.Zero, err
	}
	entries, err := s.valuationRepo.FindEntriesByCase(ctx, caseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list valuation entries: %w", err)
	}
	return valuationcalc.NetValue(valuationcalc.SumTotalValue(entries), c.Expenditure), nil
}

// AddEntry appends a blank entry (numeric fields zero, split 1) to the case.
func (s *valuationService) AddEntry(ctx context.Context, caseID string, userID string) (*domain.ValuationEntry, error) {
	if err := s.Authorize(ctx, userID, domain.CapValuationWrite); err != nil {
		return nil, err
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}

	now := time.Now()
	entry := domain.NewValuationEntryDefaults(caseID)
	entry.EntryID = uuid.NewString()
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.valuationRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save valuation entry", slog.String("case_id", caseID))
		return nil, fmt.Errorf("failed to add valuation entry: %w", err)
	}

	return &entry, nil
}

// UpdateEntry applies the non-nil fields of req and rederives the entry's
// FinalShares and TotalValue. Invalid share inputs reject the whole update
// and leave the stored entry untouched.
func (s *valuationService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateValuationEntryRequest, userID string) (*domain.ValuationEntry, error) {
	if err := s.Authorize(ctx, userID, domain.CapValuationWrite); err != nil {
		return nil, err
	}

	entry, err := s.valuationRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find valuation entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	c, err := s.caseRepo.FindCaseByID(ctx, entry.CaseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}

	if req.ClientName != nil {
		entry.ClientName = *req.ClientName
	}
	if req.CompanyName != nil {
		entry.CompanyName = *req.CompanyName
	}
	if req.NewCompanyName != nil {
		entry.NewCompanyName = *req.NewCompanyName
	}
	if req.OriginalShares != nil {
		entry.OriginalShares = *req.OriginalShares
	}
	if req.Bonus != nil {
		entry.Bonus = *req.Bonus
	}
	if req.Split != nil {
		entry.Split = *req.Split
	}
	if req.FolioNumber != nil {
		entry.FolioNumber = *req.FolioNumber
	}
	if req.ValuePerShare != nil {
		entry.ValuePerShare = *req.ValuePerShare
	}
	if req.RTA != nil {
		entry.RTA = *req.RTA
	}
	if req.RTAMail != nil {
		entry.RTAMail = *req.RTAMail
	}
	if req.IsOriginalCertificate != nil {
		entry.IsOriginalCertificate = *req.IsOriginalCertificate
	}

	if err := valuationcalc.ValidateShareInputs(entry.OriginalShares, entry.Bonus, entry.Split, entry.ValuePerShare); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entry.Recalculate()
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.valuationRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update valuation entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update valuation entry: %w", err)
	}

	return entry, nil
}

// RemoveEntry deletes an entry; the case aggregates follow from the remainder.
func (s *valuationService) RemoveEntry(ctx context.Context, entryID string, userID string) error {
	if err := s.Authorize(ctx, userID, domain.CapValuationWrite); err != nil {
		return err
	}
	entry, err := s.valuationRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	c, err := s.caseRepo.FindCaseByID(ctx, entry.CaseID)
	if err != nil {
		return err
	}
	if c.Status.IsTerminal() {
		return fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}
	if err := s.valuationRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete valuation entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete valuation entry: %w", err)
	}
	return nil
}

// MarkValuationComplete moves the case to Valuation Complete once every entry
// carries a folio number, an RTA and a positive price.
func (s *valuationService) MarkValuationComplete(ctx context.Context, caseID string, userID string) (*domain.Case, error) {
	if err := s.Authorize(ctx, userID, domain.CapValuationComplete); err != nil {
		return nil, err
	}

	c, err := s.caseRepo.FindCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: case is closed", apperrors.ErrConflict)
	}
	if !c.Status.CanTransitionTo(domain.StatusValuationComplete) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrValidation, c.Status, domain.StatusValuationComplete)
	}

	entries, err := s.valuationRepo.FindEntriesByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuation entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: case has no valuation entries", apperrors.ErrValidation)
	}
	for i := range entries {
		if !entries[i].ReadyForCompletion() {
			return nil, fmt.Errorf("%w: valuation entry %s is incomplete", apperrors.ErrValidation, entries[i].EntryID)
		}
	}

	now := time.Now()
	c.Status = domain.StatusValuationComplete
	c.ValuationCompletedAt = &now
	c.LastUpdatedAt = now
	c.LastUpdatedBy = userID

	if err := s.caseRepo.UpdateCase(ctx, *c); err != nil {
		s.LogError(ctx, err, "Failed to mark valuation complete", slog.String("case_id", caseID))
		return nil, err
	}
	c.Version++

	s.LogInfo(ctx, "Valuation marked complete", slog.String("case_id", caseID), slog.Int("entries", len(entries)))
	return c, nil
}
