package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/core/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

type ValuationServiceTestSuite struct {
	suite.Suite
	mockValuationRepo *MockValuationRepository
	mockCaseRepo      *MockCaseRepository
	service           portssvc.ValuationSvcFacade

	actorID string
	caseID  string
}

func (s *ValuationServiceTestSuite) SetupTest() {
	s.mockValuationRepo = new(MockValuationRepository)
	s.mockCaseRepo = new(MockCaseRepository)
	s.service = services.NewValuationService(s.mockValuationRepo, s.mockCaseRepo)
	s.actorID = uuid.NewString()
	s.caseID = uuid.NewString()
}

func (s *ValuationServiceTestSuite) openCase() *domain.Case {
	return &domain.Case{
		CaseID:      s.caseID,
		Status:      domain.StatusUnderValuation,
		Expenditure: decimal.Zero,
		Version:     1,
	}
}

func (s *ValuationServiceTestSuite) closedCase() *domain.Case {
	c := s.openCase()
	c.Status = domain.StatusDealClosed
	return c
}

func int64Ptr(v int64) *int64                     { return &v }
func decimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// --- AddEntry ---

func (s *ValuationServiceTestSuite) TestAddEntry_Defaults() {
	ctx := context.Background()

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.ValuationEntry) bool {
		return e.CaseID == s.caseID &&
			e.OriginalShares == 0 && e.Bonus == 0 && e.Split == 1 &&
			e.FinalShares == 0 && e.TotalValue.IsZero()
	})).Return(nil).Once()

	entry, err := s.service.AddEntry(ctx, s.caseID, s.actorID)

	s.Require().NoError(err)
	s.Equal(int64(1), entry.Split)
	s.True(entry.TotalValue.IsZero())
	s.mockValuationRepo.AssertExpectations(s.T())
}

// --- UpdateEntry ---

func (s *ValuationServiceTestSuite) TestUpdateEntry_RederivesChain() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{
		EntryID: uuid.NewString(),
		CaseID:  s.caseID,
		Split:   1,
	}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.ValuationEntry) bool {
		// (100 + 50) * 2 = 300 shares at 2450 each
		return e.FinalShares == 300 && e.TotalValue.Equal(decimal.RequireFromString("735000"))
	})).Return(nil).Once()

	req := dto.UpdateValuationEntryRequest{
		OriginalShares: int64Ptr(100),
		Bonus:          int64Ptr(50),
		Split:          int64Ptr(2),
		ValuePerShare:  decimalPtr(decimal.RequireFromString("2450")),
	}

	updated, err := s.service.UpdateEntry(ctx, entry.EntryID, req, s.actorID)

	s.Require().NoError(err)
	s.Equal(int64(300), updated.FinalShares)
	s.True(updated.TotalValue.Equal(decimal.RequireFromString("735000")))
	s.mockValuationRepo.AssertExpectations(s.T())
}

func (s *ValuationServiceTestSuite) TestUpdateEntry_SplitChangeCascades() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{
		EntryID:        uuid.NewString(),
		CaseID:         s.caseID,
		OriginalShares: 100,
		Bonus:          50,
		Split:          1,
		FinalShares:    150,
		ValuePerShare:  decimal.RequireFromString("10"),
		TotalValue:     decimal.RequireFromString("1500"),
	}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("UpdateEntry", ctx, mock.MatchedBy(func(e domain.ValuationEntry) bool {
		return e.FinalShares == 450 && e.TotalValue.Equal(decimal.RequireFromString("4500"))
	})).Return(nil).Once()

	req := dto.UpdateValuationEntryRequest{Split: int64Ptr(3)}

	updated, err := s.service.UpdateEntry(ctx, entry.EntryID, req, s.actorID)

	s.Require().NoError(err)
	s.Equal(int64(450), updated.FinalShares)
	s.mockValuationRepo.AssertExpectations(s.T())
}

func (s *ValuationServiceTestSuite) TestUpdateEntry_NegativeSharesRejected() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{EntryID: uuid.NewString(), CaseID: s.caseID, Split: 1}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()

	req := dto.UpdateValuationEntryRequest{OriginalShares: int64Ptr(-10)}

	_, err := s.service.UpdateEntry(ctx, entry.EntryID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockValuationRepo.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (s *ValuationServiceTestSuite) TestUpdateEntry_NegativePriceRejected() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{EntryID: uuid.NewString(), CaseID: s.caseID, Split: 1}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()

	req := dto.UpdateValuationEntryRequest{ValuePerShare: decimalPtr(decimal.RequireFromString("-5"))}

	_, err := s.service.UpdateEntry(ctx, entry.EntryID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockValuationRepo.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (s *ValuationServiceTestSuite) TestUpdateEntry_ClosedCaseRejected() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{EntryID: uuid.NewString(), CaseID: s.caseID, Split: 1}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.closedCase(), nil).Once()

	req := dto.UpdateValuationEntryRequest{OriginalShares: int64Ptr(200)}

	_, err := s.service.UpdateEntry(ctx, entry.EntryID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockValuationRepo.AssertNotCalled(s.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

// --- RemoveEntry ---

func (s *ValuationServiceTestSuite) TestRemoveEntry_Success() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{EntryID: uuid.NewString(), CaseID: s.caseID, Split: 1}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("DeleteEntry", ctx, entry.EntryID).Return(nil).Once()

	err := s.service.RemoveEntry(ctx, entry.EntryID, s.actorID)

	s.Require().NoError(err)
	s.mockValuationRepo.AssertExpectations(s.T())
}

func (s *ValuationServiceTestSuite) TestRemoveEntry_ClosedCaseRejected() {
	ctx := context.Background()
	entry := &domain.ValuationEntry{EntryID: uuid.NewString(), CaseID: s.caseID, Split: 1}

	s.mockValuationRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.closedCase(), nil).Once()

	err := s.service.RemoveEntry(ctx, entry.EntryID, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockValuationRepo.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

// --- Aggregates ---

func (s *ValuationServiceTestSuite) TestTotalShareValue_SumsEntries() {
	ctx := context.Background()
	entries := []domain.ValuationEntry{
		{TotalValue: decimal.RequireFromString("735000")},
		{TotalValue: decimal.RequireFromString("15000")},
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.caseID).Return(entries, nil).Once()

	total, err := s.service.TotalShareValue(ctx, s.caseID)

	s.Require().NoError(err)
	s.True(total.Equal(decimal.RequireFromString("750000")))
}

func (s *ValuationServiceTestSuite) TestNetValue_SubtractsExpenditure() {
	ctx := context.Background()
	c := s.openCase()
	c.Expenditure = decimal.RequireFromString("50000")
	entries := []domain.ValuationEntry{{TotalValue: decimal.RequireFromString("30000")}}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(c, nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.caseID).Return(entries, nil).Once()

	net, err := s.service.NetValue(ctx, s.caseID)

	s.Require().NoError(err)
	// Expenses above recovered value are reported as-is, not clamped.
	s.True(net.Equal(decimal.RequireFromString("-20000")))
}

// --- MarkValuationComplete ---

func (s *ValuationServiceTestSuite) TestMarkValuationComplete_Success() {
	ctx := context.Background()
	entries := []domain.ValuationEntry{
		{EntryID: uuid.NewString(), FolioNumber: "F-001", RTA: "KFintech", ValuePerShare: decimal.RequireFromString("2450")},
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.caseID).Return(entries, nil).Once()
	s.mockCaseRepo.On("UpdateCase", ctx, mock.MatchedBy(func(c domain.Case) bool {
		return c.Status == domain.StatusValuationComplete && c.ValuationCompletedAt != nil
	})).Return(nil).Once()

	c, err := s.service.MarkValuationComplete(ctx, s.caseID, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusValuationComplete, c.Status)
	s.mockCaseRepo.AssertExpectations(s.T())
}

func (s *ValuationServiceTestSuite) TestMarkValuationComplete_EmptyRejected() {
	ctx := context.Background()

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.caseID).Return([]domain.ValuationEntry{}, nil).Once()

	_, err := s.service.MarkValuationComplete(ctx, s.caseID, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func (s *ValuationServiceTestSuite) TestMarkValuationComplete_IncompleteEntryRejected() {
	ctx := context.Background()
	entries := []domain.ValuationEntry{
		{EntryID: uuid.NewString(), FolioNumber: "F-001", RTA: "KFintech", ValuePerShare: decimal.RequireFromString("2450")},
		{EntryID: uuid.NewString(), FolioNumber: "", RTA: "Link Intime", ValuePerShare: decimal.RequireFromString("100")},
	}

	s.mockCaseRepo.On("FindCaseByID", ctx, s.caseID).Return(s.openCase(), nil).Once()
	s.mockValuationRepo.On("FindEntriesByCase", ctx, s.caseID).Return(entries, nil).Once()

	_, err := s.service.MarkValuationComplete(ctx, s.caseID, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockCaseRepo.AssertNotCalled(s.T(), "UpdateCase", mock.Anything, mock.Anything)
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}
