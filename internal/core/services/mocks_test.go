package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, role *domain.Role, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock CaseRepository ---

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseRepository) ListCases(ctx context.Context, filter portsrepo.CaseFilter, limit int, pageToken string) ([]domain.Case, string, error) {
	args := m.Called(ctx, filter, limit, pageToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Case), args.String(1), args.Error(2)
}

func (m *MockCaseRepository) SaveCase(ctx context.Context, c domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateCase(ctx context.Context, c domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) AssignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error {
	args := m.Called(ctx, c, rmID, fieldBoyID)
	return args.Error(0)
}

func (m *MockCaseRepository) UnassignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error {
	args := m.Called(ctx, c, rmID, fieldBoyID)
	return args.Error(0)
}

func (m *MockCaseRepository) FindKYCByCase(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyKYCStatus), args.Error(1)
}

func (m *MockCaseRepository) UpsertKYC(ctx context.Context, status domain.CompanyKYCStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockCaseRepository) DeleteKYC(ctx context.Context, caseID string, companyName string) error {
	args := m.Called(ctx, caseID, companyName)
	return args.Error(0)
}

// --- Mock ValuationRepository ---

type MockValuationRepository struct {
	mock.Mock
}

func (m *MockValuationRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ValuationEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationEntry), args.Error(1)
}

func (m *MockValuationRepository) FindEntriesByCase(ctx context.Context, caseID string) ([]domain.ValuationEntry, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValuationEntry), args.Error(1)
}

func (m *MockValuationRepository) SaveEntry(ctx context.Context, entry domain.ValuationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockValuationRepository) UpdateEntry(ctx context.Context, entry domain.ValuationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockValuationRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock ReminderRepository ---

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ReminderRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReminderRule), args.Error(1)
}

func (m *MockReminderRepository) FindRules(ctx context.Context) ([]domain.ReminderRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderRule), args.Error(1)
}

func (m *MockReminderRepository) FindScheduledReminders(ctx context.Context, limit int, offset int) ([]domain.ScheduledReminder, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledReminder), args.Error(1)
}

func (m *MockReminderRepository) SaveRule(ctx context.Context, rule domain.ReminderRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockReminderRepository) DeleteRule(ctx context.Context, ruleID string) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

// --- Mock CommunicationRepository ---

type MockCommunicationRepository struct {
	mock.Mock
}

func (m *MockCommunicationRepository) FindLogsByCase(ctx context.Context, caseID string, limit int, offset int) ([]domain.CommunicationLogEntry, error) {
	args := m.Called(ctx, caseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommunicationLogEntry), args.Error(1)
}

func (m *MockCommunicationRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.SMSTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SMSTemplate), args.Error(1)
}

func (m *MockCommunicationRepository) FindTemplates(ctx context.Context) ([]domain.SMSTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SMSTemplate), args.Error(1)
}

func (m *MockCommunicationRepository) AppendLog(ctx context.Context, entry domain.CommunicationLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCommunicationRepository) SaveTemplate(ctx context.Context, tmpl domain.SMSTemplate) error {
	args := m.Called(ctx, tmpl)
	return args.Error(0)
}

func (m *MockCommunicationRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

// --- Mock TelephonyDispatcher ---

type MockTelephonyDispatcher struct {
	mock.Mock
}

func (m *MockTelephonyDispatcher) Dispatch(ctx context.Context, req collaborators.DispatchRequest) (domain.CommunicationLogEntry, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.CommunicationLogEntry), args.Error(1)
}
