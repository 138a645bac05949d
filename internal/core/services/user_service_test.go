package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/core/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade

	adminID string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
	s.adminID = uuid.NewString()
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Priya Shah",
		Username: "priya",
		Password: "s3cret-pass",
		Role:     domain.RoleRM,
	}

	s.mockRepo.On("FindUserByUsername", ctx, "priya").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "priya" &&
			u.Role == domain.RoleRM &&
			u.Status == domain.UserActive &&
			u.ActiveCases == 0 &&
			u.PasswordHash != "" && u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := s.service.CreateUser(ctx, req, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.RoleRM, user.Role)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "N", Username: "taken", Password: "s3cret-pass", Role: domain.RoleRM}

	s.mockRepo.On("FindUserByUsername", ctx, "taken").Return(&domain.User{UserID: uuid.NewString(), Username: "taken"}, nil).Once()

	user, err := s.service.CreateUser(ctx, req, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(user)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteUser_WithActiveCasesRejected() {
	ctx := context.Background()
	target := &domain.User{
		UserID:      uuid.NewString(),
		Role:        domain.RoleRM,
		Status:      domain.UserActive,
		ActiveCases: 2,
	}

	s.mockRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()

	err := s.service.DeleteUser(ctx, target.UserID, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	target := &domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleFieldBoy,
		Status: domain.UserActive,
	}

	s.mockRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()
	s.mockRepo.On("MarkUserDeleted", ctx, target.UserID, mock.AnythingOfType("time.Time"), s.adminID).Return(nil).Once()

	err := s.service.DeleteUser(ctx, target.UserID, s.adminID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "priya",
		PasswordHash: hash,
		Status:       domain.UserActive,
	}

	s.mockRepo.On("FindUserByUsername", ctx, "priya").Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(ctx, "priya", "correct-horse")

	s.Require().NoError(err)
	s.Equal(user.UserID, got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "priya",
		PasswordHash: hash,
		Status:       domain.UserActive,
	}

	s.mockRepo.On("FindUserByUsername", ctx, "priya").Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(ctx, "priya", "wrong")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Nil(got)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_InactiveRejected() {
	ctx := context.Background()
	now := time.Now()
	user := &domain.User{
		UserID:    uuid.NewString(),
		Username:  "gone",
		Status:    domain.UserActive,
		DeletedAt: &now,
	}

	s.mockRepo.On("FindUserByUsername", ctx, "gone").Return(user, nil).Once()

	_, err := s.service.AuthenticateUser(ctx, "gone", "whatever")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthorizeAction_RoleLacksCapability() {
	ctx := context.Background()
	fieldBoy := &domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleFieldBoy,
		Status: domain.UserActive,
	}

	s.mockRepo.On("FindUserByID", ctx, fieldBoy.UserID).Return(fieldBoy, nil).Once()

	err := s.service.AuthorizeAction(ctx, fieldBoy.UserID, domain.CapCaseAssign)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *UserServiceTestSuite) TestAuthorizeAction_UnknownUser() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	s.mockRepo.On("FindUserByID", ctx, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.AuthorizeAction(ctx, unknownID, domain.CapCaseCreate)

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestAuthorizeAction_AdminHasAll() {
	ctx := context.Background()
	admin := &domain.User{
		UserID: uuid.NewString(),
		Role:   domain.RoleMasterAdmin,
		Status: domain.UserActive,
	}

	s.mockRepo.On("FindUserByID", ctx, admin.UserID).Return(admin, nil).Times(3)

	s.NoError(s.service.AuthorizeAction(ctx, admin.UserID, domain.CapCaseAssign))
	s.NoError(s.service.AuthorizeAction(ctx, admin.UserID, domain.CapUserManage))
	s.NoError(s.service.AuthorizeAction(ctx, admin.UserID, domain.CapValuationWrite))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
