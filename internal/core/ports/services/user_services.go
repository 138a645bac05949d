package services

import (
	"context"
	"time"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
)

// UserReaderSvc defines read operations for the staff directory
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users, optionally filtered by role.
	ListUsers(ctx context.Context, role *domain.Role, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for the staff directory
type UserWriterSvc interface {
	// CreateUser creates a new staff user. Duplicate usernames fail with ErrDuplicate.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// CreateOAuthUser finds or creates a staff user from a verified OAuth identity.
	CreateOAuthUser(ctx context.Context, provider string, providerUserID string, email string, name string) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser soft deletes a user. A user with active cases cannot be
	// deleted; the call fails with ErrConflict.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
	CapabilityAuthorizerSvc
}

// CapabilityAuthorizerSvc checks a user's capability before a command executes.
// Roles map to explicit capability sets in the domain; services consult this
// instead of comparing role strings ad hoc.
type CapabilityAuthorizerSvc interface {
	// AuthorizeAction returns ErrForbidden when the user's role lacks the
	// capability, and ErrUnauthorized when the user is unknown or inactive.
	AuthorizeAction(ctx context.Context, userID string, capability domain.Capability) error
}
