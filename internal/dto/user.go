package dto

import (
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a staff user.
type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required"`
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=MASTER_ADMIN RM FIELD_BOY VALUATION_ANALYST"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string            `json:"name"`
	Password *string            `json:"password"`
	Role     *domain.Role       `json:"role"`
	Status   *domain.UserStatus `json:"status"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role   string `form:"role"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// UserResponse defines the data returned for a staff user.
type UserResponse struct {
	UserID      string            `json:"userID"`
	Name        string            `json:"name"`
	Username    string            `json:"username"`
	Role        domain.Role       `json:"role"`
	Status      domain.UserStatus `json:"status"`
	ActiveCases int               `json:"activeCases"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        u.Role,
		Status:      u.Status,
		ActiveCases: u.ActiveCases,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
