package domain

import "time"

// UserStatus marks whether a staff member can be assigned new work.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User represents a staff member of the consultancy (admin, RM, field boy or
// valuation analyst). ActiveCases counts the cases currently assigned to the
// user; a user with ActiveCases > 0 cannot be deleted.
type User struct {
	UserID       string     `json:"userID"` // Primary key (UUID)
	Name         string     `json:"name"`
	Username     string     `json:"username"` // Unique login name
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	ActiveCases  int        `json:"activeCases"`

	// OAuth identity, set when the account was provisioned via Google sign-in.
	AuthProvider   string `json:"authProvider,omitempty"`
	ProviderUserID string `json:"-"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// IsActive reports whether the user can take part in assignments.
func (u *User) IsActive() bool {
	return u.Status == UserActive && u.DeletedAt == nil
}

// GetUserID implements the dto user projection interface.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername implements the dto user projection interface.
func (u *User) GetUsername() string { return u.Username }

// GetName implements the dto user projection interface.
func (u *User) GetName() string { return u.Name }

// GoogleUserInfo carries the profile fields returned by Google's userinfo
// endpoint during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
