package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a platform account: a developer (platform administrator),
// a society admin or a plain member.
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Role              string    `gorm:"size:20;default:member" json:"role"`
	SocietyID         *uint     `gorm:"index" json:"society_id"`
	Status            string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Society *Society `gorm:"foreignKey:SocietyID" json:"society,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleMember
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// IsDeveloper returns true if user has the developer role
func (u *User) IsDeveloper() bool {
	return u.Role == RoleDeveloper
}

// IsSocietyAdmin returns true if user administers a society
func (u *User) IsSocietyAdmin() bool {
	return u.Role == RoleSocietyAdmin
}

// IsActive returns true if user status is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Role constants
const (
	RoleDeveloper    = "developer"
	RoleSocietyAdmin = "society_admin"
	RoleMember       = "member"
)

// Status constants
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	SocietyID *uint     `json:"society_id,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		SocietyID: u.SocietyID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
