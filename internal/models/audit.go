package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents an immutable record of a security-relevant action.
// UserID is nullable so entries survive actor deletion; SocietyID cascades
// with its society.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	SocietyID *uint          `gorm:"index" json:"society_id"`
	Action    string         `gorm:"size:50;not null" json:"action"` // LOGIN, REGISTER, APPROVE, REJECT
	Entity    string         `gorm:"size:50;not null" json:"entity"` // Society, User
	EntityID  uint           `json:"entity_id"`
	OldValues datatypes.JSON `gorm:"type:jsonb" json:"old_values"`
	NewValues datatypes.JSON `gorm:"type:jsonb" json:"new_values"`
	IPAddress string         `gorm:"size:45" json:"ip_address"`
	UserAgent string         `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`

	// Associations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Society *Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionLogin    = "LOGIN"
	AuditActionRegister = "REGISTER"
	AuditActionApprove  = "APPROVE"
	AuditActionReject   = "REJECT"
)
