package models

import (
	"time"

	"gorm.io/datatypes"
)

// The tables below are part of the platform schema but have no flows yet:
// approved societies will manage their services, members and member
// transactions in a later release. They are migrated from day one so the
// cascade rules are in place before data arrives.

// Service represents a service offered by a society to its members.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SocietyID   uint      `gorm:"not null;index" json:"society_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Society *Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}

// Member represents a person enrolled in a society.
type Member struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SocietyID  uint      `gorm:"not null;index" json:"society_id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	MemberCode string    `gorm:"size:30" json:"member_code"`
	JoinedOn   time.Time `json:"joined_on"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Society *Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}

// Transaction represents a monetary movement on a member account.
type Transaction struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SocietyID uint           `gorm:"not null;index" json:"society_id"`
	MemberID  uint           `gorm:"not null;index" json:"member_id"`
	Amount    float64        `gorm:"type:decimal(12,2)" json:"amount"`
	Kind      string         `gorm:"size:20" json:"kind"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`

	Society *Society `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"-"`
	Member  *Member  `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
