package models

import (
	"time"
)

// Society represents a cooperative society registered on the platform
type Society struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ReferenceCode      string     `gorm:"size:36;uniqueIndex;not null" json:"reference_code"`
	Name               string     `gorm:"not null" json:"name"`
	RegistrationNumber string     `gorm:"uniqueIndex;not null" json:"registration_number"`
	SocietyType        string     `gorm:"size:20;not null" json:"society_type"`
	EstablishedOn      time.Time  `json:"established_on"`
	Address            string     `json:"address"`
	Status             string     `gorm:"size:20;default:pending;index" json:"status"`
	DecisionReason     *string    `json:"decision_reason"`
	DecidedAt          *time.Time `json:"decided_at"`
	DecidedByID        *uint      `json:"decided_by_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Associations
	Users     []User            `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	Documents []SocietyDocument `gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	DecidedBy *User             `gorm:"foreignKey:DecidedByID" json:"decided_by,omitempty"`
}

// TableName specifies the table name for Society
func (Society) TableName() string {
	return "societies"
}

// Society status constants
const (
	SocietyStatusPending  = "pending"
	SocietyStatusApproved = "approved"
	SocietyStatusRejected = "rejected"
)

// Society type constants
const (
	SocietyTypeCredit   = "credit"
	SocietyTypeConsumer = "consumer"
	SocietyTypeProducer = "producer"
	SocietyTypeHousing  = "housing"
	SocietyTypeWorker   = "worker"
	SocietyTypeOther    = "other"
)

// ValidSocietyType reports whether t is one of the known society types.
func ValidSocietyType(t string) bool {
	switch t {
	case SocietyTypeCredit, SocietyTypeConsumer, SocietyTypeProducer,
		SocietyTypeHousing, SocietyTypeWorker, SocietyTypeOther:
		return true
	}
	return false
}

// IsPending returns true if the society has not been decided yet
func (s *Society) IsPending() bool {
	return s.Status == SocietyStatusPending
}

// IsApproved returns true if the society was approved
func (s *Society) IsApproved() bool {
	return s.Status == SocietyStatusApproved
}

// IsDecided returns true if the society reached a terminal status
func (s *Society) IsDecided() bool {
	return s.Status == SocietyStatusApproved || s.Status == SocietyStatusRejected
}

// SocietyResponse is the JSON response format for societies
type SocietyResponse struct {
	ID                 uint                      `json:"id"`
	ReferenceCode      string                    `json:"reference_code"`
	Name               string                    `json:"name"`
	RegistrationNumber string                    `json:"registration_number"`
	SocietyType        string                    `json:"society_type"`
	EstablishedOn      time.Time                 `json:"established_on"`
	Address            string                    `json:"address"`
	Status             string                    `json:"status"`
	DecisionReason     *string                   `json:"decision_reason,omitempty"`
	DecidedAt          *time.Time                `json:"decided_at,omitempty"`
	Documents          []SocietyDocumentResponse `json:"documents,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// ToResponse converts Society to SocietyResponse
func (s *Society) ToResponse() SocietyResponse {
	resp := SocietyResponse{
		ID:                 s.ID,
		ReferenceCode:      s.ReferenceCode,
		Name:               s.Name,
		RegistrationNumber: s.RegistrationNumber,
		SocietyType:        s.SocietyType,
		EstablishedOn:      s.EstablishedOn,
		Address:            s.Address,
		Status:             s.Status,
		DecisionReason:     s.DecisionReason,
		DecidedAt:          s.DecidedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	for _, doc := range s.Documents {
		resp.Documents = append(resp.Documents, doc.ToResponse())
	}
	return resp
}
