package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/pkg/logger"
)

// AuditRecorder is the sink for security-relevant actions. Implementations
// must never let a failed write reach the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditService appends immutable audit entries. Writing an entry must never
// abort the business operation that triggered it, so Record swallows
// failures after logging them.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// RequestMeta carries the provenance of the request that triggered an action
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuditEntry describes one security-relevant action
type AuditEntry struct {
	UserID    *uint
	SocietyID *uint
	Action    string
	Entity    string
	EntityID  uint
	OldValues any
	NewValues any
	Meta      RequestMeta
}

// Record appends one audit row, best effort
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	row := &models.AuditLog{
		UserID:    entry.UserID,
		SocietyID: entry.SocietyID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		OldValues: toJSON(entry.OldValues),
		NewValues: toJSON(entry.NewValues),
		IPAddress: entry.Meta.IP,
		UserAgent: entry.Meta.UserAgent,
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Warn("audit write failed",
			"action", entry.Action,
			"entity", entry.Entity,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

func toJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
