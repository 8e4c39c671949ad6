package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/statemachine"
)

// SocietyService handles society lookup and the approval flow
type SocietyService struct {
	societyRepo repository.SocietyRepository
	auditSvc    AuditRecorder
}

// NewSocietyService creates a new society service
func NewSocietyService(societyRepo repository.SocietyRepository, auditSvc AuditRecorder) *SocietyService {
	return &SocietyService{
		societyRepo: societyRepo,
		auditSvc:    auditSvc,
	}
}

// PendingSocietySummary is one row of the review queue
type PendingSocietySummary struct {
	ID                 uint      `json:"id"`
	ReferenceCode      string    `json:"reference_code"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	SocietyType        string    `json:"society_type"`
	AdminName          string    `json:"admin_name"`
	AdminEmail         string    `json:"admin_email"`
	AdminPhone         string    `json:"admin_phone"`
	DocumentCount      int       `json:"document_count"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// FindByID returns a society with its documents
func (s *SocietyService) FindByID(ctx context.Context, id uint) (*models.Society, error) {
	society, err := s.societyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return society, nil
}

// ListPending returns the review queue: pending societies with their admin
// contact and document count.
func (s *SocietyService) ListPending(ctx context.Context, query *repository.ListQuery) ([]PendingSocietySummary, int64, error) {
	societies, total, err := s.societyRepo.ListByStatus(ctx, models.SocietyStatusPending, query)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]PendingSocietySummary, 0, len(societies))
	for _, society := range societies {
		summary := PendingSocietySummary{
			ID:                 society.ID,
			ReferenceCode:      society.ReferenceCode,
			Name:               society.Name,
			RegistrationNumber: society.RegistrationNumber,
			SocietyType:        society.SocietyType,
			DocumentCount:      len(society.Documents),
			SubmittedAt:        society.CreatedAt,
		}
		if len(society.Users) > 0 {
			admin := society.Users[0]
			summary.AdminName = admin.FullName
			summary.AdminEmail = admin.Email
			summary.AdminPhone = admin.Phone
		}
		summaries = append(summaries, summary)
	}
	return summaries, total, nil
}

// Decide applies an approval decision to a pending society. Transitions are
// enforced by the state machine: only pending societies can be decided, and
// a decision is terminal.
func (s *SocietyService) Decide(ctx context.Context, societyID uint, decision, reason string, actorID uint, meta RequestMeta) (*models.Society, error) {
	society, err := s.societyRepo.FindByID(ctx, societyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldStatus := society.Status

	machine := statemachine.NewSocietyFSM(society)
	switch decision {
	case models.SocietyStatusApproved:
		err = machine.Approve(ctx)
	case models.SocietyStatusRejected:
		err = machine.Reject(ctx)
	default:
		return nil, fmt.Errorf("%w: decisión desconocida: %s", ErrValidation, decision)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s ya fue decidida", ErrInvalidTransition, society.Name)
	}

	now := time.Now()
	society.DecidedAt = &now
	society.DecidedByID = &actorID
	if reason != "" {
		society.DecisionReason = &reason
	}

	if err := s.societyRepo.UpdateDecision(ctx, society); err != nil {
		return nil, err
	}

	action := models.AuditActionApprove
	if decision == models.SocietyStatusRejected {
		action = models.AuditActionReject
	}
	s.auditSvc.Record(ctx, AuditEntry{
		UserID:    &actorID,
		SocietyID: &society.ID,
		Action:    action,
		Entity:    "Society",
		EntityID:  society.ID,
		OldValues: map[string]any{"status": oldStatus},
		NewValues: map[string]any{"status": society.Status, "reason": reason},
		Meta:      meta,
	})

	return society, nil
}
