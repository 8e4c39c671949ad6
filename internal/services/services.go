package services

import (
	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/config"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	Registration *RegistrationService
	Society      *SocietyService
	Audit        *AuditService
	Export       *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, store *storage.LocalStorage, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)

	return &Services{
		Auth:         NewAuthService(repos.User, auditSvc, cfg),
		Registration: NewRegistrationService(repos.Society, repos.User, auditSvc, store, cfg),
		Society:      NewSocietyService(repos.Society, auditSvc),
		Audit:        auditSvc,
		Export:       NewExportService(),
	}
}
