package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/config"
	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/storage"
	"github.com/coopregistry/coopregistry-api/pkg/logger"
)

// RegistrationService handles the society registration flow: one atomic unit
// of society + admin user + document rows.
type RegistrationService struct {
	societyRepo repository.SocietyRepository
	userRepo    repository.UserRepository
	auditSvc    AuditRecorder
	store       *storage.LocalStorage
	cfg         *config.Config
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(societyRepo repository.SocietyRepository, userRepo repository.UserRepository, auditSvc AuditRecorder, store *storage.LocalStorage, cfg *config.Config) *RegistrationService {
	return &RegistrationService{
		societyRepo: societyRepo,
		userRepo:    userRepo,
		auditSvc:    auditSvc,
		store:       store,
		cfg:         cfg,
	}
}

// RegistrationInput holds the textual fields of a registration request
type RegistrationInput struct {
	Name               string
	RegistrationNumber string
	SocietyType        string
	EstablishedOn      string // YYYY-MM-DD
	Address            string
	AdminFullName      string
	AdminEmail         string
	AdminPhone         string
	AdminPassword      string
}

// DocumentUpload pairs an uploaded file with its document kind
type DocumentUpload struct {
	Kind   string
	Header *multipart.FileHeader
}

// RegistrationResult is returned on successful registration
type RegistrationResult struct {
	SocietyID     uint                             `json:"society_id"`
	ReferenceCode string                           `json:"reference_code"`
	Status        string                           `json:"status"`
	Documents     []models.SocietyDocumentResponse `json:"documents"`
}

// Register validates the application, stores the uploaded documents and
// persists society, admin user and document rows in one transaction. No row
// and no stored file survives a failure partway.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput, uploads []DocumentUpload, meta RequestMeta) (*RegistrationResult, error) {
	establishedOn, err := s.Validate(input, uploads)
	if err != nil {
		return nil, err
	}

	if err := s.checkDuplicates(ctx, input); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.AdminPassword)
	if err != nil {
		return nil, err
	}

	// Store files before opening the transaction; a failed insert must also
	// remove whatever reached the disk.
	docs, storedPaths, err := s.storeUploads(uploads)
	if err != nil {
		s.removeFiles(storedPaths)
		return nil, err
	}

	society := &models.Society{
		ReferenceCode:      uuid.NewString(),
		Name:               strings.TrimSpace(input.Name),
		RegistrationNumber: strings.TrimSpace(input.RegistrationNumber),
		SocietyType:        input.SocietyType,
		EstablishedOn:      establishedOn,
		Address:            strings.TrimSpace(input.Address),
		Status:             models.SocietyStatusPending,
	}

	admin := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(input.AdminEmail)),
		EncryptedPassword: hashed,
		FullName:          strings.TrimSpace(input.AdminFullName),
		Phone:             strings.TrimSpace(input.AdminPhone),
		Role:              models.RoleSocietyAdmin,
		Status:            models.StatusActive,
	}

	if err := s.societyRepo.CreateWithAdmin(ctx, society, admin, docs); err != nil {
		s.removeFiles(storedPaths)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, AuditEntry{
		UserID:    &admin.ID,
		SocietyID: &society.ID,
		Action:    models.AuditActionRegister,
		Entity:    "Society",
		EntityID:  society.ID,
		NewValues: map[string]any{
			"name":                society.Name,
			"registration_number": society.RegistrationNumber,
			"society_type":        society.SocietyType,
			"status":              society.Status,
			"documents":           len(docs),
		},
		Meta: meta,
	})

	result := &RegistrationResult{
		SocietyID:     society.ID,
		ReferenceCode: society.ReferenceCode,
		Status:        society.Status,
	}
	for _, doc := range docs {
		result.Documents = append(result.Documents, doc.ToResponse())
	}
	return result, nil
}

// Validate checks the textual fields and the uploaded file set without
// touching storage or the database. It returns the parsed establishment date.
func (s *RegistrationService) Validate(input RegistrationInput, uploads []DocumentUpload) (time.Time, error) {
	required := map[string]string{
		"name":               input.Name,
		"registrationNumber": input.RegistrationNumber,
		"societyType":        input.SocietyType,
		"establishedOn":      input.EstablishedOn,
		"address":            input.Address,
		"adminFullName":      input.AdminFullName,
		"adminEmail":         input.AdminEmail,
		"adminPhone":         input.AdminPhone,
		"adminPassword":      input.AdminPassword,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return time.Time{}, fmt.Errorf("%w: falta el campo %s", ErrValidation, field)
		}
	}

	if !models.ValidSocietyType(input.SocietyType) {
		return time.Time{}, fmt.Errorf("%w: tipo de sociedad desconocido: %s", ErrValidation, input.SocietyType)
	}

	establishedOn, err := time.Parse("2006-01-02", input.EstablishedOn)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha de constitución inválida", ErrValidation)
	}

	counts := map[string]int{}
	for _, up := range uploads {
		counts[up.Kind]++

		contentType := up.Header.Header.Get("Content-Type")
		if !storage.IsValidContentType(up.Kind, contentType) {
			return time.Time{}, fmt.Errorf("%w: tipo de archivo no permitido para %s: %s", ErrValidation, up.Kind, contentType)
		}
		if up.Header.Size > s.cfg.MaxUploadSizeBytes() {
			return time.Time{}, fmt.Errorf("%w: el archivo %s excede el límite de %d MB", ErrValidation, up.Header.Filename, s.cfg.MaxUploadSizeMB)
		}
	}

	if counts[models.DocumentKindRegistrationCertificate] != 1 {
		return time.Time{}, fmt.Errorf("%w: se requiere exactamente un certificado de registro", ErrValidation)
	}
	if counts[models.DocumentKindBylaws] != 1 {
		return time.Time{}, fmt.Errorf("%w: se requiere exactamente un documento de estatutos", ErrValidation)
	}
	if counts[models.DocumentKindAdditional] > s.cfg.MaxAdditionalDocs {
		return time.Time{}, fmt.Errorf("%w: máximo %d documentos adicionales", ErrValidation, s.cfg.MaxAdditionalDocs)
	}

	return establishedOn, nil
}

// checkDuplicates rejects early when the registration number or admin email
// already exist. Races slipping past this check still fail on the unique
// indexes inside the transaction.
func (s *RegistrationService) checkDuplicates(ctx context.Context, input RegistrationInput) error {
	if _, err := s.societyRepo.FindByRegistrationNumber(ctx, strings.TrimSpace(input.RegistrationNumber)); err == nil {
		return fmt.Errorf("%w: ya existe una sociedad con este número de registro", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.AdminEmail); err == nil {
		return fmt.Errorf("%w: ya existe un usuario con este correo electrónico", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func (s *RegistrationService) storeUploads(uploads []DocumentUpload) ([]models.SocietyDocument, []string, error) {
	var docs []models.SocietyDocument
	var paths []string

	for _, up := range uploads {
		file, err := up.Header.Open()
		if err != nil {
			return nil, paths, fmt.Errorf("failed to open upload %s: %w", up.Header.Filename, err)
		}

		path, err := s.store.Upload(file, up.Header, "documents")
		file.Close()
		if err != nil {
			return nil, paths, err
		}
		paths = append(paths, path)

		docs = append(docs, models.SocietyDocument{
			Kind:        up.Kind,
			FileName:    up.Header.Filename,
			FilePath:    path,
			FileSize:    up.Header.Size,
			ContentType: up.Header.Header.Get("Content-Type"),
		})
	}
	return docs, paths, nil
}

func (s *RegistrationService) removeFiles(paths []string) {
	for _, path := range paths {
		if err := s.store.Delete(path); err != nil {
			logger.Warn("failed to remove stored document", "path", path, "error", err)
		}
	}
}
