package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/models"
)

// SocietyRepository defines the interface for society data access
type SocietyRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Society, error)
	FindByRegistrationNumber(ctx context.Context, regNumber string) (*models.Society, error)
	CreateWithAdmin(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error
	UpdateDecision(ctx context.Context, society *models.Society) error
	ListByStatus(ctx context.Context, status string, query *ListQuery) ([]models.Society, int64, error)
	CountDocuments(ctx context.Context, societyID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type societyRepository struct {
	db *gorm.DB
}

// NewSocietyRepository creates a new society repository
func NewSocietyRepository(db *gorm.DB) SocietyRepository {
	return &societyRepository{db: db}
}

func (r *societyRepository) FindByID(ctx context.Context, id uint) (*models.Society, error) {
	var society models.Society
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Users").
		First(&society, id).Error
	if err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *societyRepository) FindByRegistrationNumber(ctx context.Context, regNumber string) (*models.Society, error) {
	var society models.Society
	err := r.db.WithContext(ctx).
		Where("registration_number = ?", regNumber).
		First(&society).Error
	if err != nil {
		return nil, err
	}
	return &society, nil
}

// CreateWithAdmin persists a society, its admin user and its document rows
// as one transaction. A failure at any step leaves no rows behind; the second
// of two concurrent registrations with the same registration number or email
// fails on the unique index and surfaces as ErrDuplicateKey.
func (r *societyRepository) CreateWithAdmin(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(society).Error; err != nil {
			return err
		}

		admin.SocietyID = &society.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		for i := range docs {
			docs[i].SocietyID = society.ID
			if err := tx.Create(&docs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// UpdateDecision writes only the decision columns; everything else on a
// society is frozen once submitted.
func (r *societyRepository) UpdateDecision(ctx context.Context, society *models.Society) error {
	return r.db.WithContext(ctx).
		Model(&models.Society{}).
		Where("id = ?", society.ID).
		Select("Status", "DecisionReason", "DecidedAt", "DecidedByID").
		Updates(society).Error
}

func (r *societyRepository) ListByStatus(ctx context.Context, status string, query *ListQuery) ([]models.Society, int64, error) {
	var societies []models.Society
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Society{}).Where("status = ?", status)

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR registration_number ILIKE ?", search, search)
	}

	// Apply type filter
	if query.Filters["society_type"] != "" {
		db = db.Where("society_type = ?", query.Filters["society_type"])
	}

	// Count total
	db.Count(&total)

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.
		Preload("Users", "role = ?", models.RoleSocietyAdmin).
		Preload("Documents").
		Order("created_at ASC").
		Find(&societies).Error
	return societies, total, err
}

func (r *societyRepository) CountDocuments(ctx context.Context, societyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SocietyDocument{}).
		Where("society_id = ?", societyID).
		Count(&count).Error
	return count, err
}

func (r *societyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Society{}, id).Error
}
