package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// AssistanceRepository provides DB access for assistance requests and
// their attached incident images.
type AssistanceRepository struct {
	db *gorm.DB
}

func NewAssistanceRepository(db *gorm.DB) *AssistanceRepository {
	return &AssistanceRepository{db: db}
}

func (r *AssistanceRepository) Create(ctx context.Context, a *domain.Assistance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssistanceRepository) GetByID(ctx context.Context, id int64) (*domain.Assistance, error) {
	var a domain.Assistance
	err := r.db.WithContext(ctx).
		Preload("Images").Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns assistance requests newest first, optionally filtered by
// incident type.
func (r *AssistanceRepository) List(ctx context.Context, incidentType domain.IncidentType, offset, limit int) ([]domain.Assistance, error) {
	q := r.db.WithContext(ctx).
		Preload("Images").Preload("User").
		Where("is_deleted = ?", false)
	if incidentType != "" {
		q = q.Where("incident_type = ?", incidentType)
	}

	var requests []domain.Assistance
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&requests).Error
	return requests, err
}

func (r *AssistanceRepository) UpdateStatus(ctx context.Context, id int64, status domain.AssistanceStatus) error {
	tx := r.db.WithContext(ctx).Model(&domain.Assistance{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssistanceRepository) AddImage(ctx context.Context, img *domain.AssistanceImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}
