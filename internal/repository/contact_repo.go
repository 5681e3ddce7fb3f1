package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// ContactRepository provides DB access for emergency contacts.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.EmergencyContact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.EmergencyContact, error) {
	var contact domain.EmergencyContact
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]domain.EmergencyContact, error) {
	var contacts []domain.EmergencyContact
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Update(ctx context.Context, c *domain.EmergencyContact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContactRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.EmergencyContact{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
