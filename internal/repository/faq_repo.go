package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// FAQRepository provides DB access for FAQ entries.
type FAQRepository struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

func (r *FAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FAQRepository) GetByID(ctx context.Context, id int64) (*domain.FAQ, error) {
	var faq domain.FAQ
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&faq).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *FAQRepository) List(ctx context.Context, offset, limit int) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

func (r *FAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FAQRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.FAQ{}).
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
