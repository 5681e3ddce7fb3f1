package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// FeedbackRepository provides DB access for user feedback entries and
// their categories.
type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	var f domain.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) List(ctx context.Context, offset, limit int) ([]domain.Feedback, error) {
	var entries []domain.Feedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_deleted = ?", false).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *FeedbackRepository) ListCategories(ctx context.Context) ([]domain.FeedbackCategory, error) {
	var categories []domain.FeedbackCategory
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Find(&categories).Error
	return categories, err
}

func (r *FeedbackRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.FeedbackCategory, error) {
	var category domain.FeedbackCategory
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
