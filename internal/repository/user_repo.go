package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// UserRepository provides DB access for users. Reads target live rows
// only; deletion flips is_deleted instead of removing the row.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(email)), false).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByExternalReference(ctx context.Context, ref string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("external_reference = ? AND is_deleted = ?", ref, false).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).
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

// SaveResetCode stores (or clears, when code is nil) the password reset
// code for the given email.
func (r *UserRepository) SaveResetCode(ctx context.Context, email string, code *string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(email)), false).
		Update("code", code).Error
}

// SetPassword replaces the bcrypt hash and clears any pending reset code.
func (r *UserRepository) SetPassword(ctx context.Context, email string, hash []byte) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = ? AND is_deleted = ?", strings.ToLower(strings.TrimSpace(email)), false).
		Updates(map[string]any{"password": hash, "code": nil}).Error
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
