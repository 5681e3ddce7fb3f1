package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// IdentificationRepository provides DB access for vehicle identification
// records, the registry sign-ups are validated against.
type IdentificationRepository struct {
	db *gorm.DB
}

func NewIdentificationRepository(db *gorm.DB) *IdentificationRepository {
	return &IdentificationRepository{db: db}
}

func (r *IdentificationRepository) GetByChassisAndPlate(ctx context.Context, chassis, plate string) (*domain.Identification, error) {
	var ident domain.Identification
	err := r.db.WithContext(ctx).
		Where("chassis_number = ? AND plate_number = ? AND is_deleted = ?",
			strings.TrimSpace(chassis), strings.TrimSpace(plate), false).
		First(&ident).Error
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentificationRepository) GetByID(ctx context.Context, id int64) (*domain.Identification, error) {
	var ident domain.Identification
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&ident).Error
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *IdentificationRepository) List(ctx context.Context, offset, limit int) ([]domain.Identification, error) {
	var idents []domain.Identification
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&idents).Error
	return idents, err
}

func (r *IdentificationRepository) Create(ctx context.Context, ident *domain.Identification) error {
	exists, err := r.exists(ctx, ident.ChassisNumber, ident.PlateNumber)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateIdentification
	}
	return r.db.WithContext(ctx).Create(ident).Error
}

func (r *IdentificationRepository) Update(ctx context.Context, ident *domain.Identification) error {
	var clash domain.Identification
	err := r.db.WithContext(ctx).
		Where("chassis_number = ? AND plate_number = ? AND id <> ? AND is_deleted = ?",
			ident.ChassisNumber, ident.PlateNumber, ident.ID, false).
		First(&clash).Error
	if err == nil {
		return domain.ErrDuplicateIdentification
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Save(ident).Error
}

func (r *IdentificationRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.Identification{}).
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

// BulkCreate inserts the given records, silently skipping any whose
// chassis+plate pair is already present. Returns the number inserted.
func (r *IdentificationRepository) BulkCreate(ctx context.Context, idents []domain.Identification) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range idents {
			var clash domain.Identification
			err := tx.Where("chassis_number = ? AND plate_number = ? AND is_deleted = ?",
				idents[i].ChassisNumber, idents[i].PlateNumber, false).
				First(&clash).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&idents[i]).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *IdentificationRepository) exists(ctx context.Context, chassis, plate string) (bool, error) {
	var ident domain.Identification
	err := r.db.WithContext(ctx).
		Where("chassis_number = ? AND plate_number = ? AND is_deleted = ?", chassis, plate, false).
		First(&ident).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
