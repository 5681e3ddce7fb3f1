package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// TokenRepository persists the single active token slot per subject.
// Writing a new pair for a subject replaces whatever was there, which is
// what invalidates older sessions.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) GetBySubject(ctx context.Context, subject string) (*domain.TokenRecord, error) {
	var rec domain.TokenRecord
	err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SavePair upserts the slot for subject with digests of a freshly issued
// access/refresh pair.
func (r *TokenRepository) SavePair(ctx context.Context, subject, accessToken, refreshToken string) error {
	rec := domain.TokenRecord{
		Subject:          subject,
		AccessTokenHash:  domain.TokenDigest(accessToken),
		RefreshTokenHash: domain.TokenDigest(refreshToken),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token_hash", "refresh_token_hash", "last_updated"}),
	}).Create(&rec).Error
}

// SaveAccessToken rotates only the access slot, keeping the refresh slot.
// Used by the refresh flow, which never reissues the refresh token.
func (r *TokenRepository) SaveAccessToken(ctx context.Context, subject, accessToken string) error {
	tx := r.db.WithContext(ctx).Model(&domain.TokenRecord{}).
		Where("subject = ?", subject).
		Update("access_token_hash", domain.TokenDigest(accessToken))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
