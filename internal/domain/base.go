package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the columns shared by every table: a numeric primary key, an
// opaque external reference safe to hand to clients, and soft-delete
// bookkeeping. Rows are never hard-deleted.
type Base struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	ExternalReference string     `gorm:"size:32;index" json:"external_reference"`
	IsDeleted         bool       `gorm:"default:false" json:"-"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastUpdated       time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
	DeletedAt         *time.Time `json:"-"`
}

// BeforeCreate assigns the external reference: a uuid4 with dashes stripped,
// stable for the lifetime of the row.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ExternalReference == "" {
		b.ExternalReference = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return nil
}
