package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Pure-Go sqlite driver registered for the gorm sqlite dialect.
	_ "modernc.org/sqlite"

	"github.com/baedyl/Loxea-api/internal/domain"
)

// Connect opens a gorm handle on the given DSN. Postgres DSNs are detected
// by scheme prefix; anything else is treated as a sqlite file path (or
// ":memory:" for tests).
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if isPostgres {
		dialector = postgres.Open(dsn)
	} else {
		dialector = gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !isPostgres {
		// sqlite serializes writes; a single connection avoids
		// "database is locked" under concurrent handlers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("access sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.TokenRecord{},
		&domain.Identification{},
		&domain.Assistance{},
		&domain.AssistanceImage{},
		&domain.Feedback{},
		&domain.FeedbackCategory{},
		&domain.EmergencyContact{},
		&domain.FAQ{},
	)
}
