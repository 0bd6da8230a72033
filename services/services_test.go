package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobboard-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// :memory: is per-connection; keep the pool at one so every query sees
	// the same database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Contact{},
		&models.Report{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createListing(t *testing.T, svc *ListingService, approved, closed bool) *models.Listing {
	t.Helper()

	listing := models.Listing{
		Title:       "Engineer",
		Description: "Build things",
		Company:     "Acme",
		Location:    "Remote",
		JobType:     "full-time",
		PosterName:  "Poster",
		PosterEmail: "poster@example.com",
	}
	if err := svc.Create(&listing); err != nil {
		t.Fatalf("create listing: %v", err)
	}

	if approved || closed {
		err := svc.DB.Model(&listing).Updates(map[string]any{
			"is_approved": approved,
			"is_closed":   closed,
		}).Error
		if err != nil {
			t.Fatalf("set listing state: %v", err)
		}
		listing.IsApproved = approved
		listing.IsClosed = closed
	}
	return &listing
}
