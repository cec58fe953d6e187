package repo

import (
	"testing"

	"debugmate-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatMessage{}, &models.UserFact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestStoreFactUpsert(t *testing.T) {
	db := testDB(t)
	facts := NewFactRepository(db)

	if err := facts.StoreFact("me@we3vision.com", "name", "Alice", 1.0); err != nil {
		t.Fatalf("StoreFact: %v", err)
	}
	if err := facts.StoreFact("me@we3vision.com", "name", "Alicia", 0.9); err != nil {
		t.Fatalf("StoreFact update: %v", err)
	}

	var count int64
	db.Model(&models.UserFact{}).
		Where("user_id = ? AND fact_key = ?", "me@we3vision.com", "name").
		Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}

	got, err := facts.GetFacts("me@we3vision.com")
	if err != nil {
		t.Fatalf("GetFacts: %v", err)
	}
	if got["name"] != "Alicia" {
		t.Fatalf("name = %q, want the second value", got["name"])
	}
}

func TestStoreFactRoundTrip(t *testing.T) {
	facts := NewFactRepository(testDB(t))

	value := "senior backend developer, go & postgres"
	if err := facts.StoreFact("me@we3vision.com", "role", value, 1.0); err != nil {
		t.Fatalf("StoreFact: %v", err)
	}

	got, err := facts.GetFacts("me@we3vision.com")
	if err != nil {
		t.Fatalf("GetFacts: %v", err)
	}
	if got["role"] != value {
		t.Fatalf("role = %q, want %q", got["role"], value)
	}
}

func TestGetFactsIsolatedPerUser(t *testing.T) {
	facts := NewFactRepository(testDB(t))

	facts.StoreFact("a@we3vision.com", "name", "A", 1.0)
	got, err := facts.GetFacts("b@we3vision.com")
	if err != nil {
		t.Fatalf("GetFacts: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("facts = %v, want none", got)
	}
}
