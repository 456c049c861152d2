package services_test

import (
	"errors"
	"testing"

	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Theme{},
		&models.Character{},
		&models.Location{},
		&models.Reaction{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func searchConfig() *config.Config {
	return &config.Config{SearchCatalogs: []string{"english"}}
}

// seedSearchData creates rows across several searchable entities
func seedSearchData(t *testing.T, db *gorm.DB) {
	t.Helper()

	rows := []interface{}{
		&models.Theme{Slug: "working", Title: "Working", Description: "Weaving and farming"},
		&models.Theme{Slug: "learning", Title: "Learning", Description: "The village school"},
		&models.Character{Slug: "enaney", Name: "Enaney", Bio: "Weaver and teacher"},
		&models.Location{Slug: "weaving-hall", Title: "The weaving hall", Description: "Rows of handlooms"},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("Failed to seed search data: %v", err)
		}
	}
}

// TestSearch tests keyword matching across every searchable entity. On
// SQLite the search degrades to LIKE matching over the source columns.
func TestSearch(t *testing.T) {
	db := setupTestDB(t)
	seedSearchData(t, db)

	results, err := services.Search(db, searchConfig(), "weaving", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results["themes"]) != 1 {
		t.Errorf("Expected 1 theme hit, got %d", len(results["themes"]))
	}
	if len(results["locations"]) != 1 {
		t.Errorf("Expected 1 location hit, got %d", len(results["locations"]))
	}
	if len(results["characters"]) != 0 {
		t.Errorf("Expected no character hits, got %d", len(results["characters"]))
	}

	if hit := results["themes"][0]; hit["slug"] != "working" {
		t.Errorf("Expected the working theme, got %v", hit["slug"])
	}
}

// TestSearchRestrictedType tests restricting the search to one entity type
func TestSearchRestrictedType(t *testing.T) {
	db := setupTestDB(t)
	seedSearchData(t, db)

	results, err := services.Search(db, searchConfig(), "weaving", "locations")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Errorf("Expected results for one entity type, got %d", len(results))
	}
	if len(results["locations"]) != 1 {
		t.Errorf("Expected 1 location hit, got %d", len(results["locations"]))
	}
}

// TestSearchUnknownType tests that an unknown entity type is not found
func TestSearchUnknownType(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.Search(db, searchConfig(), "weaving", "nonsense")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestSearchNoHits tests that empty result sets come back per entity
func TestSearchNoHits(t *testing.T) {
	db := setupTestDB(t)
	seedSearchData(t, db)

	results, err := services.Search(db, searchConfig(), "zzzzzz", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for entity, hits := range results {
		if len(hits) != 0 {
			t.Errorf("Expected no %s hits, got %d", entity, len(hits))
		}
	}
}
