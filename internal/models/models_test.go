package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(&User{}, &Theme{}, &Character{}, &Location{}, &Reaction{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// TestVersionCounter tests that the version counter starts at 1 and is bumped
// on every update
func TestVersionCounter(t *testing.T) {
	db := setupTestDB(t)

	theme := Theme{Slug: "working", Title: "Working"}
	if err := db.Create(&theme).Error; err != nil {
		t.Fatalf("Failed to create theme: %v", err)
	}
	if theme.Version != 1 {
		t.Errorf("Expected version 1 after create, got %d", theme.Version)
	}

	theme.Title = "Working together"
	if err := db.Save(&theme).Error; err != nil {
		t.Fatalf("Failed to update theme: %v", err)
	}

	var reloaded Theme
	if err := db.First(&reloaded, theme.ID).Error; err != nil {
		t.Fatalf("Failed to reload theme: %v", err)
	}
	if reloaded.Version != 2 {
		t.Errorf("Expected version 2 after update, got %d", reloaded.Version)
	}
}

// TestThemeProjection tests the public rendering of a theme
func TestThemeProjection(t *testing.T) {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	theme := Theme{
		Record:      Record{ID: 7, Version: 2, CreatedAt: created, UpdatedAt: created},
		Slug:        "working",
		Title:       "Working",
		Description: "Work is shared by ability.",
	}

	p := theme.Projection()
	if p["__name__"] != "theme" {
		t.Errorf("Expected __name__ theme, got %v", p["__name__"])
	}
	if p["slug"] != "working" {
		t.Errorf("Expected slug working, got %v", p["slug"])
	}
	if p["c"] != "2026-08-28T10:30:00Z" {
		t.Errorf("Expected ISO-8601 created timestamp, got %v", p["c"])
	}
}

// TestUserProjection tests that credentials never leak into the public
// rendering
func TestUserProjection(t *testing.T) {
	user := User{
		Username:         "thruflo",
		Email:            "thruflo@example.com",
		Password:         "pbkdf2_sha512$90000$salt$key",
		ConfirmationHash: "0123456789abcdef0123456789abcdef",
		Name:             "James",
		Bio:              "Hello",
	}

	p := user.Projection()
	if p["__name__"] != "user" {
		t.Errorf("Expected __name__ user, got %v", p["__name__"])
	}
	if p["username"] != "thruflo" {
		t.Errorf("Expected username thruflo, got %v", p["username"])
	}

	for _, hidden := range []string{"email", "password", "confirmation_hash", "is_admin", "is_confirmed", "id"} {
		if _, ok := p[hidden]; ok {
			t.Errorf("Expected %s to be private, got %v", hidden, p[hidden])
		}
	}
}

// TestReactionProjection tests the nil-aware parent_id rendering
func TestReactionProjection(t *testing.T) {
	root := Reaction{Message: "so true", ThemeID: 1, UserID: 1}
	p := root.Projection()
	if p["parent_id"] != nil {
		t.Errorf("Expected nil parent_id for a root reaction, got %v", p["parent_id"])
	}

	parentID := uint64(42)
	reply := Reaction{Message: "agreed", ThemeID: 1, UserID: 1, ParentID: &parentID}
	p = reply.Projection()
	if p["parent_id"] != uint64(42) {
		t.Errorf("Expected parent_id 42, got %v", p["parent_id"])
	}
}

// TestReactionThread tests the self-referencing reply association
func TestReactionThread(t *testing.T) {
	db := setupTestDB(t)

	user := User{Username: "thruflo", Email: "thruflo@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	theme := Theme{Slug: "working"}
	if err := db.Create(&theme).Error; err != nil {
		t.Fatalf("Failed to create theme: %v", err)
	}

	root := Reaction{Message: "so true", ThemeID: theme.ID, UserID: user.ID}
	if err := db.Create(&root).Error; err != nil {
		t.Fatalf("Failed to create reaction: %v", err)
	}
	reply := Reaction{Message: "agreed", ThemeID: theme.ID, UserID: user.ID, ParentID: &root.ID}
	if err := db.Create(&reply).Error; err != nil {
		t.Fatalf("Failed to create reply: %v", err)
	}

	var reloaded Reaction
	if err := db.Preload("Children").First(&reloaded, root.ID).Error; err != nil {
		t.Fatalf("Failed to reload reaction: %v", err)
	}
	if len(reloaded.Children) != 1 {
		t.Fatalf("Expected 1 reply, got %d", len(reloaded.Children))
	}
	if reloaded.Children[0].Message != "agreed" {
		t.Errorf("Expected reply message, got %q", reloaded.Children[0].Message)
	}
}

// TestGetBySlug tests the generic slug lookup
func TestGetBySlug(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&Theme{Slug: "working", Title: "Working"}).Error; err != nil {
		t.Fatalf("Failed to create theme: %v", err)
	}

	theme, err := GetBySlug[Theme](db, "working")
	if err != nil {
		t.Fatalf("Failed to get theme by slug: %v", err)
	}
	if theme.Title != "Working" {
		t.Errorf("Expected title Working, got %q", theme.Title)
	}

	if _, err := GetBySlug[Theme](db, "missing"); err == nil {
		t.Error("Expected an error for a missing slug")
	}
}
