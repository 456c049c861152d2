package models

import (
	"time"

	"gorm.io/gorm"
)

// Record carries the columns shared by every entity: numeric primary key,
// version counter and created/modified timestamps. The version starts at 1
// and is bumped on every update.
type Record struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Version   uint64    `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeCreate ensures the version counter starts at 1.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// BeforeUpdate bumps the version counter.
func (r *Record) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("version", r.Version+1)
	return nil
}

// Projection is the public JSON rendering of an entity: a "__name__" key with
// the lowercase entity name plus each publicly exposed column, with datetimes
// rendered as ISO-8601 strings.
type Projection map[string]interface{}

// project builds a Projection, formatting time values as RFC 3339.
func project(name string, fields map[string]interface{}) Projection {
	p := Projection{"__name__": name}
	for k, v := range fields {
		if t, ok := v.(time.Time); ok {
			p[k] = t.UTC().Format(time.RFC3339)
			continue
		}
		p[k] = v
	}
	return p
}

// GetByID loads the entity of type T with the given primary key.
func GetByID[T any](db *gorm.DB, id uint64) (*T, error) {
	var out T
	if err := db.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBySlug loads the entity of type T with the given slug.
func GetBySlug[T any](db *gorm.DB, slug string) (*T, error) {
	var out T
	if err := db.Where("slug = ?", slug).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
