// search.go
//
// Keyword search across searchable entities.

package services

import (
	"fmt"

	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/database"
	"github.com/thruflo/awraamba/internal/models"
	"gorm.io/gorm"
)

// SearchResults groups projections by entity name.
type SearchResults map[string][]models.Projection

// Search matches keywords against every searchable entity, or a single one
// when entityType names it. Unknown entity types are ErrNotFound.
func Search(db *gorm.DB, cfg *config.Config, keywords, entityType string) (SearchResults, error) {
	results := SearchResults{}
	matched := false

	for _, s := range database.Searchables {
		if entityType != "" && entityType != s.Table {
			continue
		}
		matched = true

		clause, args := database.SearchClause(db, s, cfg.SearchCatalogs, keywords)
		projections, err := searchTable(db, s.Table, clause, args)
		if err != nil {
			return nil, fmt.Errorf("search over %s failed: %w", s.Table, err)
		}
		results[s.Table] = projections
	}

	if !matched {
		return nil, ErrNotFound
	}
	return results, nil
}

func searchTable(db *gorm.DB, table, clause string, args []interface{}) ([]models.Projection, error) {
	switch table {
	case "users":
		var rows []models.User
		if err := db.Where(clause, args...).Find(&rows).Error; err != nil {
			return nil, err
		}
		projections := make([]models.Projection, len(rows))
		for i := range rows {
			projections[i] = rows[i].Projection()
		}
		return projections, nil

	case "themes":
		var rows []models.Theme
		if err := db.Where(clause, args...).Find(&rows).Error; err != nil {
			return nil, err
		}
		projections := make([]models.Projection, len(rows))
		for i := range rows {
			projections[i] = rows[i].Projection()
		}
		return projections, nil

	case "characters":
		var rows []models.Character
		if err := db.Where(clause, args...).Find(&rows).Error; err != nil {
			return nil, err
		}
		projections := make([]models.Projection, len(rows))
		for i := range rows {
			projections[i] = rows[i].Projection()
		}
		return projections, nil

	case "locations":
		var rows []models.Location
		if err := db.Where(clause, args...).Find(&rows).Error; err != nil {
			return nil, err
		}
		projections := make([]models.Projection, len(rows))
		for i := range rows {
			projections[i] = rows[i].Projection()
		}
		return projections, nil

	case "reactions":
		var rows []models.Reaction
		if err := db.Where(clause, args...).Find(&rows).Error; err != nil {
			return nil, err
		}
		projections := make([]models.Projection, len(rows))
		for i := range rows {
			projections[i] = rows[i].Projection()
		}
		return projections, nil
	}

	return nil, fmt.Errorf("unknown searchable table %q", table)
}
