// search.go
//
// Multi-language full text search over searchable tables. On Postgres each
// searchable table gets one indexed tsvector column per configured text
// search catalog, kept in sync by a database trigger. Other dialects fall
// back to LIKE matching over the same source columns.

package database

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Searchable names a table and the source columns feeding its search vectors.
type Searchable struct {
	Table   string
	Columns []string
}

// Searchables lists every table carrying search vectors and the columns
// indexed for each.
var Searchables = []Searchable{
	{Table: "users", Columns: []string{"username", "name", "bio"}},
	{Table: "themes", Columns: []string{"slug", "title", "description"}},
	{Table: "characters", Columns: []string{"slug", "name", "bio"}},
	{Table: "locations", Columns: []string{"slug", "title", "description"}},
	{Table: "reactions", Columns: []string{"url", "message"}},
}

// SetupSearch installs, per catalog and searchable table, a tsvector column,
// a GIN index over it and a trigger that keeps it synchronized on insert and
// update. The DDL is idempotent so migrations can be re-run. Only Postgres
// supports tsvector; other dialects are a no-op and search falls back to LIKE.
func SetupSearch(db *gorm.DB, catalogs []string) error {
	if db.Dialector.Name() != "postgres" {
		logrus.WithField("dialect", db.Dialector.Name()).
			Debug("skipping tsvector setup, search will use LIKE fallback")
		return nil
	}

	for _, s := range Searchables {
		for _, catalog := range catalogs {
			column := fmt.Sprintf("search_vector_%s", catalog)
			ddl := []string{
				fmt.Sprintf(
					`ALTER TABLE %q ADD COLUMN IF NOT EXISTS %s tsvector`,
					s.Table, column,
				),
				fmt.Sprintf(
					`CREATE INDEX IF NOT EXISTS %q ON %q USING gin(%s)`,
					fmt.Sprintf("%s_search_index_%s", s.Table, catalog),
					s.Table, column,
				),
				fmt.Sprintf(
					`DROP TRIGGER IF EXISTS %q ON %q`,
					fmt.Sprintf("%s_search_update_%s", s.Table, catalog),
					s.Table,
				),
				fmt.Sprintf(
					`CREATE TRIGGER %q BEFORE INSERT OR UPDATE ON %q
					FOR EACH ROW EXECUTE PROCEDURE
					tsvector_update_trigger(%s, 'pg_catalog.%s', %s)`,
					fmt.Sprintf("%s_search_update_%s", s.Table, catalog),
					s.Table, column, catalog, strings.Join(s.Columns, ", "),
				),
			}
			for _, stmt := range ddl {
				if err := db.Exec(stmt).Error; err != nil {
					return fmt.Errorf("search setup for %s/%s: %w", s.Table, catalog, err)
				}
			}
		}
		logrus.WithFields(logrus.Fields{
			"table":    s.Table,
			"catalogs": catalogs,
		}).Info("installed search vectors")
	}

	return nil
}

// SearchClause returns a where clause matching keywords against the given
// searchable, OR-combined across catalogs, along with its arguments. On
// non-Postgres dialects it degrades to LIKE matching over the source columns.
func SearchClause(db *gorm.DB, s Searchable, catalogs []string, keywords string) (string, []interface{}) {
	if db.Dialector.Name() == "postgres" {
		clauses := make([]string, 0, len(catalogs))
		args := make([]interface{}, 0, len(catalogs))
		for _, catalog := range catalogs {
			clauses = append(clauses, fmt.Sprintf(
				"%s.search_vector_%s @@ plainto_tsquery('pg_catalog.%s', ?)",
				s.Table, catalog, catalog,
			))
			args = append(args, keywords)
		}
		return "(" + strings.Join(clauses, " OR ") + ")", args
	}

	clauses := make([]string, 0, len(s.Columns))
	args := make([]interface{}, 0, len(s.Columns))
	for _, column := range s.Columns {
		clauses = append(clauses, fmt.Sprintf("%s.%s LIKE ?", s.Table, column))
		args = append(args, "%"+keywords+"%")
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}
