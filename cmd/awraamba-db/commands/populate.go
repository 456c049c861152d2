package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/awraamba/data"
	"github.com/thruflo/awraamba/internal/database"
	"github.com/thruflo/awraamba/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixture file shapes. The "value" key is the slug.
type characterFixture struct {
	Value string `yaml:"value"`
	Name  string `yaml:"name"`
	Bio   string `yaml:"bio"`
}

type locationFixture struct {
	Value       string `yaml:"value"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type themeFixture struct {
	Value       string   `yaml:"value"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Characters  []string `yaml:"characters"`
	Locations   []string `yaml:"locations"`
}

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Load the fixture content",
	Long: `Load the embedded fixture content: characters and locations first,
then themes with their character and location relations.

Safe to run more than once; rows that already exist are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := open()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db, cfg); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		if err := populate(db); err != nil {
			return err
		}

		fmt.Println("Fixtures loaded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(populateCmd)
}

func populate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := populateCharacters(tx); err != nil {
			return err
		}
		if err := populateLocations(tx); err != nil {
			return err
		}
		return populateThemes(tx)
	})
}

func loadFixture(name string, out interface{}) error {
	raw, err := data.Fixtures.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}

func populateCharacters(tx *gorm.DB) error {
	var file struct {
		Characters []characterFixture `yaml:"characters"`
	}
	if err := loadFixture("characters.yaml", &file); err != nil {
		return err
	}

	for _, f := range file.Characters {
		character := models.Character{Slug: f.Value, Name: f.Name, Bio: f.Bio}
		if err := tx.Where(models.Character{Slug: f.Value}).
			FirstOrCreate(&character).Error; err != nil {
			return fmt.Errorf("failed to create character %s: %w", f.Value, err)
		}
	}
	return nil
}

func populateLocations(tx *gorm.DB) error {
	var file struct {
		Locations []locationFixture `yaml:"locations"`
	}
	if err := loadFixture("locations.yaml", &file); err != nil {
		return err
	}

	for _, f := range file.Locations {
		location := models.Location{Slug: f.Value, Title: f.Title, Description: f.Description}
		if err := tx.Where(models.Location{Slug: f.Value}).
			FirstOrCreate(&location).Error; err != nil {
			return fmt.Errorf("failed to create location %s: %w", f.Value, err)
		}
	}
	return nil
}

func populateThemes(tx *gorm.DB) error {
	var file struct {
		Themes []themeFixture `yaml:"themes"`
	}
	if err := loadFixture("themes.yaml", &file); err != nil {
		return err
	}

	for _, f := range file.Themes {
		theme := models.Theme{Slug: f.Value, Title: f.Title, Description: f.Description}
		if err := tx.Where(models.Theme{Slug: f.Value}).
			FirstOrCreate(&theme).Error; err != nil {
			return fmt.Errorf("failed to create theme %s: %w", f.Value, err)
		}

		if len(f.Characters) > 0 {
			var characters []models.Character
			if err := tx.Where("slug IN ?", f.Characters).Find(&characters).Error; err != nil {
				return err
			}
			if err := tx.Model(&theme).Association("Characters").Replace(characters); err != nil {
				return fmt.Errorf("failed to relate characters to theme %s: %w", f.Value, err)
			}
		}

		if len(f.Locations) > 0 {
			var locations []models.Location
			if err := tx.Where("slug IN ?", f.Locations).Find(&locations).Error; err != nil {
				return err
			}
			if err := tx.Model(&theme).Association("Locations").Replace(locations); err != nil {
				return fmt.Errorf("failed to relate locations to theme %s: %w", f.Value, err)
			}
		}
	}
	return nil
}
