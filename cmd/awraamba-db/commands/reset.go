package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/awraamba/internal/database"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the database schema",
	Long: `Drop every awraamba table and recreate the schema from scratch,
including the search vector columns, indexes and triggers.

All existing data is lost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := open()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Reset(db, cfg); err != nil {
			return fmt.Errorf("failed to reset schema: %w", err)
		}

		fmt.Println("Schema reset.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
