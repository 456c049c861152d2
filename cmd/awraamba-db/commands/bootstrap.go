package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/awraamba/internal/database"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Reset the schema and load the fixture content",
	Long: `Reset the database schema and load the embedded fixture content in
one step. Equivalent to running reset followed by populate.

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
		if err := populate(db); err != nil {
			return err
		}

		fmt.Println("Database bootstrapped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
