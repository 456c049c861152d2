package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/awraamba/internal/database"
	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/validate"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a confirmed admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := open()
		if err != nil {
			return err
		}
		defer database.Close(db)

		username, err := validate.UniqueUsername(db, adminUsername)
		if err != nil {
			return fmt.Errorf("username: %s", err)
		}
		email, err := validate.UniqueEmail(db, adminEmail, false)
		if err != nil {
			return fmt.Errorf("email: %s", err)
		}
		raw, err := validate.RawPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("password: %s", err)
		}
		hash, err := validate.HashPassword(raw)
		if err != nil {
			return err
		}

		user := models.User{
			Username:    username,
			Email:       email,
			Password:    hash,
			IsAdmin:     true,
			IsConfirmed: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		fmt.Printf("Admin %s created.\n", user.Username)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username (required)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email address (required)")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password (required)")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
