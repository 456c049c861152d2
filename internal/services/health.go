package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Thumbnails   string            `json:"thumbnails"`
	Mail         string            `json:"mail"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		logrus.WithError(err).Error("health check failed - database connection")
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			logrus.WithError(err).Error("health check failed - database ping")
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the thumbnail directory is writable
	probe := filepath.Join(cfg.ThumbnailsDirectory, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		result.Status = "unhealthy"
		result.Thumbnails = "unwritable"
		result.Details["thumbnails_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Thumbnail directory unwritable: %v", err)
		}
		logrus.WithError(err).Error("health check failed - thumbnail directory")
	} else {
		_ = os.Remove(probe)
		result.Thumbnails = "ok"
		result.Details["thumbnails_directory"] = cfg.ThumbnailsDirectory
	}

	// Check mail provider reachability when configured
	if cfg.PostmarkToken == "" {
		result.Mail = "disabled"
	} else if err := utils.PingPostmark(); err != nil {
		// Mail being down degrades signup but does not take the site down.
		result.Mail = "unreachable"
		result.Details["mail_error"] = err.Error()
		logrus.WithError(err).Warn("health check - mail provider unreachable")
	} else {
		result.Mail = "ok"
	}

	if result.Status == "healthy" {
		logrus.Debug("health check passed")
	}

	return result
}
