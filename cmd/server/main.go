// main.go
//
// The awraamba web service: reactions posted against themes, characters and
// locations, with accounts, full text search and static assets.

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/thruflo/awraamba/internal/auth"
	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/database"
	"github.com/thruflo/awraamba/internal/handlers"
	"github.com/thruflo/awraamba/internal/i18n"
	"github.com/thruflo/awraamba/internal/mail"
	"github.com/thruflo/awraamba/internal/middleware"
	"github.com/thruflo/awraamba/internal/thumbnail"
	"github.com/thruflo/awraamba/internal/types"
	"github.com/thruflo/awraamba/internal/utils"

	_ "github.com/thruflo/awraamba/docs/api" // Swagger docs
)

// @title Awraamba API
// @version 1.0.0
// @description Content/community web service: reactions against themes, characters and locations

// @contact.name API Support
// @contact.url https://github.com/thruflo/awraamba

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name awraamba_session

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to database and run migrations (incl. search vector DDL)
	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, cfg); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	// Thumbnail store (content-addressed, write-once)
	thumbs, err := thumbnail.NewStore(cfg.ThumbnailsDirectory)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open thumbnail store")
	}

	// Client message string catalogs
	catalog, err := i18n.Load(cfg.LocaleDirectory, cfg.SupportedLanguages)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load message catalogs")
	}

	// Mailer and authentication strategy
	mailer := mail.New(cfg)
	strategy := auth.NewCookieStrategy(db)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cfg.SessionSecret,
	}))
	app.Use(middleware.Tracking())

	// Prometheus metrics
	prometheus := fiberprometheus.New("awraamba")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	appHandler := &handlers.AppHandler{DB: db, Cfg: cfg, Catalog: catalog}
	accountsHandler := &handlers.AccountsHandler{DB: db, Auth: strategy, Mailer: mailer, Cfg: cfg}
	reactionsHandler := &handlers.ReactionsHandler{DB: db, Auth: strategy}
	searchHandler := &handlers.SearchHandler{DB: db, Cfg: cfg}
	thumbnailsHandler := &handlers.ThumbnailsHandler{Store: thumbs}

	// App shell, client strings, confirmation link and static assets
	app.Get("/", appHandler.Shell)
	app.Get("/client_strings.json", appHandler.ClientStrings)
	app.Get("/confirm/:hash", middleware.Transaction(db), accountsHandler.Confirm)
	app.Static("/static", cfg.StaticDirectory)
	app.Static("/thumbnails", cfg.ThumbnailsDirectory)

	// API routes under /api, each request in its own unit of work
	api := app.Group("/api")
	api.Use(middleware.Transaction(db))

	api.Get("/health", appHandler.Health)

	api.Post("/signup", accountsHandler.Signup)
	api.Post("/login", accountsHandler.Login)
	api.Post("/logout", accountsHandler.Logout)

	api.Get("/reactions/", reactionsHandler.ListReactions)
	api.Post("/reactions/", auth.RequireLogin(strategy), reactionsHandler.CreateReaction)
	api.Delete("/reactions/:id",
		auth.RequireOwnerOrAdmin(strategy, reactionsHandler.Owner),
		reactionsHandler.DeleteReaction)

	api.Post("/thumbnails", auth.RequireLogin(strategy), thumbnailsHandler.CreateThumbnail)

	api.Get("/search", searchHandler.Search)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logrus.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	// Start server
	logrus.WithField("port", cfg.Port).Info("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}

	logrus.Info("server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	switch e := err.(type) {
	case *types.CustomError:
		code = e.Code
		message = e.Message
		errorType = e.Type
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
