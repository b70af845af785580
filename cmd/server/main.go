package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localnerve/smart-reviewer/internal/config"
	"github.com/localnerve/smart-reviewer/internal/database"
	"github.com/localnerve/smart-reviewer/internal/logging"
	"github.com/localnerve/smart-reviewer/internal/server"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// @title Smart Reviewer API
// @version 1.0.0
// @description Customer feedback, rating links and daily analytics for business dashboards
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name businessToken

// @securityDefinitions.apikey AdminKey
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", "json", os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer closeDB(db, log)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := services.NewStore(db, append(services.FromConfig(cfg), services.WithLogger(log))...)
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)

	app := server.New(server.Deps{
		Config: cfg,
		Store:  store,
		Tokens: tokens,
		Log:    log,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("gracefully shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	log.Info().Msg("server stopped")
}

func closeDB(db *gorm.DB, log zerolog.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}
