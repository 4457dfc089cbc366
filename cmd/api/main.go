package main

import (
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"fileshare/internal/config"
	"fileshare/internal/database"
	"fileshare/internal/mailer"
	"fileshare/internal/middleware"
	"fileshare/internal/modules/file"
	"fileshare/internal/pkg/logging"
	"fileshare/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("dev").Fatal("invalid configuration", "err", err)
	}

	logger := logging.New(cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", "err", err)
	}
	if err := db.AutoMigrate(&file.File{}); err != nil {
		logger.Fatal("database migration failed", "err", err)
	}

	store, err := storage.NewDiskStore(afero.NewOsFs(), cfg.UploadDir)
	if err != nil {
		logger.Fatal("blob store init failed", "err", err)
	}

	var m mailer.Mailer
	if cfg.MailEnabled {
		m = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom)
	} else {
		m = mailer.NewDevConsoleMailer(logger)
	}

	fileRepo := file.NewRepository(db)
	fileService := file.NewService(fileRepo, store, m, cfg.BaseURL, cfg.MaxUploadSize, logger)
	fileHandler := file.NewHandler(fileService)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	file.RegisterRoutes(r, fileHandler)

	logger.Info("server starting",
		"port", cfg.Port,
		"upload_dir", cfg.UploadDir,
		"max_upload_size", humanize.Bytes(uint64(cfg.MaxUploadSize)),
		"mail_enabled", cfg.MailEnabled)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
