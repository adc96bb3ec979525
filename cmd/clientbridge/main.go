package main

import (
	"log"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/auth"
	"github.com/clientbridge-dev/clientbridge/internal/config"
	"github.com/clientbridge-dev/clientbridge/internal/handlers"
	"github.com/clientbridge-dev/clientbridge/internal/router"
	"github.com/clientbridge-dev/clientbridge/internal/services"
	"github.com/clientbridge-dev/clientbridge/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err = auth.Init(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	if err = db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	blobs, err := storage.NewDiskBlobStore(cfg.UploadDir, cfg.UploadBaseURL)

	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	mailer := services.NewMailer(cfg.MailRelayURL, cfg.MailFrom)
	notify := services.NewNotificationService(mailer, cfg.AdminEmail)

	handlers.Configure(cfg, blobs, notify)

	r := router.NewRouter(cfg)

	if err = r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
