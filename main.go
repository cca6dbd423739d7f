package main

import (
	"context"
	"time"

	"shuttle-tracker/config"
	"shuttle-tracker/database"
	"shuttle-tracker/logger"
	"shuttle-tracker/routes"
	"shuttle-tracker/scheduler"
	backupService "shuttle-tracker/services/backup"
	"shuttle-tracker/services/mailer"
	resetService "shuttle-tracker/services/reset"
	"shuttle-tracker/storage"
	"shuttle-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
	})

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if cfg.JobTriggerToken == "" {
		logger.Warning("JOB_TRIGGER_TOKEN is not set; manual job trigger endpoints are disabled")
	}

	clock := utils.NewClock(cfg.UTCOffsetHours)
	resetSvc := resetService.NewService(db, clock)
	backupSvc := backupService.NewService(db, clock, blobStore(cfg), notifier(cfg))

	routes.SetupRoutes(app, db, cfg, resetSvc, backupSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.New(clock, resetSvc, backupSvc).Start(ctx)

	logger.Success("Shuttle tracker is running on " + cfg.AppHost + ":" + cfg.AppPort)
	if err := app.Listen(cfg.AppHost + ":" + cfg.AppPort); err != nil {
		logger.Error("Server stopped", err)
	}
}

func blobStore(cfg config.Config) storage.BlobStore {
	if cfg.BackupDir == "" {
		return nil
	}
	return storage.NewFilesystemStore(cfg.BackupDir)
}

func notifier(cfg config.Config) mailer.Notifier {
	if cfg.BackupEmail == "" || cfg.SMTPHost == "" {
		return nil
	}
	return &mailer.SMTPNotifier{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
		To:   cfg.BackupEmail,
	}
}
