// Command purge permanently deletes quotes that have been in the trash
// longer than the configured retention window, then exits. It runs the same
// purge as the server's background worker and suits a cron schedule.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"preventivi/internal/config"
	"preventivi/internal/logger"
	"preventivi/internal/repository/postgres"
	"preventivi/internal/service"
	s3storage "preventivi/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	quoteSvc := service.NewQuoteService(
		postgres.NewQuoteRepo(db),
		postgres.NewFolderRepo(db),
		postgres.NewCompanyRepo(db),
		s3Client,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := quoteSvc.PurgeExpired(ctx, cfg.Trash.Retention())
	if err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	log.WithFields(logrus.Fields{
		"deleted":        n,
		"retention_days": cfg.Trash.RetentionDays,
	}).Info("purge complete")
	return nil
}
