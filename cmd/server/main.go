// @title           Preventivi API
// @version         1.0
// @description     Quote management: totals calculation, modular templates, folders, trash, PDF rendering and delivery.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"preventivi/internal/config"
	"preventivi/internal/email/noop"
	"preventivi/internal/email/ses"
	"preventivi/internal/handler"
	"preventivi/internal/logger"
	"preventivi/internal/port"
	"preventivi/internal/render"
	"preventivi/internal/repository/postgres"
	"preventivi/internal/router"
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
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	quoteRepo := postgres.NewQuoteRepo(db)
	templateRepo := postgres.NewTemplateRepo(db)
	folderRepo := postgres.NewFolderRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	sender, err := newEmailSender(cfg.Email, log)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	renderer, err := render.New(cfg.Render)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	// Initialize services
	templateSvc := service.NewTemplateService(templateRepo, log)
	authSvc := service.NewAuthService(userRepo, templateSvc, cfg.JWT, log)
	companySvc := service.NewCompanyService(companyRepo, log)
	quoteSvc := service.NewQuoteService(quoteRepo, folderRepo, companyRepo, s3Client, log)
	folderSvc := service.NewFolderService(folderRepo, quoteRepo, log)
	exportSvc := service.NewExportService(quoteRepo, templateSvc, renderer, s3Client, sender, cfg.S3, log)

	// Initialize handlers
	r := router.Setup(authSvc, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Company:  handler.NewCompanyHandler(companySvc),
		Quote:    handler.NewQuoteHandler(quoteSvc),
		Export:   handler.NewExportHandler(exportSvc),
		Template: handler.NewTemplateHandler(templateSvc),
		Folder:   handler.NewFolderHandler(folderSvc),
		Health:   handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	purger := service.NewTrashPurgeWorker(quoteSvc, service.TrashPurgeConfig{
		Interval:  time.Duration(cfg.Trash.PurgeIntervalMin) * time.Minute,
		Retention: cfg.Trash.Retention(),
	}, log)
	purgeDone := make(chan struct{})
	go func() {
		defer close(purgeDone)
		purger.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-purgeDone
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-purgeDone
	log.Info("shutdown complete")
	return nil
}

func newEmailSender(cfg config.EmailConfig, log logrus.FieldLogger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName)
	case "", "noop":
		return noop.NewNoopSender(log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
