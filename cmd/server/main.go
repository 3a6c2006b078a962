package main

import (
	"context"
	"fmt"
	"log"

	"dealflow/internal/config"
	"dealflow/internal/docstore/gdrive"
	"dealflow/internal/email/gmail"
	"dealflow/internal/email/noop"
	"dealflow/internal/email/ses"
	"dealflow/internal/generator/claude"
	"dealflow/internal/handler"
	"dealflow/internal/port"
	"dealflow/internal/router"
	"dealflow/internal/service"
	s3storage "dealflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	store, err := gdrive.NewStore(ctx, &cfg.DocStore)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	gen := claude.NewGenerator(&cfg.Generator)

	mail, err := newEmailSender(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	var archive port.ObjectStorage
	if cfg.Archive.Provider == "s3" {
		archive, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize archive storage: %w", err)
		}
	}

	// Initialize services
	dealSvc := service.NewDealService(store, gen, mail, &cfg.DocStore, &cfg.Company, cfg.Notify)
	intakeSvc := service.NewIntakeService(dealSvc, archive, &cfg.Archive, &cfg.Webhook)

	// Initialize handlers
	webhookH := handler.NewWebhookHandler(intakeSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg.Webhook.Secret, webhookH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newEmailSender(ctx context.Context, cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "gmail":
		return gmail.NewGmailSender(ctx, cfg.DocStore.CredentialsFile, cfg.Email.FromAddress, cfg.Email.FromName)
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	case "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", cfg.Email.Provider)
	}
}
