// Command process runs the submission pipeline once for a local document,
// bypassing the webhook intake. Useful for manual runs and smoke testing a
// deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"dealflow/internal/config"
	"dealflow/internal/docstore/gdrive"
	"dealflow/internal/domain"
	"dealflow/internal/email/gmail"
	"dealflow/internal/email/noop"
	"dealflow/internal/email/ses"
	"dealflow/internal/generator/claude"
	"dealflow/internal/port"
	"dealflow/internal/service"
)

func main() {
	email := flag.String("email", "", "submitter email address")
	firstName := flag.String("first-name", "", "submitter first name")
	project := flag.String("project", "", "project name")
	file := flag.String("file", "", "path to the submitted document")
	flag.Parse()

	if *email == "" || *project == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*email, *firstName, *project, *file); err != nil {
		log.Fatal(err)
	}
}

func run(email, firstName, project, file string) error {
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

	dealSvc := service.NewDealService(store, gen, mail, &cfg.DocStore, &cfg.Company, cfg.Notify)

	result, err := dealSvc.Process(ctx, &domain.DealSubmission{
		Email:       email,
		FirstName:   firstName,
		ProjectName: project,
		DocumentRef: file,
	}, file)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
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
