package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pdfdesk/internal/config"
	"pdfdesk/internal/database"
	"pdfdesk/internal/database/migration"
	handlers "pdfdesk/internal/http/handler"
	"pdfdesk/internal/nlp"
	"pdfdesk/internal/payment"
	"pdfdesk/internal/pdf"
	"pdfdesk/internal/quota"
	"pdfdesk/internal/repository"
	"pdfdesk/internal/repository/postgres"
	"pdfdesk/internal/service"
	"pdfdesk/internal/session"
)

func notesCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Serve the PDF notes and flashcards app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := newServer(ctx, "pdfdesk-notes", "8081", port)
			if err != nil {
				return err
			}
			if err := runNotes(ctx, s); err != nil {
				return errors.Join(err, s.close())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT, default 8081)")
	return cmd
}

func runNotes(ctx context.Context, s *server) error {
	cfg := s.cfg.Notes

	var (
		db      *sql.DB
		repo    repository.SubscriptionRepository
		premium quota.PremiumResolver = quota.Static(false)
	)
	if s.cfg.Database.Enabled() {
		var err error
		db, err = database.NewPostgres(ctx, s.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s.onClose(db.Close)
		if err := migration.EnsureMigrated(ctx, db, s.log, s.cfg.Database.Host); err != nil {
			return err
		}
		repo = postgres.NewSubscriptionPostgres(db)
		premium = quota.NewSubscriptionResolver(repo)
	} else {
		s.log.Info().Str("component", "database").Msg("no database configured, every session is on the free tier")
	}

	sessions, sessionStorage, err := session.NewStore(ctx, cfg.Session)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	if sessionStorage != nil {
		s.onClose(sessionStorage.Close)
	}

	hc := tracedClient()

	summarizer, questions, err := newNLP(ctx, cfg, s)
	if err != nil {
		return err
	}

	var checkout payment.Checkout
	switch stripe, err := payment.NewStripe(cfg.Stripe, hc, s.log); {
	case errors.Is(err, payment.ErrNotConfigured):
		s.log.Warn().Str("component", "stripe").Msg("STRIPE_SECRET_KEY not set, /subscribe is unavailable")
		checkout = payment.Unconfigured{}
	case err != nil:
		return err
	default:
		checkout = stripe
	}

	notes := service.NewNotesService(service.NotesDeps{
		Store:      s.store,
		Limiter:    quota.NewLimiter(cfg.FreeQuota, premium, s.log),
		Extractor:  pdf.TextExtractor{},
		Summarizer: summarizer,
		Questions:  questions,
		ChunkWords: cfg.ChunkWords,
		Metrics:    s.pipeline,
	}, s.log)

	handlers.RegisterOpsRoutes(s.app, db, s.reg)
	handlers.RegisterNotesRoutes(s.app, handlers.NotesRoutes{
		Sessions:         sessions,
		Notes:            notes,
		Subscriptions:    service.NewSubscriptionService(checkout, repo),
		ConfirmCheckouts: repo != nil,
		Log:              s.log,
	})

	return s.run(ctx)
}

// newNLP picks Gemini when an API key is configured and the offline Lead backend otherwise.
func newNLP(ctx context.Context, cfg config.NotesConfig, s *server) (nlp.Summarizer, nlp.QuestionGenerator, error) {
	if cfg.Gemini.APIKey == "" {
		s.log.Info().Str("component", "nlp").Msg("GEMINI_API_KEY not set, using extractive summaries")
		return nlp.Lead{}, nlp.Lead{}, nil
	}
	g, err := nlp.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, tracedClient())
	if err != nil {
		return nil, nil, err
	}
	s.log.Info().Str("component", "nlp").Str("model", cfg.Gemini.Model).Msg("using gemini")
	return g, g, nil
}
