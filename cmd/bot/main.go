package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"eventbot/internal/adapters/discord"
	"eventbot/internal/adapters/httpapi"
	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/infrastructure/database"
	"eventbot/internal/infrastructure/i18n"
	"eventbot/internal/infrastructure/sqlite"
	"eventbot/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database initialisation: %v", err)
	}
	defer closeStore()

	translator := i18n.NewTranslator(cfg.Locale)
	log.Printf("✅ Translations loaded: %v", translator.Languages())

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	authorizer := discord.NewAuthorizer(session, cfg.ModeratorRoleIDs)
	renderer := discord.NewRenderer(session, translator, cfg.Locale)

	eventUC := application.NewEventService(repos.Events, authorizer)
	confirmationUC := application.NewConfirmationService(eventUC, repos.Signups, repos.ConfirmationChecks, authorizer, renderer)
	signupUC := application.NewSignupService(repos.Signups, authorizer, confirmationUC, cfg.RemoveRequiresModerator)

	handler := discord.NewHandler(eventUC, signupUC, confirmationUC, renderer, translator, cfg.CommandPrefix, cfg.Locale)
	bot := discord.NewBot(session, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Start(gctx) })
	if cfg.StatusAddr != "" {
		router := httpapi.NewRouter(eventUC, signupUC, confirmationUC, repos.Pinger)
		g.Go(func() error { return httpapi.NewServer(cfg.StatusAddr, router).Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Printf("❌ Bot stopped: %v", err)
		closeStore()
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (output.Repositories, func(), error) {
	if cfg.StoreDriver == config.DriverSQLite {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return output.Repositories{}, nil, err
		}
		return store.Repositories(), func() { _ = store.Close() }, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return output.Repositories{}, nil, err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return output.Repositories{}, nil, err
	}
	return database.NewRepositories(pool), pool.Close, nil
}
