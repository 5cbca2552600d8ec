package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/sanquote/internal/config"
	"github.com/Simplici0/sanquote/internal/configstore"
	"github.com/Simplici0/sanquote/internal/db"
	"github.com/Simplici0/sanquote/internal/logging"
	"github.com/Simplici0/sanquote/internal/migrations"
	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/seed"
	"github.com/Simplici0/sanquote/internal/store"
)

func main() {
	cfg := config.Load()

	log := logging.Must(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stderr",
		Development: cfg.IsDev(),
	})
	defer func() { _ = log.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
		stats, err := seed.Run(database, seed.Config{})
		if err != nil {
			log.Fatal("failed to seed service configs", zap.Error(err))
		}
		log.Info("seeded service configs", zap.Int("inserts", stats.Inserts))
	}

	configs := configstore.NewSQLSource(database)
	provider := configstore.NewProvider(configs, configstore.Options{
		TTL:     cfg.ConfigTTL,
		Retries: cfg.FetchRetries,
		Logger:  log,
	})

	srv := &server{
		provider: provider,
		configs:  configs,
		quotes:   store.NewQuotes(database),
		book:     quote.NewBook(provider, log),
		admin:    newAdminGuard(cfg.AdminToken, cfg.IsDev()),
		log:      log,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
