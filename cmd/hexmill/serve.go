package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexmill/hexmill/internal/achieve"
	"github.com/hexmill/hexmill/internal/api"
	"github.com/hexmill/hexmill/internal/config"
	"github.com/hexmill/hexmill/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the achievement HTTP service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stdout, "[SERVE] ", log.LstdFlags)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(db)

	if cfg.AchievementsFile != "" {
		tracker, err := achieve.NewTracker(db, logger)
		if err != nil {
			return err
		}
		if err := tracker.LoadFile(cfg.AchievementsFile); err != nil {
			return err
		}
		server.SetTracker(tracker)
		go func() {
			if err := tracker.Watch(ctx, cfg.AchievementsFile); err != nil {
				logger.Printf("achievement watch stopped: %v", err)
			}
		}()
		logger.Printf("loaded %d achievement definitions from %s",
			len(tracker.Definitions()), cfg.AchievementsFile)
	}

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("listening on %s", cfg.Listen)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
