package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"besfit/internal/auth"
	"besfit/internal/catalog"
	"besfit/internal/config"
	"besfit/internal/database"
	"besfit/internal/logging"
	"besfit/internal/repository"
	"besfit/internal/router"
	"besfit/internal/tracker"
)

func main() {
	// optional .env with BF_* overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("load .env")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("init logging")
	}
	defer closer.Close()

	if err := ensureDir(cfg.Backup.Dir); err != nil {
		log.WithError(err).Fatal("create backup dir")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// catalog: seed from CSV, load, then watch for edits
	provider := catalog.NewDBProvider(db)
	store := catalog.NewStore()
	seeder := &catalog.Seeder{
		Dir:      cfg.Catalog.SeedDir,
		Importer: provider,
		Provider: provider,
		Store:    store,
		Log:      log.WithField("component", "catalog"),
	}
	if err := seeder.SeedAll(ctx); err != nil {
		log.WithError(err).Warn("catalog seeding failed")
	}
	if cfg.Catalog.Watch {
		if w, err := catalog.NewWatcher(seeder); err != nil {
			log.WithError(err).Warn("catalog watcher disabled")
		} else {
			go w.Watch(ctx)
		}
	}

	tokens := auth.NewTokens(db, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	purge := func() {
		if n, err := tokens.PurgeExpired(ctx); err != nil {
			log.WithError(err).Warn("purge expired sessions")
		} else if n > 0 {
			log.WithField("count", n).Info("purged expired sessions")
		}
	}
	purge()
	jobs := cron.New()
	if _, err := jobs.AddFunc(cfg.JWT.PurgeSchedule, purge); err != nil {
		log.WithError(err).Warn("session purge job disabled")
	}
	jobs.Start()

	manager := tracker.NewManager(
		repository.NewSnapshotRepository(db),
		defaultProfile(cfg.Profile),
		bodyLimits(cfg.Profile),
		log.WithField("component", "tracker"),
	)

	r := router.SetupRouter(cfg, router.Deps{
		DB:      db,
		Catalog: store,
		Manager: manager,
		Gateway: auth.NewGateway(db, cfg.Security.BcryptCost),
		Tokens:  tokens,
		Log:     log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("run server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	<-jobs.Stop().Done()
	manager.Flush()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func defaultProfile(p config.ProfileConfig) tracker.Profile {
	return tracker.Profile{
		BodyValues:       tracker.BodyValues{Weight: p.Weight, Height: p.Height},
		MacroGoals:       tracker.MacroGoals{Protein: p.ProteinGoal, Carbs: p.CarbsGoal, Fat: p.FatGoal},
		DailyCalorieGoal: p.DailyCalorieGoal,
	}
}

func bodyLimits(p config.ProfileConfig) tracker.BodyLimits {
	return tracker.BodyLimits{
		Weight: tracker.Bounds{Min: p.WeightBounds.Min, Max: p.WeightBounds.Max},
		Height: tracker.Bounds{Min: p.HeightBounds.Min, Max: p.HeightBounds.Max},
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(filepath.Clean(dir), 0o755)
}
