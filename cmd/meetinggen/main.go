package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cellhub/backend/config"
	"cellhub/backend/internal/repository"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/database"
	applogger "cellhub/backend/pkg/logger"
)

// meetinggen materializes upcoming meetings for every group with a complete
// schedule. It runs either as a one-shot job or, with -cron, as a daemon.
func main() {
	configPath := flag.String("config", "", "path to config file")
	months := flag.Int("months", 0, "generation horizon in months (default from config)")
	cronSpec := flag.String("cron", "", "cron schedule for daemon mode (default from config; empty runs once)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}()

	horizon := *months
	if horizon <= 0 {
		horizon = cfg.Meetings.HorizonMonths
	}
	spec := *cronSpec
	if spec == "" {
		spec = cfg.Meetings.GenerationCron
	}

	repo := repository.NewRepository(db)
	gen := service.NewGenerationService(repo, logger)

	if spec == "" {
		if err := runOnce(context.Background(), gen, horizon); err != nil {
			logger.Error("generation failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	runDaemon(gen, spec, horizon, logger)
}

func runOnce(ctx context.Context, gen service.GenerationService, horizon int) error {
	report, err := gen.GenerateUpcoming(ctx, horizon)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(report.Created))
	for name := range report.Created {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("group %s: %d meetings\n", name, report.Created[name])
	}
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	if len(report.Created) == 0 {
		fmt.Println("nothing to generate")
	}
	return nil
}

func runDaemon(gen service.GenerationService, spec string, horizon int, logger *zap.Logger) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		report, err := gen.GenerateUpcoming(context.Background(), horizon)
		if err != nil {
			logger.Error("scheduled generation failed", zap.Error(err))
			return
		}
		total := 0
		for _, n := range report.Created {
			total += n
		}
		logger.Info("scheduled generation finished",
			zap.Int("groups", len(report.Created)),
			zap.Int("meetings", total),
			zap.Int("warnings", len(report.Warnings)),
		)
	})
	if err != nil {
		logger.Fatal("invalid cron schedule", zap.String("spec", spec), zap.Error(err))
	}

	logger.Info("meeting generation daemon started", zap.String("cron", spec), zap.Int("horizon_months", horizon))
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()
	logger.Info("meeting generation daemon stopped")
}
