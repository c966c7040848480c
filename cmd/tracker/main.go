package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/noah-isme/learning-tracker/internal/app/bootstrap"
	"github.com/noah-isme/learning-tracker/internal/cli"
	"github.com/noah-isme/learning-tracker/pkg/config"
	"github.com/noah-isme/learning-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Notices must print before the notification total.
	cfg.Notify.Async = false

	logr, err := logger.NewCLI(cfg.Log.CLILevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker, err := bootstrap.New(ctx, cfg, logr, os.Stdout)
	if err != nil {
		logr.Sugar().Fatalw("failed to wire tracker", "error", err)
	}
	defer tracker.Close()

	app := cli.New(cli.Services{
		Students:      tracker.StudentSvc,
		Points:        tracker.PointsSvc,
		Statistics:    tracker.StatisticsSvc,
		Notifications: tracker.NotifySvc,
	}, os.Stdin, os.Stdout, logr)

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logr.Sugar().Errorw("console stopped", "error", err)
	}
}
