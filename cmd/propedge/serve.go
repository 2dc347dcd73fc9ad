package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yourusername/prop-edge/internal/api"
	"github.com/yourusername/prop-edge/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation API and run the scheduled daily card",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := api.NewServer(api.Config{
			ServiceName:    cfg.App.Name,
			Version:        Version,
			Port:           cfg.Server.Port,
			ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RateLimit:      rate.Limit(cfg.Server.RateLimitPerSecond),
			RateBurst:      cfg.Server.RateLimitBurst,
			MetricsPath:    cfg.Metrics.Path,
			DisableMetrics: !cfg.Metrics.Enabled,
			Logger:         appLogger,
			Runner:         runner,
		})
		if err := server.Start(ctx); err != nil {
			return err
		}

		if cfg.Schedule.Enabled {
			sched := scheduler.NewScheduler(runner, appLogger)
			if _, err := sched.ScheduleDailyCard(cfg.Schedule.Cron, cfg.Schedule.InputPath, cfg.Schedule.OutputDir, time.Hour); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
			appLogger.WithField("next_run", sched.NextRun()).Info("Daily card scheduled")
		}

		<-ctx.Done()
		appLogger.Info("Shutting down gracefully")
		return server.Shutdown()
	},
}
