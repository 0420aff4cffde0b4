// Package main provides the entry point for the matchday-edge dashboard service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/matchday-edge/internal/api"
	"github.com/yourusername/matchday-edge/internal/cache"
	"github.com/yourusername/matchday-edge/internal/config"
	"github.com/yourusername/matchday-edge/internal/datasource"
	"github.com/yourusername/matchday-edge/internal/health"
	applogger "github.com/yourusername/matchday-edge/internal/logger"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
	"github.com/yourusername/matchday-edge/internal/prediction"
	"github.com/yourusername/matchday-edge/internal/scheduler"
	"github.com/yourusername/matchday-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	envFile    string
	cfg        *config.Config
	logger     *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the configuration")
	predictCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Soccer match predictions and value bets",
	Long:  `Pulls bookmaker odds and team statistics, predicts every match and serves the results to the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the refresh scheduler and the dashboard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dashboard %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, predictCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	// A missing .env file is fine; real environment variables still apply
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	loaded, err := config.LoadWithDefaults(config.ResolvePath(configFile))
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()
	return nil
}

// buildRefresher wires sources, calculator, cache and store into a refresher
func buildRefresher() (*service.Refresher, error) {
	sources, err := datasource.NewFactory(cfg, logger).NewSources()
	if err != nil {
		return nil, fmt.Errorf("failed to create data sources: %w", err)
	}

	snapshots := cache.New[*models.Snapshot](cfg.CacheTTL(), cfg.Cache.MaxSize)
	store := service.NewSnapshotStore(snapshots, logger)
	calculator := prediction.NewCalculator(cfg.Prediction.ToCalculatorConfig(), logger)

	logger.WithField("sources", sources.Names()).Info("Data sources configured")
	breakers := service.CircuitBreakerConfig{
		MaxFailureCount:   cfg.Refresh.FailureThreshold,
		FailureTimeWindow: cfg.RefreshInterval() * time.Duration(cfg.Refresh.FailureThreshold+1),
		CooldownPeriod:    cfg.SourceCooldown(),
	}
	refresher := service.NewRefresher(sources, calculator, store, cfg.RefreshTimeout(), logger).
		WithCircuitBreakers(breakers, logger)
	return refresher, nil
}

func serve() error {
	logger.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("matchday-edge dashboard starting")

	refresher, err := buildRefresher()
	if err != nil {
		return err
	}
	store := refresher.Store()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(refresher, cfg.RefreshTimeout(), logger)
	if err := sched.ScheduleRefresh(cfg.RefreshInterval()); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	sched.RunNow(ctx)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			logger.WithError(err).Error("Failed to stop scheduler")
		}
	}()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Health.Port,
		Logger:      logger,
		Checks:      map[string]health.ReadinessChecker{"snapshot": store},
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}
	healthServer.SetReady(true)

	apiServer := api.NewServer(cfg.Server, cfg.Metrics, store, refresher, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Run(gctx)
	})

	logger.WithFields(logrus.Fields{
		"address":  cfg.Server.BindAddress,
		"interval": cfg.RefreshInterval().String(),
		"next_run": sched.GetNextRun().Format(time.RFC3339),
	}).Info("Dashboard ready")

	err = g.Wait()
	healthServer.SetReady(false)
	logger.Info("matchday-edge dashboard stopped")
	return err
}
