package main

import (
	"fmt"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/evaluation"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/pipeline"
	"github.com/yourusername/prop-edge/internal/portfolio"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(runCmd, featuresCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "propedge",
	Short: "Evaluate player props and select a daily card",
	Long: `Simulates player-prop outcomes against sportsbook lines, scores edge,
expected value and confidence, and selects a bounded daily portfolio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("propedge %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newRunner wires the evaluator and constraints from configuration
func newRunner() (*pipeline.Runner, error) {
	evalCfg, err := evaluation.FromConfig(&cfg.Simulation)
	if err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	constraints, err := portfolio.FromConfig(&cfg.Portfolio)
	if err != nil {
		return nil, err
	}
	evaluator := evaluation.NewEvaluator(evalCfg, appLogger)
	return pipeline.NewRunner(evaluator, constraints, appLogger), nil
}
