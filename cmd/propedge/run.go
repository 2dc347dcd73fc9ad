package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/pipeline"
)

var (
	runInput     string
	runOutputDir string
)

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Props file (.csv or .json); defaults to schedule.input_path")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o", "", "Output directory; defaults to schedule.output_dir")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a props file and write the day's card",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := firstNonEmpty(runInput, cfg.Schedule.InputPath)
		output := firstNonEmpty(runOutputDir, cfg.Schedule.OutputDir, "./output")
		if input == "" {
			return fmt.Errorf("an input file is required (--input or schedule.input_path)")
		}

		runner, err := newRunner()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := runner.RunFile(ctx, input, output)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		printSummary(result)
		return nil
	},
}

func printSummary(result pipeline.Result) {
	s := result.Portfolio.Summary
	fmt.Println("\n=== Daily Card ===")
	fmt.Printf("Run ID: %s\n", s.RunID)
	fmt.Printf("Props evaluated: %d\n", len(result.Evaluated))
	fmt.Printf("Picks: %d (%d overs, %d unders)\n", s.TotalPicks, s.Overs, s.Unders)
	fmt.Printf("Avg EV: %.4f\n", s.AvgEV)
	fmt.Printf("Avg confidence: %.4f\n", s.AvgConfidence)
	fmt.Printf("Total stake: %s, expected profit: %s\n", s.TotalStake.StringFixed(2), s.ExpectedProfit.StringFixed(2))
	for i, pick := range result.Portfolio.Picks {
		fmt.Printf("  %2d. %-24s %-8s %-5s %6s @ %+d  p=%.3f ev=%.3f conf=%.3f\n",
			i+1, displayName(pick.PlayerName, pick.PlayerID), pick.Market, pick.Side,
			pick.Line, pick.Odds, pick.ModelProb.Or(0), pick.EVPerUnit.Or(0), pick.Confidence)
	}
	fmt.Printf("\nResults written to %s\n", result.OutputDir)
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
