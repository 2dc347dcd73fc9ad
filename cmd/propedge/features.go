package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/prop-edge/internal/features"
	"github.com/yourusername/prop-edge/internal/ingest"
)

var (
	slateInput     string
	featuresOutput string
)

func init() {
	featuresCmd.Flags().StringVarP(&slateInput, "slate", "s", "", "Raw slate JSON with teams, player logs and props")
	featuresCmd.Flags().StringVarP(&featuresOutput, "output", "o", "props_features.json", "Where to write the built evaluation inputs")
	featuresCmd.MarkFlagRequired("slate")
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Build evaluation inputs from a raw slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		slate, err := ingest.ReadSlate(slateInput)
		if err != nil {
			return err
		}

		ttl := time.Duration(cfg.Features.CacheTTLMinutes) * time.Minute
		builder := features.NewBuilder(cfg.Features.Window, features.NewBaselineCache(ttl), appLogger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rows, err := builder.BuildRows(ctx, slate)
		if err != nil {
			return fmt.Errorf("feature build failed: %w", err)
		}
		if err := ingest.WriteJSON(featuresOutput, rows); err != nil {
			return err
		}
		fmt.Printf("Built %d of %d props -> %s\n", len(rows), len(slate.Props), featuresOutput)
		return nil
	},
}
