package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/openalpha/dlob-filler/offchain/filler"
)

// NewServeCmd runs the filler's event and scan loops until interrupted.
func NewServeCmd(logger log.Logger) *cobra.Command {
	var envPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the DLOB filler event loop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := filler.LoadConfig(envPath)
			if err != nil {
				return err
			}

			logger.Info("starting dlob filler", "markets", cfg.Markets, "scan_interval", cfg.ScanInterval)

			feed := filler.NewStaticPriceFeed()
			f := filler.NewFiller(cfg, feed, filler.NewMockSubmitter())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := f.Start(ctx); err != nil {
				return err
			}
			defer f.Stop()

			go serveMetrics(logger, cfg.MetricsAddr)

			<-ctx.Done()
			logger.Info("shutting down dlob filler")
			return nil
		},
	}

	cmd.Flags().StringVar(&envPath, "env-file", "", "path to a .env file with DLOBFILLER_* settings")
	return cmd
}

func serveMetrics(logger log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", filler.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server exited", "err", err)
	}
}
