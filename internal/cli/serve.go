package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "purchases/internal/http"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ledger HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		LoadEnvFile()
		logger := SetupLogger()

		cfg, err := LoadAndValidateConfig()
		if err != nil {
			return err
		}
		svc, err := OpenService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := apphttp.NewServer(svc, cfg.BonusRatePercent).NewHTTPServer(":" + cfg.Port)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("Starting purchases server",
				"port", cfg.Port,
				"backend", cfg.StoreBackend,
				"bonus_rate_percent", cfg.BonusRatePercent)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("Shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	},
}
