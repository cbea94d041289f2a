package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored items and the rendered radar over HTTP",
	Long: `Serve the item store over HTTP until interrupted.

Endpoints:
  GET /healthz     - Redis connectivity (200 or 503)
  GET /items       - All stored items as a JSON array
  GET /items/{id}  - One stored item
  GET /radar.svg   - Radar rendered from the stored items
  GET /radar.json  - Laid-out radar as JSON

The /items payload is accepted by 'radar plot --kind api'.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client, err := connectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	srv := server.New(client, server.Config{
		Addr:     serveAddr,
		Title:    cfg.Title,
		Geometry: cfg.Layout.Geometry(),
		Seed:     cfg.Layout.Seed,
	})
	if err := srv.Start(); err != nil {
		return printer.Error("cannot start server", err.Error(), []string{"Pick another address with --addr"})
	}
	printer.Success("Serving namespace '%s' on %s\n", client.Namespace(), srv.Addr())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return printer.Failure(err)
	}

	printer.Info("\nStopped\n")
	return nil
}
