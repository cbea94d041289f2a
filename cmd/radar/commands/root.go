package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/radar/internal/config"
	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// storeTimeout bounds the initial Redis ping.
const storeTimeout = 5 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Radar - build technology radars from tabular data",
	Long: `Radar turns a table of technologies into a technology radar.

Each row names a technology, the ring it sits in (Adopt, Trial, ...), the
quadrant it belongs to and whether it is new. Radar validates the table,
builds the radar and lays every blip out inside its ring and quadrant.

Rows can come from a delimited file, a URL, a JSON items API or the Redis
item store populated by 'radar import'.`,
	Version: version,
	// Show help rather than silently succeeding without a subcommand
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Called once by main.main().
func Execute() error {
	// Errors are printed by the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to radar.yml (optional unless set explicitly)")
}

// loadConfig reads radar.yml and applies environment overrides. The default
// path may be absent; an explicit --config must exist.
func loadConfig(cmd *cobra.Command) (*config.RadarConfig, error) {
	explicit := cmd.Flags().Changed("config")

	cfg, err := config.LoadOrDefault(configPath, explicit)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": configPath},
			[]string{"Fix radar.yml or pass a different file with --config"},
		)
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, printer.Error("invalid environment", err.Error(), []string{"Check the RADAR_* environment variables"})
	}

	return cfg, nil
}

// connectStore opens and pings the item store named in the configuration.
func connectStore(ctx context.Context, cfg *config.RadarConfig) (*itemstore.Client, error) {
	client, err := itemstore.NewClientFromURL(cfg.Store.RedisURL, cfg.Store.Namespace)
	if err != nil {
		return nil, printer.Error("invalid item store settings", err.Error(), nil)
	}

	pingCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"item store unavailable",
			fmt.Sprintf("Could not reach Redis: %v", err),
			map[string]string{"Redis": cfg.Store.RedisURL},
			[]string{"Start Redis or set store.redis_url in radar.yml (or RADAR_REDIS_URL)"},
		)
	}

	return client, nil
}
