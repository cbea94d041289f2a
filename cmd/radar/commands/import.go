package commands

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/internal/pipeline"
	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/source"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/spf13/cobra"
)

var (
	importSource  sourceFlags
	importReplace bool
	importDryRun  bool
)

var importCmd = &cobra.Command{
	Use:   "import [LOCATION]",
	Short: "Validate rows and save them to the item store",
	Long: `Read rows from a file, URL or items API, check that they form a valid
radar and store each row as an item in Redis.

Nothing is written unless the whole document is valid.

Examples:
  # Add the rows of a document to the default namespace
  radar import tech-radar.csv

  # Replace the namespace contents with a fresh document
  RADAR_NAMESPACE=platform radar import https://example.com/q3.csv --replace

  # Check a document without writing anything
  radar import tech-radar.csv --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importSource.register(importCmd)
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete existing items in the namespace first")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate only, do not write")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var location string
	if len(args) > 0 {
		location = args[0]
	}

	if importSource.kind == source.KindStore || (location == "" && importSource.kind == "" && cfg.Source.Kind == source.KindStore) {
		return printer.Error(
			"cannot import from the item store",
			"The store is the import destination.",
			[]string{"Give a file path or URL:\n  radar import tech-radar.csv"},
		)
	}

	fetcher, closeSource, err := openSource(ctx, cfg, &importSource, location)
	if err != nil {
		return err
	}
	defer closeSource()

	batch, err := fetcher.Fetch(ctx)
	if err != nil {
		return printer.Failure(err)
	}

	// Validate the whole document; the layout itself is discarded.
	res, err := pipeline.Run(batch.Headers, batch.Rows, pipeline.Options{
		Geometry: cfg.Layout.Geometry(),
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		return printer.Failure(err)
	}

	entries := ingest.SanitizeAll(batch.Rows)

	if importDryRun {
		printer.Success("%s is valid: %d items in %d quadrants and %d rings\n",
			displayName(batch.Name), len(entries), len(res.Radar.Quadrants()), len(res.Radar.Rings()))
		return nil
	}

	client, err := connectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if importReplace {
		removed, err := client.ClearItems(ctx)
		if err != nil {
			return printer.Failure(fmt.Errorf("failed to clear namespace: %w", err))
		}
		printer.Step("Removed %d existing items from '%s'\n", removed, client.Namespace())
	}

	for _, e := range entries {
		if err := client.CreateItem(ctx, itemstore.NewItem(e)); err != nil {
			return printer.Failure(fmt.Errorf("failed to store %q: %w", e.Name, err))
		}
	}

	printer.Success("Imported %d items from %s into namespace '%s'\n", len(entries), displayName(batch.Name), client.Namespace())
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "source"
	}
	return name
}
