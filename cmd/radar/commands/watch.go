package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/report"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/spf13/cobra"
)

var watchOutputFormat string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream items as they are imported",
	Long: `Print each item as it is written to the item store, until interrupted.

Output Formats:
  table - One line per item
  jsonl - One JSON object per item

Examples:
  # Follow imports into the platform namespace
  RADAR_NAMESPACE=platform radar watch`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", string(report.FormatTable), "Output format: table or jsonl")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(watchOutputFormat)
	if err != nil || format == report.FormatJSON {
		return printer.Error("invalid output format", fmt.Sprintf("Unknown format: %s", watchOutputFormat), []string{"Valid formats: table, jsonl"})
	}

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

	sub, err := client.SubscribeItemEvents(ctx)
	if err != nil {
		return printer.Failure(fmt.Errorf("failed to subscribe: %w", err))
	}
	defer sub.Close()

	if format == report.FormatTable {
		printer.Step("Watching namespace '%s' (Ctrl+C to stop)\n", client.Namespace())
	}

	return streamItems(ctx, sub, printer.Out, format)
}

// streamItems writes events until the context ends or the subscription closes.
func streamItems(ctx context.Context, sub *itemstore.Subscription, w io.Writer, format report.Format) error {
	enc := json.NewEncoder(w)
	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			printer.Warning("%v\n", err)
		case item, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if format == report.FormatJSONL {
				if err := enc.Encode(item); err != nil {
					return fmt.Errorf("failed to write item: %w", err)
				}
				continue
			}
			marker := " "
			if item.IsNew {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s  %s / %s\n", marker, item.Name, item.Ring, item.Quadrant)
		}
	}
}
