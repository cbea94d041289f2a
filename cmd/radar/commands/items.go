package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/radar/internal/filter"
	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/report"
	"github.com/dyluth/radar/internal/resolver"
	"github.com/dyluth/radar/internal/timespec"
	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/spf13/cobra"
)

var (
	itemsOutputFormat string
	itemsSince        string
	itemsUntil        string
	itemsQuadrant     string
	itemsRing         string
	itemsNewOnly      bool
	itemsDelete       bool
)

var itemsCmd = &cobra.Command{
	Use:   "items [ITEM_ID]",
	Short: "Inspect stored radar items",
	Long: `Inspect the item store in list or get mode.

List Mode (no ITEM_ID):
  Displays items matching filters as a table, JSONL stream or JSON array.

Get Mode (with ITEM_ID):
  Displays one item as pretty-printed JSON. Short IDs of at least six
  characters are accepted. With --delete the item is removed instead.

Filters (list mode only):
  --since, --until  - Creation time bounds (duration like 7d or RFC3339)
  --quadrant        - Quadrant glob, case-insensitive ("lang*")
  --ring            - Exact ring name, case-insensitive
  --new             - Only items flagged as new

Examples:
  # Everything in the namespace
  radar items

  # New items in the Adopt ring added this week, for jq
  radar items --ring adopt --new --since 7d -o jsonl

  # One item by short ID
  radar items 3f2a91`,
	Args: cobra.MaximumNArgs(1),
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().StringVarP(&itemsOutputFormat, "output", "o", string(report.FormatTable), "Output format: table, jsonl or json (list mode)")
	itemsCmd.Flags().StringVar(&itemsSince, "since", "", "Show items created after time (duration or RFC3339)")
	itemsCmd.Flags().StringVar(&itemsUntil, "until", "", "Show items created before time (duration or RFC3339)")
	itemsCmd.Flags().StringVar(&itemsQuadrant, "quadrant", "", "Filter by quadrant (glob pattern)")
	itemsCmd.Flags().StringVar(&itemsRing, "ring", "", "Filter by ring (exact match)")
	itemsCmd.Flags().BoolVar(&itemsNewOnly, "new", false, "Only items flagged as new")
	itemsCmd.Flags().BoolVar(&itemsDelete, "delete", false, "Delete the item (get mode only)")
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if itemsDelete {
			return printer.Error("missing item ID", "--delete needs an ITEM_ID.", []string{"radar items <ITEM_ID> --delete"})
		}

		format, err := report.ParseFormat(itemsOutputFormat)
		if err != nil {
			return printer.Error("invalid output format", err.Error(), []string{"Valid formats: table, jsonl, json"})
		}

		since, until, err := timespec.ParseRange(itemsSince, itemsUntil)
		if err != nil {
			return printer.Error("invalid time filter", err.Error(), nil)
		}

		criteria := &filter.Criteria{
			SinceTimestampMs: since,
			UntilTimestampMs: until,
			QuadrantGlob:     itemsQuadrant,
			Ring:             itemsRing,
			NewOnly:          itemsNewOnly,
		}

		client, err := connectStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		return listItems(ctx, client, criteria, format)
	}

	client, err := connectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	return getItem(ctx, client, args[0], itemsDelete)
}

func listItems(ctx context.Context, client *itemstore.Client, criteria *filter.Criteria, format report.Format) error {
	items, err := client.ListItems(ctx)
	if err != nil {
		return printer.Failure(fmt.Errorf("failed to list items: %w", err))
	}

	return report.FormatItems(printer.Out, criteria.Apply(items), client.Namespace(), format)
}

func getItem(ctx context.Context, client *itemstore.Client, shortID string, remove bool) error {
	id, err := resolver.ResolveItemID(ctx, client, shortID)
	if err != nil {
		if amb, ok := resolver.AsAmbiguous(err); ok {
			return printer.Error("ambiguous item ID", amb.Detail(), nil)
		}
		if resolver.IsNotFoundError(err) {
			return printer.ErrorWithContext(
				"item not found",
				err.Error(),
				map[string]string{"Namespace": client.Namespace()},
				[]string{"List items:\n  radar items"},
			)
		}
		return printer.Error("invalid item ID", err.Error(), nil)
	}

	if remove {
		if err := client.DeleteItem(ctx, id); err != nil {
			return printer.Failure(fmt.Errorf("failed to delete item %s: %w", id, err))
		}
		printer.Success("Deleted item %s\n", id)
		return nil
	}

	item, err := client.GetItem(ctx, id)
	if err != nil {
		return printer.Failure(fmt.Errorf("failed to read item %s: %w", id, err))
	}

	return report.FormatItemJSON(printer.Out, item)
}
