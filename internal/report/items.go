package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dyluth/radar/pkg/itemstore"
)

// FormatItems writes stored items as a table or JSONL.
func FormatItems(w io.Writer, items []*itemstore.Item, namespace string, format Format) error {
	switch format {
	case FormatTable:
		return itemsTable(w, items, namespace, time.Now())
	case FormatJSONL:
		return writeJSONL(w, items)
	case FormatJSON:
		if items == nil {
			items = []*itemstore.Item{}
		}
		return writeJSON(w, items)
	default:
		return fmt.Errorf("unsupported format for items: %s", format)
	}
}

// FormatItemJSON writes one item as pretty-printed JSON.
func FormatItemJSON(w io.Writer, item *itemstore.Item) error {
	return writeJSON(w, item)
}

func itemsTable(w io.Writer, items []*itemstore.Item, namespace string, now time.Time) error {
	if len(items) == 0 {
		fmt.Fprintf(w, "No items found in namespace '%s'\n", namespace)
		return nil
	}

	fmt.Fprintf(w, "Items in namespace '%s':\n\n", namespace)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			shortID(item.ID),
			item.Name,
			item.Ring,
			item.Quadrant,
			yesNo(item.IsNew),
			dash(item.Topic),
			age(item.CreatedAtMs, now),
		})
	}

	if err := writeTable(w, []string{"ID", "Name", "Ring", "Quadrant", "New", "Topic", "Age"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s found\n", plural(len(items), "item"))
	return nil
}
