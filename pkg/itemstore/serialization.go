package itemstore

import (
	"fmt"
	"strconv"
)

// ItemToHash converts an Item to a Redis hash.
func ItemToHash(i *Item) map[string]interface{} {
	return map[string]interface{}{
		"id":            i.ID,
		"name":          i.Name,
		"ring":          i.Ring,
		"quadrant":      i.Quadrant,
		"is_new":        strconv.FormatBool(i.IsNew),
		"topic":         i.Topic,
		"description":   i.Description,
		"created_at_ms": i.CreatedAtMs,
		"seq":           i.Seq,
	}
}

// HashToItem converts a Redis hash to an Item.
func HashToItem(hash map[string]string) (*Item, error) {
	isNew := false
	if raw := hash["is_new"]; raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid is_new field: %w", err)
		}
		isNew = parsed
	}

	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)
	seq, _ := strconv.ParseInt(hash["seq"], 10, 64)

	item := &Item{
		ID:          hash["id"],
		Name:        hash["name"],
		Ring:        hash["ring"],
		Quadrant:    hash["quadrant"],
		IsNew:       isNew,
		Topic:       hash["topic"],
		Description: hash["description"],
		CreatedAtMs: createdAtMs,
		Seq:         seq,
	}

	return item, nil
}
