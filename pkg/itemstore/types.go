package itemstore

import (
	"fmt"
	"time"

	"github.com/dyluth/radar/pkg/radar"
	"github.com/google/uuid"
)

// Item is one stored radar row.
type Item struct {
	ID          string `json:"id"`            // UUID
	Name        string `json:"name"`          // Blip name
	Ring        string `json:"ring"`          // Ring name as written in the source
	Quadrant    string `json:"quadrant"`      // Quadrant name as written in the source
	IsNew       bool   `json:"isNew"`         // Freshness flag
	Topic       string `json:"topic"`         // Optional grouping, may be empty
	Description string `json:"description"`   // Free text
	CreatedAtMs int64  `json:"created_at_ms"` // Unix timestamp in milliseconds
	Seq         int64  `json:"seq"`           // Namespace write order, assigned by CreateItem
}

// NewItem creates an item from a canonical entry with a fresh ID and timestamp.
func NewItem(e radar.Entry) *Item {
	return &Item{
		ID:          uuid.New().String(),
		Name:        e.Name,
		Ring:        e.Ring,
		Quadrant:    e.Quadrant,
		IsNew:       e.IsNew,
		Topic:       e.Topic,
		Description: e.Description,
		CreatedAtMs: time.Now().UnixMilli(),
	}
}

// Entry converts the item back into a canonical entry.
func (i *Item) Entry() radar.Entry {
	return radar.Entry{
		Name:        i.Name,
		Ring:        i.Ring,
		Quadrant:    i.Quadrant,
		IsNew:       i.IsNew,
		Topic:       i.Topic,
		Description: i.Description,
	}
}

// Validate checks if the Item has valid field values.
func (i *Item) Validate() error {
	if !isValidUUID(i.ID) {
		return fmt.Errorf("invalid item ID: not a valid UUID")
	}

	if i.Name == "" {
		return fmt.Errorf("item name cannot be empty")
	}

	if i.Ring == "" {
		return fmt.Errorf("item ring cannot be empty")
	}

	if i.Quadrant == "" {
		return fmt.Errorf("item quadrant cannot be empty")
	}

	return nil
}

// isValidUUID checks if a string is a valid UUID format.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
