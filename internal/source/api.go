package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/pkg/itemstore"
)

// API reads items from a JSON endpoint at {BaseURL}/items. The payload is an
// array of objects with name, ring, quadrant, isNew, topic and description.
type API struct {
	BaseURL string
	Client  *http.Client
}

// apiItem tolerates isNew encoded as a bool or a string.
type apiItem struct {
	Name        string          `json:"name"`
	Ring        string          `json:"ring"`
	Quadrant    string          `json:"quadrant"`
	IsNew       json.RawMessage `json:"isNew"`
	Topic       string          `json:"topic"`
	Description string          `json:"description"`
}

// Fetch implements Fetcher.
func (a *API) Fetch(ctx context.Context) (*Batch, error) {
	target := strings.TrimSuffix(a.BaseURL, "/") + "/items"

	resp, err := get(ctx, a.Client, target)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload []apiItem
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode items from %s: %w", target, err)
	}

	rows := make([]ingest.RawRow, 0, len(payload))
	for _, p := range payload {
		rows = append(rows, itemRow(&itemstore.Item{
			Name:        p.Name,
			Ring:        p.Ring,
			Quadrant:    p.Quadrant,
			IsNew:       parseFlag(p.IsNew),
			Topic:       p.Topic,
			Description: p.Description,
		}))
	}

	return &Batch{Name: urlName(a.BaseURL), Headers: ItemHeaders, Rows: rows}, nil
}

func parseFlag(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}
