package source

import (
	"context"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/pkg/radar"
)

// Store reads every item in an item store namespace.
type Store struct {
	Client ItemLister
}

// Fetch implements Fetcher. A store that cannot be reached is reported as
// not found.
func (s *Store) Fetch(ctx context.Context) (*Batch, error) {
	items, err := s.Client.ListItems(ctx)
	if err != nil {
		return nil, &radar.SourceNotFoundError{Source: "store:" + s.Client.Namespace(), Err: err}
	}

	rows := make([]ingest.RawRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow(item))
	}

	return &Batch{Name: s.Client.Namespace(), Headers: ItemHeaders, Rows: rows}, nil
}
