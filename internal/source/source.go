// Package source fetches raw radar rows from delimited files, URLs, a JSON
// items API or the item store.
//
// Every fetcher returns the document's header list untouched; header and
// content checks belong to the pipeline. A source that does not exist or
// cannot be reached is reported as a *radar.SourceNotFoundError.
package source

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/pkg/itemstore"
)

// Source kinds accepted by New.
const (
	KindFile  = "file"
	KindURL   = "url"
	KindAPI   = "api"
	KindStore = "store"
)

// ItemHeaders is the header list for sources that yield structured items.
var ItemHeaders = []string{"name", "ring", "quadrant", "isNew", "topic", "description"}

// Batch is one fetched document.
type Batch struct {
	Name    string // document name, used as the default radar title
	Headers []string
	Rows    []ingest.RawRow
}

// Fetcher retrieves one batch of rows.
type Fetcher interface {
	Fetch(ctx context.Context) (*Batch, error)
}

// ItemLister is the subset of the item store used by Store.
type ItemLister interface {
	ListItems(ctx context.Context) ([]*itemstore.Item, error)
	Namespace() string
}

// New selects a fetcher by kind. delimiter applies to file and url sources
// and must be a single character. store is only required for the store kind.
func New(kind, location, delimiter string, store ItemLister) (Fetcher, error) {
	switch kind {
	case KindFile, KindURL:
		if location == "" {
			return nil, fmt.Errorf("%s source requires a location", kind)
		}
		delim, err := parseDelimiter(delimiter)
		if err != nil {
			return nil, err
		}
		if kind == KindFile {
			return &File{Path: location, Delimiter: delim}, nil
		}
		return &URL{URL: location, Delimiter: delim}, nil
	case KindAPI:
		if location == "" {
			return nil, fmt.Errorf("api source requires a base URL")
		}
		return &API{BaseURL: location}, nil
	case KindStore:
		if store == nil {
			return nil, fmt.Errorf("store source requires an item store client")
		}
		return &Store{Client: store}, nil
	default:
		return nil, fmt.Errorf("unknown source kind '%s' (must be 'file', 'url', 'api' or 'store')", kind)
	}
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return DefaultDelimiter, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// itemRow converts a stored or fetched item into a raw row.
func itemRow(item *itemstore.Item) ingest.RawRow {
	isNew := "false"
	if item.IsNew {
		isNew = "true"
	}
	return ingest.RawRow{
		"name":        item.Name,
		"ring":        item.Ring,
		"quadrant":    item.Quadrant,
		"isNew":       isNew,
		"topic":       item.Topic,
		"description": item.Description,
	}
}
