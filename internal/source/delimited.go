package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dyluth/radar/internal/ingest"
)

// DefaultDelimiter separates fields in radar documents.
const DefaultDelimiter = '|'

// parseDelimited reads a header row followed by data rows. An empty document
// yields a batch with no headers so the validator can report it.
func parseDelimited(name string, r io.Reader, delim rune) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	batch := &Batch{Name: name}

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return batch, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	batch.Headers = headers

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(ingest.RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		batch.Rows = append(batch.Rows, row)
	}

	return batch, nil
}

// documentName derives a title from a path or URL path: the base name
// without its extension.
func documentName(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
