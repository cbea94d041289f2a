package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dyluth/radar/pkg/radar"
)

// File reads a delimited document from disk.
type File struct {
	Path      string
	Delimiter rune
}

// Fetch implements Fetcher.
func (f *File) Fetch(ctx context.Context) (*Batch, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &radar.SourceNotFoundError{Source: f.Path, Err: err}
		}
		return nil, fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer file.Close()

	delim := f.Delimiter
	if delim == 0 {
		delim = DefaultDelimiter
	}

	return parseDelimited(documentName(f.Path), file, delim)
}
