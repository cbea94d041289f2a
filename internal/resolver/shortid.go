// Package resolver expands short item ID prefixes to full UUIDs.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/radar/pkg/itemstore"
	"github.com/google/uuid"
)

// MinShortIDLength is the shortest prefix accepted.
const MinShortIDLength = 6

// maxListedMatches caps the IDs shown for an ambiguous prefix.
const maxListedMatches = 10

// ItemFinder is the subset of the item store the resolver needs.
type ItemFinder interface {
	ItemExists(ctx context.Context, itemID string) (bool, error)
	ScanItemIDs(ctx context.Context, prefix string) ([]string, error)
}

// ResolveItemID resolves a full UUID or a unique prefix of at least
// MinShortIDLength characters to a stored item's ID.
func ResolveItemID(ctx context.Context, store ItemFinder, shortID string) (string, error) {
	shortID = strings.ToLower(strings.TrimSpace(shortID))

	if _, err := uuid.Parse(shortID); err == nil && len(shortID) == 36 {
		exists, err := store.ItemExists(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("failed to verify item existence: %w", err)
		}
		if !exists {
			return "", &NotFoundError{ShortID: shortID}
		}
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	matches, err := store.ScanItemIDs(ctx, shortID)
	if err != nil {
		return "", fmt.Errorf("failed to search for item: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no item matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no items found matching '%s'", e.ShortID)
}

// AmbiguousError indicates several items matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d items", e.ShortID, len(e.Matches))
}

// Detail lists the matching IDs for display.
func (e *AmbiguousError) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous short ID '%s' matches %d items:\n", e.ShortID, len(e.Matches))

	shown := e.Matches
	if len(shown) > maxListedMatches {
		shown = shown[:maxListedMatches]
	}
	for _, id := range shown {
		fmt.Fprintf(&b, "  %s\n", id)
	}
	if extra := len(e.Matches) - len(shown); extra > 0 {
		fmt.Fprintf(&b, "  ...and %d more\n", extra)
	}

	b.WriteString("\nUse a longer prefix to identify the item.")
	return b.String()
}

// IsNotFoundError checks if an error chain contains a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AsAmbiguous extracts an AmbiguousError from an error chain.
func AsAmbiguous(err error) (*AmbiguousError, bool) {
	var amb *AmbiguousError
	ok := errors.As(err, &amb)
	return amb, ok
}

var _ ItemFinder = (*itemstore.Client)(nil)
