package radar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one canonical input record, as produced by the ingestion sanitizer.
type Entry struct {
	Name        string `json:"name"`
	Ring        string `json:"ring"`
	Quadrant    string `json:"quadrant"`
	IsNew       bool   `json:"isNew"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
}

// QuadrantKey returns the case-normalized identity of a quadrant name.
func QuadrantKey(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	// Casers are stateful and must not be shared across goroutines.
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// DiscoverRings returns the distinct ring names in first-seen order.
// It fails with KindTooManyRings as soon as more than maxRings are seen.
func DiscoverRings(entries []Entry, maxRings int) ([]*Ring, error) {
	seen := make(map[string]bool)
	var rings []*Ring
	for _, e := range entries {
		if seen[e.Ring] {
			continue
		}
		if len(rings) == maxRings {
			return nil, NewMalformedDataError(KindTooManyRings, MessageTooManyRings, maxRings)
		}
		seen[e.Ring] = true
		rings = append(rings, &Ring{Name: e.Ring, Order: len(rings)})
	}
	return rings, nil
}

// Build assembles a Radar from validated entries. Entries are expected to
// have passed header and content validation; ring and quadrant ceilings are
// enforced here because they depend on what is discovered while building.
func Build(entries []Entry, maxRings int) (*Radar, error) {
	if maxRings < 1 {
		return nil, fmt.Errorf("max rings must be >= 1, got %d", maxRings)
	}

	rings, err := DiscoverRings(entries, maxRings)
	if err != nil {
		return nil, err
	}

	r := NewRadar()
	for _, ring := range rings {
		if err := r.AddRing(ring); err != nil {
			return nil, fmt.Errorf("failed to register ring: %w", err)
		}
	}

	byKey := make(map[string]*Quadrant)
	for _, e := range entries {
		key := QuadrantKey(e.Quadrant)
		q, ok := byKey[key]
		if !ok {
			if len(byKey) == MaxQuadrants {
				return nil, NewMalformedDataError(KindTooManyQuadrants, MessageTooManyQuadrants, MaxQuadrants)
			}
			q = &Quadrant{Name: Capitalize(e.Quadrant), Key: key}
			if err := r.AddQuadrant(q); err != nil {
				return nil, fmt.Errorf("failed to register quadrant: %w", err)
			}
			byKey[key] = q
		}

		ring, ok := r.Ring(e.Ring)
		if !ok {
			panic(fmt.Sprintf("radar: ring %q referenced by %q was not discovered", e.Ring, e.Name))
		}

		q.Add(&Blip{
			Name:        e.Name,
			Ring:        ring,
			IsNew:       e.IsNew,
			Topic:       e.Topic,
			Description: e.Description,
		})
	}

	return r, nil
}
