package ingest

import (
	"sort"
	"strings"

	"github.com/dyluth/radar/pkg/radar"
)

// MissingName replaces a blank or absent name so the validator can flag the row.
const MissingName = "<missing name>"

// Recognized column names, lower-cased.
const (
	ColumnName        = "name"
	ColumnRing        = "ring"
	ColumnQuadrant    = "quadrant"
	ColumnIsNew       = "isnew"
	ColumnTopic       = "topic"
	ColumnDescription = "description"
)

// RawRow is one untyped source row keyed by column name. An absent key means
// the value is missing.
type RawRow map[string]string

// get looks a column up case-insensitively and trims the value. An exact
// key wins; otherwise the lowest matching key in sort order is used, so rows
// with columns differing only by case resolve the same way every time.
func (r RawRow) get(column string) (string, bool) {
	if v, ok := r[column]; ok {
		return strings.TrimSpace(v), true
	}

	var matches []string
	for k := range r {
		if strings.EqualFold(strings.TrimSpace(k), column) {
			matches = append(matches, k)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return strings.TrimSpace(r[matches[0]]), true
}

// Sanitize normalizes one raw row into a canonical entry. It never fails:
// a missing name is replaced with MissingName and left for the validator.
func Sanitize(raw RawRow) radar.Entry {
	name, _ := raw.get(ColumnName)
	if name == "" {
		name = MissingName
	}

	ring, _ := raw.get(ColumnRing)
	quadrant, _ := raw.get(ColumnQuadrant)
	isNew, _ := raw.get(ColumnIsNew)
	topic, _ := raw.get(ColumnTopic)
	description, _ := raw.get(ColumnDescription)

	return radar.Entry{
		Name:        name,
		Ring:        ring,
		Quadrant:    quadrant,
		IsNew:       parseBool(isNew),
		Topic:       topic,
		Description: description,
	}
}

// SanitizeAll sanitizes a batch, preserving order.
func SanitizeAll(rows []RawRow) []radar.Entry {
	entries := make([]radar.Entry, 0, len(rows))
	for _, raw := range rows {
		entries = append(entries, Sanitize(raw))
	}
	return entries
}

// parseBool accepts any case of "true"; everything else is false.
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
