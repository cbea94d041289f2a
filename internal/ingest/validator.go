package ingest

import (
	"strings"

	"github.com/dyluth/radar/pkg/radar"
)

// RequiredColumns must be present in every source.
var RequiredColumns = []string{ColumnName, ColumnRing, ColumnQuadrant}

// ContentValidator checks a source's header shape and row content.
type ContentValidator struct {
	headers map[string]bool
}

// NewContentValidator creates a validator for the given column names.
func NewContentValidator(headers []string) *ContentValidator {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return &ContentValidator{headers: set}
}

// MissingHeaders returns the required columns the source does not have.
func (v *ContentValidator) MissingHeaders() []string {
	var missing []string
	for _, col := range RequiredColumns {
		if !v.headers[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// VerifyHeaders fails with KindMissingHeaders unless name, ring and quadrant
// are all present. Unrecognized columns are ignored.
func (v *ContentValidator) VerifyHeaders() error {
	if missing := v.MissingHeaders(); len(missing) > 0 {
		return radar.NewMalformedDataError(radar.KindMissingHeaders,
			"%s (missing: %s)", radar.MessageMissingHeaders, strings.Join(missing, ", "))
	}
	return nil
}

// VerifyContent fails with KindEmptyOrInvalid if there are no rows, or if a
// row lacks a name, ring or quadrant.
func (v *ContentValidator) VerifyContent(entries []radar.Entry) error {
	if len(entries) == 0 {
		return radar.NewMalformedDataError(radar.KindEmptyOrInvalid, "%s", radar.MessageMissingContent)
	}

	for i, e := range entries {
		var missing []string
		if e.Name == MissingName {
			missing = append(missing, ColumnName)
		}
		if e.Ring == "" {
			missing = append(missing, ColumnRing)
		}
		if e.Quadrant == "" {
			missing = append(missing, ColumnQuadrant)
		}
		if len(missing) > 0 {
			return radar.NewMalformedDataError(radar.KindEmptyOrInvalid,
				"%s Row %d is missing: %s.", radar.MessageMissingContent, i+1, strings.Join(missing, ", "))
		}
	}

	return nil
}
