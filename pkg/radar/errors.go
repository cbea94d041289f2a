package radar

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a MalformedDataError.
type ErrorKind string

const (
	// KindMissingHeaders indicates a required column is absent
	KindMissingHeaders ErrorKind = "MISSING_HEADERS"

	// KindEmptyOrInvalid indicates no rows, or a row missing a required field
	KindEmptyOrInvalid ErrorKind = "EMPTY_OR_INVALID"

	// KindTooManyRings indicates more distinct rings than the layout allocates
	KindTooManyRings ErrorKind = "TOO_MANY_RINGS"

	// KindTooManyQuadrants indicates more distinct quadrants than sectors
	KindTooManyQuadrants ErrorKind = "TOO_MANY_QUADRANTS"
)

// User-facing messages for each kind.
const (
	MessageMissingHeaders   = `Document is missing one or more required headers or they are misspelled. Check that your document contains headers for "name", "ring", "quadrant", "isNew", "description".`
	MessageMissingContent   = "Document is missing content."
	MessageTooManyRings     = "More than %d rings."
	MessageTooManyQuadrants = "More than %d quadrants."
	MessageSourceNotFound   = "Oops! We can't find the document you've entered. Can you check the location?"
)

// MalformedDataError reports source data that cannot be turned into a radar.
type MalformedDataError struct {
	Kind    ErrorKind
	Message string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewMalformedDataError creates a MalformedDataError of the given kind.
func NewMalformedDataError(kind ErrorKind, format string, a ...any) *MalformedDataError {
	return &MalformedDataError{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// SourceNotFoundError reports that the data source does not exist or is
// unreachable.
type SourceNotFoundError struct {
	Source string
	Err    error
}

func (e *SourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %q not found: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("source %q not found", e.Source)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// AsMalformed extracts a MalformedDataError from an error chain.
func AsMalformed(err error) (*MalformedDataError, bool) {
	var mde *MalformedDataError
	if errors.As(err, &mde) {
		return mde, true
	}
	return nil, false
}

// IsKind returns true if err is a MalformedDataError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	mde, ok := AsMalformed(err)
	return ok && mde.Kind == kind
}

// IsSourceNotFound returns true if err is a SourceNotFoundError.
func IsSourceNotFound(err error) bool {
	var snf *SourceNotFoundError
	return errors.As(err, &snf)
}
