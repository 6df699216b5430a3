package domain

import (
	"errors"
	"fmt"
)

// ErrDegenerateCorpus reports that normalization bounds collapsed to a single
// value (or no non-zero abundance exists), so every present element maps to
// full intensity.
var ErrDegenerateCorpus = errors.New("abundance corpus is degenerate")

// ErrNoSnapshot is returned by a SnapshotStore that has never been saved to.
var ErrNoSnapshot = errors.New("no catalog snapshot stored")

// ParseError is returned for malformed nuclide identifiers and non-numeric
// half-life fields.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// LookupMiss is returned when no catalog record matches a key.
type LookupMiss struct {
	Entity EntityType
	Key    string
}

func (e *LookupMiss) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsLookupMiss reports whether err wraps a *LookupMiss.
func IsLookupMiss(err error) bool {
	var lm *LookupMiss
	return errors.As(err, &lm)
}
