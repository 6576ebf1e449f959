package domain

import (
	"errors"
	"fmt"
)

var ErrCountryNotFound = errors.New("country not found")

// Source tags which external collaborator a failure came from.
type Source string

const (
	SourceCountries Source = "countries"
	SourceExchange  Source = "exchange"
)

// SourceUnavailableError classifies any transport failure or structurally
// unusable payload from one of the two external sources. Raw transport
// details stay wrapped, only the source tag travels upward.
type SourceUnavailableError struct {
	Source Source
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// PersistenceError means the transactional upsert failed. It always comes
// with a completed rollback: readers never observe a partial batch.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PublishError means snapshot rendering or the artifact write failed after a
// successful commit. The refresh's data outcome stands; the prior artifact
// remains until a later publish succeeds.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("snapshot publish failed: %v", e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
