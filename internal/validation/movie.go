// Package validation holds the pure field-level rules applied to movie
// payloads before anything is persisted. Every rule is conditional on the
// field being present, so partial-update payloads only pay for what they
// carry. The first failing rule aborts with a FieldError naming the field
// and the violated constraint.
package validation

import (
	"fmt"
	"time"
)

// FieldError describes a single violated field constraint. It is surfaced
// to API clients verbatim, so messages name the rule in plain language.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MovieFields carries the optional fields of a create or update payload.
// Nil means the field is absent and its rule is skipped.
type MovieFields struct {
	Title        *string
	EpisodeID    *int
	OpeningCrawl *string
	Director     *string
	Producer     *string
	ReleaseDate  *time.Time
}

// Movie checks every present field against its constraint and returns the
// first violation, or nil when the payload is acceptable.
func Movie(f MovieFields) error {
	if f.Title != nil {
		if n := len(*f.Title); n < 3 || n > 100 {
			return &FieldError{"title", "must be between 3 and 100 characters"}
		}
	}
	if f.EpisodeID != nil {
		if *f.EpisodeID <= 0 {
			return &FieldError{"episodeId", "must be greater than 0"}
		}
		if *f.EpisodeID > 100 {
			return &FieldError{"episodeId", "cannot be greater than 100"}
		}
	}
	if f.ReleaseDate != nil {
		if f.ReleaseDate.IsZero() {
			return &FieldError{"releaseDate", "invalid release date format"}
		}
		if f.ReleaseDate.After(time.Now()) {
			return &FieldError{"releaseDate", "cannot be in the future"}
		}
	}
	if f.OpeningCrawl != nil {
		if n := len(*f.OpeningCrawl); n < 10 || n > 1000 {
			return &FieldError{"openingCrawl", "must be between 10 and 1000 characters"}
		}
	}
	if f.Director != nil && len(*f.Director) < 2 {
		return &FieldError{"director", "must be at least 2 characters long"}
	}
	if f.Producer != nil && len(*f.Producer) < 2 {
		return &FieldError{"producer", "must be at least 2 characters long"}
	}
	return nil
}
