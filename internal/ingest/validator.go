package ingest

import (
	"math"
	"strings"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// Validate checks a canonical record. Checks run in a fixed order and stop at
// the first failure, which is reported as a single-field *domain.ValidationError.
// The record is never modified.
func Validate(r domain.LexicalRecord) error {
	if !r.Kind.IsValid() {
		return domain.NewValidationError("kind", "must be vocabulary or expression")
	}

	if strings.TrimSpace(r.Headword) == "" {
		return domain.NewValidationError("headword", "required")
	}
	if r.Kind == domain.RecordKindExpression && strings.TrimSpace(r.Meaning) == "" {
		return domain.NewValidationError("meaning", "required")
	}

	if r.Band == nil {
		if r.Kind == domain.RecordKindVocabulary {
			return domain.NewValidationError("band", "required")
		}
	} else if !validBand(*r.Band) {
		return domain.NewValidationError("band", "must be between 1.0 and 9.0 in steps of 0.5")
	}

	if !r.Level.IsValid() {
		return domain.NewValidationError("level", "must be one of beginner, intermediate, advanced")
	}

	if !hasNonEmpty(r.Examples) {
		return domain.NewValidationError("examples", "at least one example required")
	}

	if !hasNonEmpty(r.Topics) {
		return domain.NewValidationError("topics", "at least one topic required")
	}

	return nil
}

func validBand(b float64) bool {
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return false
	}
	if b < domain.MinBand || b > domain.MaxBand {
		return false
	}
	steps := b / domain.BandStep
	return steps == math.Trunc(steps)
}

func hasNonEmpty(items []string) bool {
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
