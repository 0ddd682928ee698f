package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// FetchDictionary returns a partial record for word from the upstream
// dictionary. An unknown word is domain.ErrNotFound; upstream failures keep
// their *domain.FetchError.
func (s *Service) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	partial, err := s.dict.FetchDictionary(ctx, word)
	if err != nil {
		return nil, err
	}
	if partial == nil {
		return nil, fmt.Errorf("word %q: %w", word, domain.ErrNotFound)
	}
	return partial, nil
}
