package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

type dictionaryFetcher interface {
	FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error)
}

// Result is a normalized draft. NeedsReview marks drafts that came from the
// dictionary and must be confirmed by the user before they are submitted.
type Result struct {
	Record      domain.LexicalRecord
	NeedsReview bool
}

// Normalizer turns any Source into a canonical record draft.
type Normalizer struct {
	fetcher dictionaryFetcher
}

// NewNormalizer creates a Normalizer. fetcher may be nil when dictionary
// lookups are not available; DictionaryFetch sources then fail with a FetchError.
func NewNormalizer(fetcher dictionaryFetcher) *Normalizer {
	return &Normalizer{fetcher: fetcher}
}

// Normalize converts src into the canonical shape. It performs no validation.
func (n *Normalizer) Normalize(ctx context.Context, src Source) (Result, error) {
	switch s := src.(type) {
	case Manual:
		rec := s.Record.Clone()
		rec.ApplyDefaults()
		return Result{Record: rec}, nil

	case DictionaryFetch:
		rec, err := n.prefill(ctx, s.Word)
		if err != nil {
			return Result{}, err
		}
		return Result{Record: rec, NeedsReview: true}, nil

	case JSONImport:
		kind := s.Kind
		if kind == "" {
			kind = domain.RecordKindVocabulary
		}
		rec, err := ParseRecordJSONFor(s.Text, kind)
		if err != nil {
			return Result{}, err
		}
		return Result{Record: rec}, nil

	default:
		return Result{}, fmt.Errorf("ingest: unsupported source %T", src)
	}
}

// ParseRecordJSONFor decodes a canonical JSON document. Syntax errors are
// reported as *domain.JSONParseError carrying the decoder message. A document
// without a kind takes kind.
func ParseRecordJSONFor(text string, kind domain.RecordKind) (domain.LexicalRecord, error) {
	var rec domain.LexicalRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return domain.LexicalRecord{}, &domain.JSONParseError{Message: err.Error()}
	}
	if rec.Kind == "" {
		rec.Kind = kind
	}
	rec.ApplyDefaults()
	return rec, nil
}

func (n *Normalizer) prefill(ctx context.Context, word string) (domain.LexicalRecord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return domain.LexicalRecord{}, domain.NewValidationError("headword", "required")
	}
	if n.fetcher == nil {
		return domain.LexicalRecord{}, &domain.FetchError{Word: word}
	}

	partial, err := n.fetcher.FetchDictionary(ctx, word)
	if err != nil {
		return domain.LexicalRecord{}, &domain.FetchError{Word: word, Err: err}
	}
	if partial == nil {
		return domain.LexicalRecord{}, &domain.FetchError{Word: word, Err: domain.ErrNotFound}
	}

	return fromPartial(word, partial), nil
}

// fromPartial maps a dictionary result onto canonical defaults.
func fromPartial(word string, p *domain.PartialRecord) domain.LexicalRecord {
	rec := domain.LexicalRecord{
		Kind:     domain.RecordKindVocabulary,
		Headword: p.Headword,
		Level:    domain.LevelIntermediate,
		Examples: append([]string(nil), p.Examples...),
		Synonyms: append([]string(nil), p.Synonyms...),
	}
	if rec.Headword == "" {
		rec.Headword = word
	}
	if p.Phonetic != nil {
		rec.Phonetic = *p.Phonetic
	}
	if p.AudioURL != nil {
		rec.AudioURL = *p.AudioURL
	}
	if p.Level != nil && p.Level.IsValid() {
		rec.Level = *p.Level
	}
	band := domain.DefaultBand
	if p.Band != nil {
		band = *p.Band
	}
	rec.Band = &band
	for _, t := range p.Types {
		rec.Types = append(rec.Types, domain.WordType{
			PartOfSpeech: t.PartOfSpeech,
			Meanings:     append([]string(nil), t.Meanings...),
		})
	}
	rec.ApplyDefaults()
	return rec
}
