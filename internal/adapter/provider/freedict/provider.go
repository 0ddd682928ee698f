// Package freedict looks words up in the public Free Dictionary API and maps
// the response onto a partial catalog record.
package freedict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

const retryDelay = 500 * time.Millisecond

// Provider fetches dictionary data from the Free Dictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Provider from the dictionary configuration.
func New(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchDictionary looks up a word. It returns nil, nil when the dictionary
// does not know the word. Any other failure is a *domain.FetchError.
func (p *Provider) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	resp, err := p.doWithRetry(ctx, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, &domain.FetchError{Word: word, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Word: word, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Word: word, Err: fmt.Errorf("read body: %w", err)}
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &domain.FetchError{Word: word, Err: fmt.Errorf("decode json: %w", err)}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	result := mapEntries(word, entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("types", len(result.Types)),
		slog.Int("examples", len(result.Examples)),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, word string) (*http.Response, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return p.httpClient.Do(req)
	}

	resp, err := do()
	shouldRetry := err != nil || resp.StatusCode >= 500
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, errors.Join(ctx.Err(), err)
	case <-time.After(retryDelay):
	}

	resp, err = do()
	if err == nil && resp.StatusCode >= 500 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp, err
}

// mapEntries merges all etymologies into one partial record. Definitions
// sharing a part of speech are grouped into one WordType; phonetic and audio
// take the first non-empty value; examples and synonyms are de-duplicated in
// order of appearance. Level and band are left for the editor.
func mapEntries(word string, entries []apiEntry) *domain.PartialRecord {
	result := &domain.PartialRecord{
		Headword: entries[0].Word,
		Examples: []string{},
		Synonyms: []string{},
		Types:    []domain.WordType{},
	}
	if result.Headword == "" {
		result.Headword = word
	}

	typeIdx := make(map[string]int)
	seenExample := make(map[string]struct{})
	seenSynonym := make(map[string]struct{})

	addSynonyms := func(list []string) {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if _, ok := seenSynonym[s]; ok {
				continue
			}
			seenSynonym[s] = struct{}{}
			result.Synonyms = append(result.Synonyms, s)
		}
	}

	for _, entry := range entries {
		if result.Phonetic == nil && entry.Phonetic != "" {
			ph := entry.Phonetic
			result.Phonetic = &ph
		}
		for _, ph := range entry.Phonetics {
			if result.Phonetic == nil && ph.Text != "" {
				text := ph.Text
				result.Phonetic = &text
			}
			if result.AudioURL == nil && ph.Audio != "" {
				audio := ph.Audio
				result.AudioURL = &audio
			}
		}

		for _, m := range entry.Meanings {
			pos := strings.TrimSpace(m.PartOfSpeech)
			idx, ok := typeIdx[pos]
			if !ok {
				idx = len(result.Types)
				typeIdx[pos] = idx
				result.Types = append(result.Types, domain.WordType{PartOfSpeech: pos, Meanings: []string{}})
			}
			for _, def := range m.Definitions {
				if d := strings.TrimSpace(def.Definition); d != "" {
					result.Types[idx].Meanings = append(result.Types[idx].Meanings, d)
				}
				if ex := strings.TrimSpace(def.Example); ex != "" {
					if _, seen := seenExample[ex]; !seen {
						seenExample[ex] = struct{}{}
						result.Examples = append(result.Examples, ex)
					}
				}
				addSynonyms(def.Synonyms)
			}
			addSynonyms(m.Synonyms)
		}
	}

	return result
}
