package domain

import (
	"time"

	"github.com/google/uuid"
)

// Band limits and defaults.
const (
	MinBand     = 1.0
	MaxBand     = 9.0
	BandStep    = 0.5
	DefaultBand = 6.0
)

// LexicalRecord is the canonical shape of a vocabulary or expression entry.
// All ingestion methods converge on it before validation.
type LexicalRecord struct {
	ID           uuid.UUID  `json:"id,omitempty"`
	Kind         RecordKind `json:"kind"`
	Headword     string     `json:"headword"`
	Phonetic     string     `json:"phonetic"`
	AudioURL     string     `json:"audioUrl"`
	Meaning      string     `json:"meaning"`
	Band         *float64   `json:"band,omitempty"`
	Level        Level      `json:"level"`
	Examples     []string   `json:"examples"`
	Synonyms     []string   `json:"synonyms"`
	RelatedWords []string   `json:"relatedWords"`
	Topics       []string   `json:"topics"`
	Types        []WordType `json:"types"`
	CreatedAt    time.Time  `json:"createdAt,omitzero"`
	UpdatedAt    time.Time  `json:"updatedAt,omitzero"`
}

// WordType groups meanings under a part of speech.
type WordType struct {
	PartOfSpeech string   `json:"partOfSpeech"`
	Meanings     []string `json:"meanings"`
}

// ApplyDefaults fills omitted optional fields with their canonical empty values.
func (r *LexicalRecord) ApplyDefaults() {
	if r.Kind == "" {
		r.Kind = RecordKindVocabulary
	}
	if r.Examples == nil {
		r.Examples = []string{}
	}
	if r.Synonyms == nil {
		r.Synonyms = []string{}
	}
	if r.RelatedWords == nil {
		r.RelatedWords = []string{}
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	if r.Types == nil {
		r.Types = []WordType{}
	}
	for i := range r.Types {
		if r.Types[i].Meanings == nil {
			r.Types[i].Meanings = []string{}
		}
	}
}

// Clone returns a deep copy so callers can hand records across layers safely.
func (r LexicalRecord) Clone() LexicalRecord {
	out := r
	if r.Band != nil {
		b := *r.Band
		out.Band = &b
	}
	out.Examples = cloneStrings(r.Examples)
	out.Synonyms = cloneStrings(r.Synonyms)
	out.RelatedWords = cloneStrings(r.RelatedWords)
	out.Topics = cloneStrings(r.Topics)
	if r.Types != nil {
		out.Types = make([]WordType, len(r.Types))
		for i, t := range r.Types {
			out.Types[i] = WordType{PartOfSpeech: t.PartOfSpeech, Meanings: cloneStrings(t.Meanings)}
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// PartialRecord is the best-effort result of a dictionary lookup.
// Nil pointers mark fields the dictionary did not provide.
type PartialRecord struct {
	Headword string     `json:"headword"`
	Phonetic *string    `json:"phonetic,omitempty"`
	AudioURL *string    `json:"audioUrl,omitempty"`
	Level    *Level     `json:"level,omitempty"`
	Band     *float64   `json:"band,omitempty"`
	Examples []string   `json:"examples,omitempty"`
	Synonyms []string   `json:"synonyms,omitempty"`
	Types    []WordType `json:"types,omitempty"`
}

// SubmitMethod is how a record body is carried to the gateway.
type SubmitMethod string

const (
	SubmitMethodManual SubmitMethod = "manual"
	SubmitMethodJSON   SubmitMethod = "json"
)

// RecordPayload mirrors the create/update request body.
type RecordPayload struct {
	Method SubmitMethod   `json:"method"`
	Data   *LexicalRecord `json:"data,omitempty"`
	JSON   string         `json:"json,omitempty"`
}
