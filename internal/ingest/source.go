// Package ingest converges the three ways of authoring a lexical record
// (manual form, dictionary lookup, JSON import) on one canonical record,
// validates it, and submits it to the catalog gateway.
package ingest

import "github.com/heartmarshall/myenglish-catalog/internal/domain"

// Source is the tagged input of the normalizer. The set of variants is closed:
// Manual, DictionaryFetch and JSONImport.
type Source interface {
	sourceKind() string
}

// Manual carries a record that is already in canonical shape.
type Manual struct {
	Record domain.LexicalRecord
}

// DictionaryFetch asks the dictionary adapter to prefill a record for Word.
type DictionaryFetch struct {
	Word string
}

// JSONImport carries the raw text of a canonical JSON document. Kind applies
// to documents that carry no kind of their own; empty means vocabulary.
type JSONImport struct {
	Text string
	Kind domain.RecordKind
}

func (Manual) sourceKind() string          { return "manual" }
func (DictionaryFetch) sourceKind() string { return "dictionaryFetch" }
func (JSONImport) sourceKind() string      { return "jsonImport" }

// SourceKind returns the wire name of the variant.
func SourceKind(src Source) string {
	if src == nil {
		return ""
	}
	return src.sourceKind()
}
