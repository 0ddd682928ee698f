package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/errclass"
	"github.com/heartmarshall/myenglish-catalog/internal/ingest"
)

// recordFlags are the manual form fields. Only flags that were set are
// applied, so the same set serves both add and edit.
type recordFlags struct {
	kind     string
	headword string
	phonetic string
	audio    string
	meaning  string
	band     float64
	level    string
	examples []string
	synonyms []string
	related  []string
	topics   []string
	types    []string
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.kind, "kind", string(domain.RecordKindVocabulary), "record kind: vocabulary or expression")
	fs.StringVar(&f.headword, "headword", "", "word or expression")
	fs.StringVar(&f.phonetic, "phonetic", "", "IPA transcription")
	fs.StringVar(&f.audio, "audio", "", "pronunciation audio URL")
	fs.StringVar(&f.meaning, "meaning", "", "meaning (required for expressions)")
	fs.Float64Var(&f.band, "band", domain.DefaultBand, "band score 1.0-9.0 in steps of 0.5")
	fs.StringVar(&f.level, "level", string(domain.LevelIntermediate), "beginner, intermediate or advanced")
	fs.StringArrayVar(&f.examples, "example", nil, "usage example (repeatable)")
	fs.StringArrayVar(&f.synonyms, "synonym", nil, "synonym (repeatable)")
	fs.StringArrayVar(&f.related, "related", nil, "related word (repeatable)")
	fs.StringArrayVar(&f.topics, "topic", nil, "topic (repeatable)")
	fs.StringArrayVar(&f.types, "type", nil, `part of speech with meanings, e.g. "adjective:able to recover;tough" (repeatable)`)
}

// apply copies the changed flags onto rec. With all set to true every flag
// is applied, defaults included.
func (f *recordFlags) apply(cmd *cobra.Command, rec *domain.LexicalRecord, all bool) error {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("kind") {
		rec.Kind = domain.RecordKind(f.kind)
	}
	if set("headword") {
		rec.Headword = f.headword
	}
	if set("phonetic") {
		rec.Phonetic = f.phonetic
	}
	if set("audio") {
		rec.AudioURL = f.audio
	}
	if set("meaning") {
		rec.Meaning = f.meaning
	}
	if set("level") {
		rec.Level = domain.Level(f.level)
	}
	if set("band") && rec.Kind != domain.RecordKindExpression {
		b := f.band
		rec.Band = &b
	}
	if set("example") {
		rec.Examples = f.examples
	}
	if set("synonym") {
		rec.Synonyms = f.synonyms
	}
	if set("related") {
		rec.RelatedWords = f.related
	}
	if set("topic") {
		rec.Topics = f.topics
	}
	if set("type") {
		types, err := parseTypes(f.types)
		if err != nil {
			return err
		}
		rec.Types = types
	}
	return nil
}

// parseTypes reads "pos:meaning;meaning" pairs.
func parseTypes(raw []string) ([]domain.WordType, error) {
	out := make([]domain.WordType, 0, len(raw))
	for _, r := range raw {
		pos, meanings, ok := strings.Cut(r, ":")
		pos = strings.TrimSpace(pos)
		if !ok || pos == "" {
			return nil, fmt.Errorf("--type %q: want part-of-speech:meaning;meaning", r)
		}
		wt := domain.WordType{PartOfSpeech: pos, Meanings: []string{}}
		for _, m := range strings.Split(meanings, ";") {
			if m = strings.TrimSpace(m); m != "" {
				wt.Meanings = append(wt.Meanings, m)
			}
		}
		out = append(out, wt)
	}
	return out, nil
}

func parseBoard(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("--board: %w", err)
	}
	return &id, nil
}

func parseKind(raw string) (domain.RecordKind, error) {
	k := domain.RecordKind(raw)
	if !k.IsValid() {
		return "", fmt.Errorf("--kind %q: want vocabulary or expression", raw)
	}
	return k, nil
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func newAddCmd(load envLoader) *cobra.Command {
	var (
		flags recordFlags
		board string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a record from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			boardID, err := parseBoard(board)
			if err != nil {
				return err
			}

			var rec domain.LexicalRecord
			if err := flags.apply(cmd, &rec, true); err != nil {
				return err
			}

			form := ingest.NewCreateForm(e.pipeline(), e.classifier())
			form.SetSource(ingest.Manual{Record: rec})
			form.SetBoard(boardID)
			return submit(cmd, form)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&board, "board", "", "board id to link the new record to")
	return cmd
}

func newFetchCmd(load envLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch WORD",
		Short: "Prefill a vocabulary record from the dictionary and print it for review",
		Long: `Looks WORD up in the dictionary and prints the prefilled record as JSON.
Nothing is saved: review the draft, then submit it with "catalogctl import".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			form := ingest.NewCreateForm(e.pipeline(), e.classifier())
			form.SetSource(ingest.DictionaryFetch{Word: args[0]})
			return submit(cmd, form)
		},
	}
}

func newImportCmd(load envLoader) *cobra.Command {
	var board, kind string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a record from a JSON document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			boardID, err := parseBoard(board)
			if err != nil {
				return err
			}
			var k domain.RecordKind
			if kind != "" {
				if k, err = parseKind(kind); err != nil {
					return err
				}
			}
			text, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}

			form := ingest.NewCreateForm(e.pipeline(), e.classifier())
			form.SetSource(ingest.JSONImport{Text: text, Kind: k})
			form.SetBoard(boardID)
			return submit(cmd, form)
		},
	}
	cmd.Flags().StringVar(&board, "board", "", "board id to link the new record to")
	cmd.Flags().StringVar(&kind, "kind", "", "kind for a document without one (default vocabulary)")
	return cmd
}

func newEditCmd(load envLoader) *cobra.Command {
	var (
		flags recordFlags
		file  string
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update a record from flags or a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("id: %w", err)
			}
			kind, err := parseKind(flags.kind)
			if err != nil {
				return err
			}

			current, err := e.gateway.GetRecord(cmd.Context(), kind, id)
			if err != nil {
				return failureError(e.classifier().Classify(err))
			}

			form := ingest.NewEditForm(e.pipeline(), e.classifier(), *current)
			if file != "" {
				text, err := readDocument(cmd, file)
				if err != nil {
					return err
				}
				form.SetSource(ingest.JSONImport{Text: text})
			} else {
				rec := current.Clone()
				if err := flags.apply(cmd, &rec, false); err != nil {
					return err
				}
				form.SetSource(ingest.Manual{Record: rec})
			}
			return submit(cmd, form)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&file, "file", "", "JSON document replacing the record (- reads stdin)")
	return cmd
}

func newDeleteCmd(load envLoader) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record and its board memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("id: %w", err)
			}
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			if err := e.pipeline().Delete(cmd.Context(), k, id); err != nil {
				return failureError(e.classifier().Classify(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.RecordKindVocabulary), "record kind: vocabulary or expression")
	return cmd
}

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

func submit(cmd *cobra.Command, form *ingest.Form) error {
	out, err := form.Submit(cmd.Context())
	if err != nil {
		return err
	}
	if out.Failure != nil && out.Failure.Presentation == errclass.PresentationPermissionModal {
		// A terminal has no dialog to keep open.
		form.DismissPermission()
	}
	return report(cmd.OutOrStdout(), out)
}

func report(w io.Writer, out ingest.Outcome) error {
	switch out.Status {
	case ingest.OutcomeCreated:
		fmt.Fprintf(w, "created %s %s\n", out.Record.Kind, out.ID)
		if out.Linked {
			fmt.Fprintln(w, "linked to board")
		}
	case ingest.OutcomeUpdated:
		fmt.Fprintf(w, "updated %s %s\n", out.Record.Kind, out.ID)
	case ingest.OutcomeNeedsReview:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Record)
	case ingest.OutcomeFailed:
		return failureError(*out.Failure)
	}
	return nil
}

func failureError(c errclass.Classification) error {
	var b strings.Builder
	b.WriteString(c.Message)
	if c.Field != "" {
		fmt.Fprintf(&b, " [%s]", c.Field)
	}
	if c.Detail != "" && c.Detail != c.Message {
		fmt.Fprintf(&b, ": %s", c.Detail)
	}
	return errors.New(b.String())
}
