// Package record implements the lexical record repository using PostgreSQL.
package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

const table = "lexical_records"

var columns = []string{
	"id", "kind", "headword", "phonetic", "audio_url", "meaning", "band", "level",
	"examples", "synonyms", "related_words", "topics", "types", "created_at", "updated_at",
}

// Repo provides lexical record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID         `db:"id"`
	Kind         string            `db:"kind"`
	Headword     string            `db:"headword"`
	Phonetic     string            `db:"phonetic"`
	AudioURL     string            `db:"audio_url"`
	Meaning      string            `db:"meaning"`
	Band         *float64          `db:"band"`
	Level        string            `db:"level"`
	Examples     []string          `db:"examples"`
	Synonyms     []string          `db:"synonyms"`
	RelatedWords []string          `db:"related_words"`
	Topics       []string          `db:"topics"`
	Types        []domain.WordType `db:"types"`
	CreatedAt    time.Time         `db:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a record of the given kind.
// Returns domain.ErrNotFound if no record of that kind has the id.
func (r *Repo) GetByID(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "kind": string(kind)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", id)
	}

	rec := toDomain(dst)
	return &rec, nil
}

// List returns records of a kind ordered by headword.
func (r *Repo) List(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"kind": string(kind)}).
		OrderBy("headword_normalized ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]domain.LexicalRecord, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a record. A record with the same kind and normalized
// headword yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error) {
	id := rec.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(
			"id", "kind", "headword", "headword_normalized", "phonetic", "audio_url", "meaning", "band",
			"level", "examples", "synonyms", "related_words", "topics", "types",
		).
		Values(
			id, string(rec.Kind), rec.Headword, domain.NormalizeHeadword(rec.Headword), rec.Phonetic,
			rec.AudioURL, rec.Meaning, rec.Band, string(rec.Level), nonNil(rec.Examples), nonNil(rec.Synonyms),
			nonNil(rec.RelatedWords), nonNil(rec.Topics), nonNilTypes(rec.Types),
		).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", rec.Headword)
	}

	out := toDomain(dst)
	return &out, nil
}

// Update replaces every editable field of the record with the same id and kind.
// Returns domain.ErrNotFound if it does not exist and domain.ErrAlreadyExists
// if the new headword collides with another record.
func (r *Repo) Update(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"headword":            rec.Headword,
			"headword_normalized": domain.NormalizeHeadword(rec.Headword),
			"phonetic":            rec.Phonetic,
			"audio_url":           rec.AudioURL,
			"meaning":             rec.Meaning,
			"band":                rec.Band,
			"level":               string(rec.Level),
			"examples":            nonNil(rec.Examples),
			"synonyms":            nonNil(rec.Synonyms),
			"related_words":       nonNil(rec.RelatedWords),
			"topics":              nonNil(rec.Topics),
			"types":               nonNilTypes(rec.Types),
			"updated_at":          squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": rec.ID, "kind": string(rec.Kind)}).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "record", rec.ID)
	}

	out := toDomain(dst)
	return &out, nil
}

// Delete removes a record. Board memberships cascade with it.
// Returns domain.ErrNotFound if no record of that kind has the id.
func (r *Repo) Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "kind": string(kind)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "record", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func returning() string {
	return strings.Join(columns, ", ")
}

func toDomain(r row) domain.LexicalRecord {
	rec := domain.LexicalRecord{
		ID:           r.ID,
		Kind:         domain.RecordKind(r.Kind),
		Headword:     r.Headword,
		Phonetic:     r.Phonetic,
		AudioURL:     r.AudioURL,
		Meaning:      r.Meaning,
		Band:         r.Band,
		Level:        domain.Level(r.Level),
		Examples:     r.Examples,
		Synonyms:     r.Synonyms,
		RelatedWords: r.RelatedWords,
		Topics:       r.Topics,
		Types:        r.Types,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	rec.ApplyDefaults()
	return rec
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilTypes(t []domain.WordType) []domain.WordType {
	if t == nil {
		return []domain.WordType{}
	}
	return t
}
