package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// ErrReviewRequired is returned when a dictionary draft is submitted without
// first being confirmed as a manual record.
var ErrReviewRequired = errors.New("dictionary draft must be reviewed before submission")

type recordGateway interface {
	CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error)
	UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error
	DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
}

// CreateResult describes a successful create.
type CreateResult struct {
	ID     uuid.UUID
	Record domain.LexicalRecord
	Linked bool
}

// Pipeline runs normalize, validate, persist and associate in that order.
type Pipeline struct {
	normalizer *Normalizer
	gateway    recordGateway
	associator *Associator
	log        *slog.Logger
}

// NewPipeline creates a Pipeline. associator may be nil.
func NewPipeline(logger *slog.Logger, normalizer *Normalizer, gateway recordGateway, associator *Associator) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		gateway:    gateway,
		associator: associator,
		log:        logger.With("service", "ingest"),
	}
}

// Prepare normalizes src and, unless the draft needs review, validates it.
func (p *Pipeline) Prepare(ctx context.Context, src Source) (Result, error) {
	res, err := p.normalizer.Normalize(ctx, src)
	if err != nil {
		return Result{}, err
	}
	if res.NeedsReview {
		return res, nil
	}
	if err := Validate(res.Record); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Create persists a new record from src and, if boardID is set, links it to
// the board. Link failures do not affect the result.
func (p *Pipeline) Create(ctx context.Context, src Source, boardID *uuid.UUID) (*CreateResult, error) {
	res, err := p.Prepare(ctx, src)
	if err != nil {
		return nil, err
	}
	if res.NeedsReview {
		return nil, ErrReviewRequired
	}

	rec := res.Record
	id, err := p.gateway.CreateRecord(ctx, rec.Kind, payloadFor(src, rec))
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	rec.ID = id

	p.log.InfoContext(ctx, "record created",
		slog.String("record_id", id.String()),
		slog.String("kind", rec.Kind.String()),
		slog.String("source", SourceKind(src)),
	)

	linked := false
	if p.associator != nil {
		linked = p.associator.Associate(ctx, boardID, id)
	}

	return &CreateResult{ID: id, Record: rec, Linked: linked}, nil
}

// Update re-runs the same normalize/validate contract against the existing
// record id of the given kind. A JSON document without a kind takes the
// record's kind; one naming another kind is rejected.
func (p *Pipeline) Update(ctx context.Context, kind domain.RecordKind, id uuid.UUID, src Source) (domain.LexicalRecord, error) {
	if id == uuid.Nil {
		return domain.LexicalRecord{}, domain.NewValidationError("id", "required")
	}
	if !kind.IsValid() {
		return domain.LexicalRecord{}, domain.NewValidationError("kind", "must be vocabulary or expression")
	}
	if j, ok := src.(JSONImport); ok && j.Kind == "" {
		j.Kind = kind
		src = j
	}

	res, err := p.normalizer.Normalize(ctx, src)
	if err != nil {
		return domain.LexicalRecord{}, err
	}
	if res.NeedsReview {
		return domain.LexicalRecord{}, ErrReviewRequired
	}

	rec := res.Record
	if rec.Kind != kind {
		return domain.LexicalRecord{}, domain.NewValidationError("kind", fmt.Sprintf("must be %s for this record", kind))
	}
	if err := Validate(rec); err != nil {
		return domain.LexicalRecord{}, err
	}
	rec.ID = id
	if err := p.gateway.UpdateRecord(ctx, rec.Kind, id, payloadFor(src, rec)); err != nil {
		return domain.LexicalRecord{}, fmt.Errorf("update record: %w", err)
	}

	p.log.InfoContext(ctx, "record updated",
		slog.String("record_id", id.String()),
		slog.String("kind", rec.Kind.String()),
	)

	return rec, nil
}

// Delete removes a record. Board memberships are removed by the gateway as
// part of the same operation.
func (p *Pipeline) Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	if !kind.IsValid() {
		return domain.NewValidationError("kind", "must be vocabulary or expression")
	}
	if err := p.gateway.DeleteRecord(ctx, kind, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	p.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", id.String()),
		slog.String("kind", kind.String()),
	)
	return nil
}

// payloadFor keeps JSON imports as raw text so the gateway re-parses the
// exact document the user supplied.
func payloadFor(src Source, rec domain.LexicalRecord) domain.RecordPayload {
	if j, ok := src.(JSONImport); ok {
		return domain.RecordPayload{Method: domain.SubmitMethodJSON, JSON: j.Text}
	}
	r := rec
	return domain.RecordPayload{Method: domain.SubmitMethodManual, Data: &r}
}
