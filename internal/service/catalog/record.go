package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/ingest"
	"github.com/heartmarshall/myenglish-catalog/pkg/ctxutil"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// CreateRecord validates the payload and stores a new record of the given
// kind. The JSON method is re-parsed here so the server validates exactly the
// document the client sent.
func (s *Service) CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
	rec, err := recordFromPayload(kind, payload)
	if err != nil {
		return uuid.Nil, err
	}
	rec.ID = uuid.Nil

	created, err := s.records.Create(ctx, &rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create record: %w", err)
	}

	s.log.InfoContext(ctx, "record created",
		slog.String("record_id", created.ID.String()),
		slog.String("kind", kind.String()),
		slog.String("method", string(payload.Method)),
		slog.String("caller_id", callerID(ctx)),
	)

	return created.ID, nil
}

// UpdateRecord replaces the content of an existing record.
func (s *Service) UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
	rec, err := recordFromPayload(kind, payload)
	if err != nil {
		return err
	}
	rec.ID = id

	if _, err := s.records.Update(ctx, &rec); err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("record_id", id.String()),
		slog.String("kind", kind.String()),
		slog.String("caller_id", callerID(ctx)),
	)
	return nil
}

// DeleteRecord removes a record and all of its board memberships in one
// transaction.
func (s *Service) DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	if !kind.IsValid() {
		return domain.NewValidationError("kind", "must be vocabulary or expression")
	}

	var unlinked int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.boards.RemoveRecord(ctx, id)
		if err != nil {
			return fmt.Errorf("remove memberships: %w", err)
		}
		unlinked = n
		return s.records.Delete(ctx, kind, id)
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("record_id", id.String()),
		slog.String("kind", kind.String()),
		slog.Int("memberships_removed", unlinked),
		slog.String("caller_id", callerID(ctx)),
	)
	return nil
}

// GetRecord returns one record of the given kind.
func (s *Service) GetRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be vocabulary or expression")
	}
	return s.records.GetByID(ctx, kind, id)
}

// ListRecords returns records of a kind ordered by headword. limit is clamped
// to [1, 200] and defaults to 50.
func (s *Service) ListRecords(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be vocabulary or expression")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}
	return s.records.List(ctx, kind, clampLimit(limit), offset)
}

// recordFromPayload resolves the request body into a validated record.
func recordFromPayload(kind domain.RecordKind, payload domain.RecordPayload) (domain.LexicalRecord, error) {
	if !kind.IsValid() {
		return domain.LexicalRecord{}, domain.NewValidationError("kind", "must be vocabulary or expression")
	}

	var rec domain.LexicalRecord
	switch payload.Method {
	case domain.SubmitMethodManual:
		if payload.Data == nil {
			return domain.LexicalRecord{}, domain.NewValidationError("data", "required")
		}
		rec = payload.Data.Clone()
		if rec.Kind == "" {
			rec.Kind = kind
		}
		rec.ApplyDefaults()
	case domain.SubmitMethodJSON:
		parsed, err := ingest.ParseRecordJSONFor(payload.JSON, kind)
		if err != nil {
			return domain.LexicalRecord{}, err
		}
		rec = parsed
	default:
		return domain.LexicalRecord{}, domain.NewValidationError("method", "must be manual or json")
	}

	// A body naming another kind is rejected, never moved.
	if rec.Kind != kind {
		return domain.LexicalRecord{}, domain.NewValidationError("kind", fmt.Sprintf("must be %s for this resource", kind))
	}

	if err := ingest.Validate(rec); err != nil {
		return domain.LexicalRecord{}, err
	}
	return rec, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	default:
		return limit
	}
}

func callerID(ctx context.Context) string {
	if id, ok := ctxutil.CallerFromCtx(ctx); ok {
		return id.String()
	}
	return ""
}
