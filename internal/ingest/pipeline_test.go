package ingest

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

//go:generate moq -out record_gateway_mock_test.go -pkg ingest . recordGateway
//go:generate moq -out board_linker_mock_test.go -pkg ingest . boardLinker

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestPipeline(gw recordGateway, linker boardLinker, fetcher dictionaryFetcher) *Pipeline {
	log := testLogger()
	return NewPipeline(log, NewNormalizer(fetcher), gw, NewAssociator(log, linker))
}

func TestPipeline_Create_ManualWithBoard(t *testing.T) {
	t.Parallel()

	recordID := uuid.New()
	boardID := uuid.New()

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return recordID, nil
		},
	}
	linker := &boardLinkerMock{
		LinkToBoardFunc: func(ctx context.Context, b, item uuid.UUID) error { return nil },
	}

	res, err := newTestPipeline(gw, linker, nil).Create(context.Background(), Manual{Record: validVocabulary()}, &boardID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != recordID || res.Record.ID != recordID {
		t.Errorf("ID: got %s / %s, want %s", res.ID, res.Record.ID, recordID)
	}
	if !res.Linked {
		t.Error("expected Linked")
	}

	calls := gw.CreateRecordCalls()
	if len(calls) != 1 {
		t.Fatalf("CreateRecord calls: got %d, want 1", len(calls))
	}
	if calls[0].Kind != domain.RecordKindVocabulary {
		t.Errorf("kind: got %s", calls[0].Kind)
	}
	if calls[0].Payload.Method != domain.SubmitMethodManual || calls[0].Payload.Data == nil {
		t.Errorf("payload: %+v", calls[0].Payload)
	}

	links := linker.LinkToBoardCalls()
	if len(links) != 1 || links[0].BoardID != boardID || links[0].ItemID != recordID {
		t.Errorf("LinkToBoard calls: %+v", links)
	}
}

func TestPipeline_Create_SucceedsWhenBoardAssociationFails(t *testing.T) {
	t.Parallel()

	recordID := uuid.New()
	boardID := uuid.New()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return recordID, nil
		},
	}
	linker := &boardLinkerMock{
		LinkToBoardFunc: func(ctx context.Context, b, item uuid.UUID) error {
			return errors.New("board service unavailable")
		},
	}
	p := NewPipeline(log, NewNormalizer(nil), gw, NewAssociator(log, linker))

	res, err := p.Create(context.Background(), Manual{Record: validExpression()}, &boardID)
	if err != nil {
		t.Fatalf("create must succeed when linking fails, got %v", err)
	}
	if res.ID != recordID {
		t.Errorf("ID: got %s, want %s", res.ID, recordID)
	}
	if res.Linked {
		t.Error("Linked must be false")
	}
	if len(gw.DeleteRecordCalls()) != 0 {
		t.Error("created record must not be rolled back")
	}
	if !strings.Contains(buf.String(), "board association failed") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestPipeline_Create_NoBoardSkipsLink(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return uuid.New(), nil
		},
	}
	linker := &boardLinkerMock{}

	res, err := newTestPipeline(gw, linker, nil).Create(context.Background(), Manual{Record: validVocabulary()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Linked {
		t.Error("Linked must be false without a board")
	}
	if len(linker.LinkToBoardCalls()) != 0 {
		t.Error("LinkToBoard must not be called")
	}
}

func TestPipeline_Create_ValidationStopsBeforeGateway(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{}
	rec := validVocabulary()
	rec.Band = ptrFloat(9.5)

	_, err := newTestPipeline(gw, nil, nil).Create(context.Background(), Manual{Record: rec}, nil)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field() != "band" {
		t.Fatalf("expected band validation error, got %v", err)
	}
	if len(gw.CreateRecordCalls()) != 0 {
		t.Error("gateway must not be called")
	}
}

func TestPipeline_Create_MalformedJSONNeverReachesGateway(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{}

	_, err := newTestPipeline(gw, nil, nil).Create(context.Background(), JSONImport{Text: "{not json"}, nil)
	if !errors.Is(err, domain.ErrJSONParse) {
		t.Fatalf("expected ErrJSONParse, got %v", err)
	}
	if len(gw.CreateRecordCalls()) != 0 {
		t.Error("gateway must not be called")
	}
}

func TestPipeline_Create_JSONImportSendsRawText(t *testing.T) {
	t.Parallel()

	text := `{"kind":"vocabulary","headword":"apple","band":5,"level":"beginner","examples":["An apple a day."],"topics":["food"]}`
	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return uuid.New(), nil
		},
	}

	if _, err := newTestPipeline(gw, nil, nil).Create(context.Background(), JSONImport{Text: text}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := gw.CreateRecordCalls()[0].Payload
	if p.Method != domain.SubmitMethodJSON || p.JSON != text || p.Data != nil {
		t.Errorf("payload: %+v", p)
	}
}

func TestPipeline_Create_DictionaryDraftRequiresReview(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{}
	fetcher := &dictionaryFetcherMock{
		FetchDictionaryFunc: func(ctx context.Context, word string) (*domain.PartialRecord, error) {
			return &domain.PartialRecord{Headword: word}, nil
		},
	}

	_, err := newTestPipeline(gw, nil, fetcher).Create(context.Background(), DictionaryFetch{Word: "run"}, nil)
	if !errors.Is(err, ErrReviewRequired) {
		t.Fatalf("expected ErrReviewRequired, got %v", err)
	}
	if len(gw.CreateRecordCalls()) != 0 {
		t.Error("gateway must not be called")
	}
}

func TestPipeline_Create_GatewayErrorWrapped(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return uuid.Nil, domain.ErrAlreadyExists
		},
	}
	linker := &boardLinkerMock{}
	boardID := uuid.New()

	_, err := newTestPipeline(gw, linker, nil).Create(context.Background(), Manual{Record: validVocabulary()}, &boardID)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if len(linker.LinkToBoardCalls()) != 0 {
		t.Error("failed create must not be linked")
	}
}

func TestPipeline_Update(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	gw := &recordGatewayMock{
		UpdateRecordFunc: func(ctx context.Context, kind domain.RecordKind, gotID uuid.UUID, payload domain.RecordPayload) error {
			return nil
		},
	}

	rec, err := newTestPipeline(gw, nil, nil).Update(context.Background(), domain.RecordKindExpression, id, Manual{Record: validExpression()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != id {
		t.Errorf("ID: got %s, want %s", rec.ID, id)
	}

	calls := gw.UpdateRecordCalls()
	if len(calls) != 1 || calls[0].ID != id || calls[0].Kind != domain.RecordKindExpression {
		t.Errorf("UpdateRecord calls: %+v", calls)
	}
}

func TestPipeline_Update_RequiresID(t *testing.T) {
	t.Parallel()

	_, err := newTestPipeline(&recordGatewayMock{}, nil, nil).Update(context.Background(), domain.RecordKindVocabulary, uuid.Nil, Manual{Record: validVocabulary()})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPipeline_Delete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	gw := &recordGatewayMock{
		DeleteRecordFunc: func(ctx context.Context, kind domain.RecordKind, gotID uuid.UUID) error {
			if gotID != id {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	p := newTestPipeline(gw, nil, nil)

	if err := p.Delete(context.Background(), domain.RecordKindVocabulary, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Delete(context.Background(), domain.RecordKindVocabulary, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := p.Delete(context.Background(), "phrase", id); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown kind, got %v", err)
	}
}
