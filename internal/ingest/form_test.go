package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/errclass"
)

func TestForm_CreateClosesForm(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return id, nil
		},
	}
	f := NewCreateForm(newTestPipeline(gw, nil, nil), errclass.New("en"))
	f.SetSource(Manual{Record: validVocabulary()})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeCreated || out.ID != id {
		t.Errorf("outcome: %+v", out)
	}
	if !f.Closed() {
		t.Error("successful create must close the form")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrFormClosed) {
		t.Errorf("expected ErrFormClosed, got %v", err)
	}
}

func TestForm_FailureStaysOpen(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return uuid.Nil, domain.ErrAlreadyExists
		},
	}
	f := NewCreateForm(newTestPipeline(gw, nil, nil), errclass.New("en"))
	f.SetSource(Manual{Record: validVocabulary()})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeFailed || out.Failure == nil || out.Failure.Kind != errclass.KindDuplicate {
		t.Fatalf("outcome: %+v", out)
	}
	if f.Closed() {
		t.Error("failed submission must leave the form open")
	}
	if got := f.Failure(); got == nil || got.Presentation != errclass.PresentationInline {
		t.Errorf("failure: %+v", got)
	}
	if f.Submitting() {
		t.Error("in-flight flag must be cleared")
	}
}

func TestForm_RejectsDoubleSubmit(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			close(entered)
			<-release
			return uuid.New(), nil
		},
	}
	f := NewCreateForm(newTestPipeline(gw, nil, nil), errclass.New("en"))
	f.SetSource(Manual{Record: validVocabulary()})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := f.Submit(context.Background()); err != nil {
			t.Errorf("first submit: %v", err)
		}
	}()

	<-entered
	if !f.Submitting() {
		t.Error("expected Submitting while the request is in flight")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}
	close(release)
	wg.Wait()

	if n := len(gw.CreateRecordCalls()); n != 1 {
		t.Errorf("CreateRecord calls: got %d, want 1", n)
	}
}

func TestForm_CloseDuringFlightDiscardsResult(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			close(entered)
			<-release
			return uuid.Nil, domain.ErrAlreadyExists
		},
	}
	f := NewCreateForm(newTestPipeline(gw, nil, nil), errclass.New("en"))
	f.SetSource(Manual{Record: validVocabulary()})

	done := make(chan Outcome, 1)
	go func() {
		out, _ := f.Submit(context.Background())
		done <- out
	}()

	<-entered
	f.Close()
	close(release)
	out := <-done

	if !out.Discarded {
		t.Error("late result must be marked Discarded")
	}
	if f.Failure() != nil {
		t.Error("discarded result must not change the form")
	}
}

func TestForm_PermissionDeniedDismissCloses(t *testing.T) {
	t.Parallel()

	gw := &recordGatewayMock{
		CreateRecordFunc: func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
			return uuid.Nil, domain.ErrForbidden
		},
	}
	f := NewCreateForm(newTestPipeline(gw, nil, nil), errclass.New("en"))
	f.SetSource(Manual{Record: validVocabulary()})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Failure == nil || out.Failure.Kind != errclass.KindUnauthorized {
		t.Fatalf("outcome: %+v", out)
	}
	if !f.PermissionDenied() {
		t.Fatal("expected permission dialog")
	}

	f.DismissPermission()

	if f.PermissionDenied() || !f.Closed() {
		t.Error("dismissing the dialog must close the form")
	}
}

func TestForm_DictionaryDraftBecomesManual(t *testing.T) {
	t.Parallel()

	fetcher := &dictionaryFetcherMock{
		FetchDictionaryFunc: func(ctx context.Context, word string) (*domain.PartialRecord, error) {
			return &domain.PartialRecord{Headword: word, Examples: []string{"I run."}}, nil
		},
	}
	gw := &recordGatewayMock{}
	f := NewCreateForm(newTestPipeline(gw, nil, fetcher), errclass.New("en"))
	f.SetSource(DictionaryFetch{Word: "run"})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeNeedsReview {
		t.Fatalf("status: got %s", out.Status)
	}
	if f.Closed() {
		t.Error("form must stay open for review")
	}

	m, ok := f.Source().(Manual)
	if !ok {
		t.Fatalf("source: got %T, want Manual", f.Source())
	}
	if m.Record.Headword != "run" {
		t.Errorf("headword: got %q", m.Record.Headword)
	}
	if len(gw.CreateRecordCalls()) != 0 {
		t.Error("nothing must be persisted before review")
	}
}

func TestForm_EditUpdatesRecord(t *testing.T) {
	t.Parallel()

	existing := validExpression()
	existing.ID = uuid.New()

	gw := &recordGatewayMock{
		UpdateRecordFunc: func(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
			return nil
		},
	}
	f := NewEditForm(newTestPipeline(gw, nil, nil), errclass.New("en"), existing)

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeUpdated || out.ID != existing.ID {
		t.Errorf("outcome: %+v", out)
	}
	if calls := gw.UpdateRecordCalls(); len(calls) != 1 || calls[0].ID != existing.ID {
		t.Errorf("UpdateRecord calls: %+v", calls)
	}
}

func TestForm_EditExpressionFromJSON(t *testing.T) {
	t.Parallel()

	existing := validExpression()
	existing.ID = uuid.New()

	gw := &recordGatewayMock{
		UpdateRecordFunc: func(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
			return nil
		},
	}
	f := NewEditForm(newTestPipeline(gw, nil, nil), errclass.New("en"), existing)
	f.SetSource(JSONImport{Text: `{"headword":"break the ice","meaning":"start a conversation",
		"level":"beginner","examples":["He broke the ice."],"topics":["social"]}`})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeUpdated {
		t.Fatalf("outcome: %+v failure: %+v", out, out.Failure)
	}
	if out.Record.Kind != domain.RecordKindExpression || out.Record.Band != nil {
		t.Errorf("record: %+v", out.Record)
	}

	calls := gw.UpdateRecordCalls()
	if len(calls) != 1 || calls[0].Kind != domain.RecordKindExpression || calls[0].ID != existing.ID {
		t.Errorf("UpdateRecord calls: %+v", calls)
	}
}

func TestForm_EditRejectsOtherKind(t *testing.T) {
	t.Parallel()

	existing := validExpression()
	existing.ID = uuid.New()

	gw := &recordGatewayMock{}
	f := NewEditForm(newTestPipeline(gw, nil, nil), errclass.New("en"), existing)
	f.SetSource(JSONImport{Text: `{"kind":"vocabulary","headword":"apple","band":6,
		"level":"beginner","examples":["An apple a day."],"topics":["food"]}`})

	out, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != OutcomeFailed || out.Failure == nil || out.Failure.Field != "kind" {
		t.Fatalf("outcome: %+v failure: %+v", out, out.Failure)
	}
	if len(gw.UpdateRecordCalls()) != 0 {
		t.Error("a record must not change kind")
	}
}
