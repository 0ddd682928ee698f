package ingest

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/errclass"
)

// Form state errors.
var (
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrFormClosed     = errors.New("form is closed")
)

// OutcomeStatus is the result of one Submit call.
type OutcomeStatus string

const (
	OutcomeCreated     OutcomeStatus = "created"
	OutcomeUpdated     OutcomeStatus = "updated"
	OutcomeNeedsReview OutcomeStatus = "needs_review"
	OutcomeFailed      OutcomeStatus = "failed"
)

// Outcome reports what happened to a submission. When Discarded is true the
// form was closed while the request was in flight and nothing was applied.
type Outcome struct {
	Status    OutcomeStatus
	ID        uuid.UUID
	Record    *domain.LexicalRecord
	Linked    bool
	Failure   *errclass.Classification
	Discarded bool
}

// Form is one create or edit dialog. It allows a single in-flight submission
// and drops results that arrive after it was closed.
type Form struct {
	pipeline   *Pipeline
	classifier *errclass.Classifier

	mu               sync.Mutex
	source           Source
	editID           uuid.UUID
	editKind         domain.RecordKind
	boardID          *uuid.UUID
	inFlight         bool
	closed           bool
	failure          *errclass.Classification
	permissionDenied bool
}

// NewCreateForm opens a form that creates a new record.
func NewCreateForm(p *Pipeline, c *errclass.Classifier) *Form {
	return &Form{pipeline: p, classifier: c}
}

// NewEditForm opens a form prefilled with an existing record.
func NewEditForm(p *Pipeline, c *errclass.Classifier, rec domain.LexicalRecord) *Form {
	return &Form{
		pipeline:   p,
		classifier: c,
		source:     Manual{Record: rec.Clone()},
		editID:     rec.ID,
		editKind:   rec.Kind,
	}
}

// SetSource replaces the current input.
func (f *Form) SetSource(src Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.source = src
}

// SetBoard selects the board a created record is linked to. nil clears it.
func (f *Form) SetBoard(boardID *uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boardID = boardID
}

// Source returns the current input.
func (f *Form) Source() Source {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.source
}

// Failure returns the last inline or modal failure, if any.
func (f *Form) Failure() *errclass.Classification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// PermissionDenied reports whether the permission dialog is showing.
func (f *Form) PermissionDenied() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permissionDenied
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Closed reports whether the form was dismissed.
func (f *Form) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Close dismisses the form. An in-flight request is not cancelled; its result
// is discarded when it arrives.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// DismissPermission closes the permission dialog, which cancels the whole
// operation and closes the form.
func (f *Form) DismissPermission() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissionDenied = false
	f.closed = true
}

// Submit runs the current input through the pipeline. It returns
// ErrSubmitInFlight while another submission of this form is running and
// ErrFormClosed after the form was dismissed; every other failure is
// reported through Outcome.Failure.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Outcome{}, ErrFormClosed
	}
	if f.inFlight {
		f.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	f.inFlight = true
	src := f.source
	editID := f.editID
	editKind := f.editKind
	boardID := f.boardID
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	if src == nil {
		src = Manual{}
	}

	out := f.run(ctx, src, editID, editKind, boardID)
	return f.apply(out), nil
}

func (f *Form) run(ctx context.Context, src Source, editID uuid.UUID, editKind domain.RecordKind, boardID *uuid.UUID) Outcome {
	if _, ok := src.(DictionaryFetch); ok {
		res, err := f.pipeline.Prepare(ctx, src)
		if err != nil {
			return f.failed(err)
		}
		rec := res.Record
		return Outcome{Status: OutcomeNeedsReview, Record: &rec}
	}

	if editID != uuid.Nil {
		rec, err := f.pipeline.Update(ctx, editKind, editID, src)
		if err != nil {
			return f.failed(err)
		}
		return Outcome{Status: OutcomeUpdated, ID: editID, Record: &rec}
	}

	res, err := f.pipeline.Create(ctx, src, boardID)
	if err != nil {
		return f.failed(err)
	}
	rec := res.Record
	return Outcome{Status: OutcomeCreated, ID: res.ID, Record: &rec, Linked: res.Linked}
}

func (f *Form) failed(err error) Outcome {
	c := f.classifier.Classify(err)
	return Outcome{Status: OutcomeFailed, Failure: &c}
}

// apply folds an outcome into the form state unless the form was closed.
func (f *Form) apply(out Outcome) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		out.Discarded = true
		return out
	}

	switch out.Status {
	case OutcomeNeedsReview:
		f.failure = nil
		f.source = Manual{Record: out.Record.Clone()}
	case OutcomeFailed:
		f.failure = out.Failure
		if out.Failure.Presentation == errclass.PresentationPermissionModal {
			f.permissionDenied = true
		}
	case OutcomeCreated, OutcomeUpdated:
		f.failure = nil
		f.closed = true
	}
	return out
}
