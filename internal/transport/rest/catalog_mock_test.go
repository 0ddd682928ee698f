package rest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/service/catalog"
)

var errUnexpectedCall = errors.New("unexpected call")

// mockCatalog implements catalogService. Unset funcs fail the call.
type mockCatalog struct {
	FetchDictionaryFunc func(ctx context.Context, word string) (*domain.PartialRecord, error)
	CreateRecordFunc    func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error)
	UpdateRecordFunc    func(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error
	DeleteRecordFunc    func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	GetRecordFunc       func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error)
	ListRecordsFunc     func(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error)
	ListBoardsFunc      func(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
	CreateBoardFunc     func(ctx context.Context, input catalog.CreateBoardInput) (*domain.Board, error)
	DeleteBoardFunc     func(ctx context.Context, id uuid.UUID) error
	LinkItemFunc        func(ctx context.Context, boardID, recordID uuid.UUID) error
	ListBoardItemsFunc  func(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
	ListLessonsFunc     func(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
	CreateLessonFunc    func(ctx context.Context, input catalog.CreateLessonInput) (*domain.Lesson, error)
}

func (m *mockCatalog) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	if m.FetchDictionaryFunc != nil {
		return m.FetchDictionaryFunc(ctx, word)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
	if m.CreateRecordFunc != nil {
		return m.CreateRecordFunc(ctx, kind, payload)
	}
	return uuid.Nil, errUnexpectedCall
}

func (m *mockCatalog) UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
	if m.UpdateRecordFunc != nil {
		return m.UpdateRecordFunc(ctx, kind, id, payload)
	}
	return errUnexpectedCall
}

func (m *mockCatalog) DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	if m.DeleteRecordFunc != nil {
		return m.DeleteRecordFunc(ctx, kind, id)
	}
	return errUnexpectedCall
}

func (m *mockCatalog) GetRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error) {
	if m.GetRecordFunc != nil {
		return m.GetRecordFunc(ctx, kind, id)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) ListRecords(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error) {
	if m.ListRecordsFunc != nil {
		return m.ListRecordsFunc(ctx, kind, limit, offset)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	if m.ListBoardsFunc != nil {
		return m.ListBoardsFunc(ctx, boardType)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) CreateBoard(ctx context.Context, input catalog.CreateBoardInput) (*domain.Board, error) {
	if m.CreateBoardFunc != nil {
		return m.CreateBoardFunc(ctx, input)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(ctx, id)
	}
	return errUnexpectedCall
}

func (m *mockCatalog) LinkItem(ctx context.Context, boardID, recordID uuid.UUID) error {
	if m.LinkItemFunc != nil {
		return m.LinkItemFunc(ctx, boardID, recordID)
	}
	return errUnexpectedCall
}

func (m *mockCatalog) ListBoardItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	if m.ListBoardItemsFunc != nil {
		return m.ListBoardItemsFunc(ctx, boardID)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	if m.ListLessonsFunc != nil {
		return m.ListLessonsFunc(ctx, boardID)
	}
	return nil, errUnexpectedCall
}

func (m *mockCatalog) CreateLesson(ctx context.Context, input catalog.CreateLessonInput) (*domain.Lesson, error) {
	if m.CreateLessonFunc != nil {
		return m.CreateLessonFunc(ctx, input)
	}
	return nil, errUnexpectedCall
}
