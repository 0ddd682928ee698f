package catalog

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockRecordRepo struct {
	GetByIDFunc func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error)
	ListFunc    func(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error)
	CreateFunc  func(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error)
	UpdateFunc  func(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error)
	DeleteFunc  func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
}

func (m *mockRecordRepo) GetByID(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, kind, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRecordRepo) List(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	return []domain.LexicalRecord{}, nil
}

func (m *mockRecordRepo) Create(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	out := *rec
	out.ID = uuid.New()
	return &out, nil
}

func (m *mockRecordRepo) Update(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rec)
	}
	out := *rec
	return &out, nil
}

func (m *mockRecordRepo) Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, kind, id)
	}
	return nil
}

type mockBoardRepo struct {
	ListFunc         func(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	CreateFunc       func(ctx context.Context, b *domain.Board) (*domain.Board, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (domain.BoardType, error)
	AddItemFunc      func(ctx context.Context, boardID, recordID uuid.UUID) error
	RemoveRecordFunc func(ctx context.Context, recordID uuid.UUID) (int, error)
	ListItemsFunc    func(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockBoardRepo) List(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, boardType)
	}
	return []domain.Board{}, nil
}

func (m *mockBoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &domain.Board{ID: id, Name: "Board", Type: domain.BoardTypeVocabulary}, nil
}

func (m *mockBoardRepo) Create(ctx context.Context, b *domain.Board) (*domain.Board, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	out := *b
	out.ID = uuid.New()
	return &out, nil
}

func (m *mockBoardRepo) Delete(ctx context.Context, id uuid.UUID) (domain.BoardType, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.BoardTypeVocabulary, nil
}

func (m *mockBoardRepo) AddItem(ctx context.Context, boardID, recordID uuid.UUID) error {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, boardID, recordID)
	}
	return nil
}

func (m *mockBoardRepo) RemoveRecord(ctx context.Context, recordID uuid.UUID) (int, error) {
	if m.RemoveRecordFunc != nil {
		return m.RemoveRecordFunc(ctx, recordID)
	}
	return 0, nil
}

func (m *mockBoardRepo) ListItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, boardID)
	}
	return []uuid.UUID{}, nil
}

type mockLessonRepo struct {
	ListByBoardFunc func(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
	CreateFunc      func(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error)
}

func (m *mockLessonRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	if m.ListByBoardFunc != nil {
		return m.ListByBoardFunc(ctx, boardID)
	}
	return []domain.Lesson{}, nil
}

func (m *mockLessonRepo) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, l)
	}
	out := *l
	out.ID = uuid.New()
	return &out, nil
}

type mockTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

type mockDictionary struct {
	FetchDictionaryFunc func(ctx context.Context, word string) (*domain.PartialRecord, error)
}

func (m *mockDictionary) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	if m.FetchDictionaryFunc != nil {
		return m.FetchDictionaryFunc(ctx, word)
	}
	return nil, nil
}

type mockBoardCache struct {
	mu          sync.Mutex
	entries     map[domain.BoardType][]domain.Board
	getErr      error
	setErr      error
	invalidated []domain.BoardType
}

func newMockBoardCache() *mockBoardCache {
	return &mockBoardCache{entries: make(map[domain.BoardType][]domain.Board)}
}

func (m *mockBoardCache) Get(_ context.Context, boardType domain.BoardType) ([]domain.Board, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	b, ok := m.entries[boardType]
	return b, ok, nil
}

func (m *mockBoardCache) Set(_ context.Context, boardType domain.BoardType, boards []domain.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[boardType] = boards
	return nil
}

func (m *mockBoardCache) Invalidate(_ context.Context, boardType domain.BoardType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, boardType)
	m.invalidated = append(m.invalidated, boardType)
	return nil
}

// ===========================================================================
// Fixtures
// ===========================================================================

type fixture struct {
	records *mockRecordRepo
	boards  *mockBoardRepo
	lessons *mockLessonRepo
	tx      *mockTxManager
	dict    *mockDictionary
	cache   *mockBoardCache
}

func newFixture() *fixture {
	return &fixture{
		records: &mockRecordRepo{},
		boards:  &mockBoardRepo{},
		lessons: &mockLessonRepo{},
		tx:      &mockTxManager{},
		dict:    &mockDictionary{},
		cache:   newMockBoardCache(),
	}
}

func (f *fixture) service() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, f.records, f.boards, f.lessons, f.tx, f.dict, f.cache)
}

func ptrFloat(v float64) *float64 { return &v }

func resilient() domain.LexicalRecord {
	return domain.LexicalRecord{
		Kind:     domain.RecordKindVocabulary,
		Headword: "resilient",
		Phonetic: "/rɪˈzɪliənt/",
		Band:     ptrFloat(7.0),
		Level:    domain.LevelAdvanced,
		Examples: []string{"She is resilient."},
		Topics:   []string{"personality"},
		Types:    []domain.WordType{{PartOfSpeech: "adjective", Meanings: []string{"able to recover quickly"}}},
	}
}
