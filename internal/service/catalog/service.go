// Package catalog implements the catalog API use cases: record persistence
// behind the shared validator, dictionary lookup, boards, lessons and board
// membership.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordRepo interface {
	GetByID(ctx context.Context, kind domain.RecordKind, id uuid.UUID) (*domain.LexicalRecord, error)
	List(ctx context.Context, kind domain.RecordKind, limit, offset int) ([]domain.LexicalRecord, error)
	Create(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error)
	Update(ctx context.Context, rec *domain.LexicalRecord) (*domain.LexicalRecord, error)
	Delete(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
}

type boardRepo interface {
	List(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	Create(ctx context.Context, b *domain.Board) (*domain.Board, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.BoardType, error)
	AddItem(ctx context.Context, boardID, recordID uuid.UUID) error
	RemoveRecord(ctx context.Context, recordID uuid.UUID) (int, error)
	ListItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
}

type lessonRepo interface {
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
	Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type dictionaryProvider interface {
	FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error)
}

type boardCache interface {
	Get(ctx context.Context, boardType domain.BoardType) ([]domain.Board, bool, error)
	Set(ctx context.Context, boardType domain.BoardType, boards []domain.Board) error
	Invalidate(ctx context.Context, boardType domain.BoardType) error
}

// Service implements the catalog API operations.
type Service struct {
	log     *slog.Logger
	records recordRepo
	boards  boardRepo
	lessons lessonRepo
	tx      txManager
	dict    dictionaryProvider
	cache   boardCache
}

// NewService creates a catalog Service. cache may be nil, in which case the
// board list is always read from the repository.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	boards boardRepo,
	lessons lessonRepo,
	tx txManager,
	dict dictionaryProvider,
	cache boardCache,
) *Service {
	return &Service{
		log:     logger.With("service", "catalog"),
		records: records,
		boards:  boards,
		lessons: lessons,
		tx:      tx,
		dict:    dict,
		cache:   cache,
	}
}
