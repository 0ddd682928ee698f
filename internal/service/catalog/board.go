package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

const maxBoardNameLength = 200

// CreateBoardInput holds the parameters for creating a board.
type CreateBoardInput struct {
	Name  string           `json:"name"`
	Type  domain.BoardType `json:"type"`
	Order int              `json:"order"`
}

// Validate checks all fields and collects all errors.
func (i CreateBoardInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxBoardNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be vocabulary, grammar or idioms"})
	}
	if i.Order < 0 {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateLessonInput holds the parameters for adding a lesson to a board.
type CreateLessonInput struct {
	BoardID uuid.UUID `json:"-"`
	Title   string    `json:"title"`
	Order   int       `json:"order"`
}

// Validate checks all fields and collects all errors.
func (i CreateLessonInput) Validate() error {
	var errs []domain.FieldError

	if i.BoardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "boardId", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.Order < 0 {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListBoards returns the boards of one catalog type ordered for navigation.
// The list is served from the board cache when one is configured; cache
// failures fall back to the repository.
func (s *Service) ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	if !boardType.IsValid() {
		return nil, domain.NewValidationError("type", "must be vocabulary, grammar or idioms")
	}

	if s.cache != nil {
		boards, ok, err := s.cache.Get(ctx, boardType)
		if err != nil {
			s.log.WarnContext(ctx, "board cache read failed",
				slog.String("type", boardType.String()),
				slog.String("error", err.Error()),
			)
		} else if ok {
			return boards, nil
		}
	}

	boards, err := s.boards.List(ctx, boardType)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, boardType, boards); err != nil {
			s.log.WarnContext(ctx, "board cache write failed",
				slog.String("type", boardType.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return boards, nil
}

// CreateBoard adds a board and drops the cached list of its type.
func (s *Service) CreateBoard(ctx context.Context, input CreateBoardInput) (*domain.Board, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	b, err := s.boards.Create(ctx, &domain.Board{
		Name:  strings.TrimSpace(input.Name),
		Type:  input.Type,
		Order: input.Order,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	s.invalidate(ctx, b.Type)

	s.log.InfoContext(ctx, "board created",
		slog.String("board_id", b.ID.String()),
		slog.String("type", b.Type.String()),
		slog.String("caller_id", callerID(ctx)),
	)
	return b, nil
}

// DeleteBoard removes a board together with its lessons and memberships.
func (s *Service) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	boardType, err := s.boards.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	s.invalidate(ctx, boardType)

	s.log.InfoContext(ctx, "board deleted",
		slog.String("board_id", id.String()),
		slog.String("caller_id", callerID(ctx)),
	)
	return nil
}

// LinkItem adds a record to a board. Linking an existing member succeeds
// without change.
func (s *Service) LinkItem(ctx context.Context, boardID, recordID uuid.UUID) error {
	if recordID == uuid.Nil {
		return domain.NewValidationError("itemId", "required")
	}
	if err := s.boards.AddItem(ctx, boardID, recordID); err != nil {
		return fmt.Errorf("link item: %w", err)
	}

	s.log.InfoContext(ctx, "board item linked",
		slog.String("board_id", boardID.String()),
		slog.String("record_id", recordID.String()),
	)
	return nil
}

// ListBoardItems returns the ids of the records on a board.
func (s *Service) ListBoardItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	return s.boards.ListItems(ctx, boardID)
}

// ListLessons returns the lessons of a board in order. An unknown board is
// reported as not found rather than as an empty list.
func (s *Service) ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	if boardID == uuid.Nil {
		return nil, domain.NewValidationError("boardId", "required")
	}
	if _, err := s.boards.GetByID(ctx, boardID); err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// CreateLesson adds a lesson to a board.
func (s *Service) CreateLesson(ctx context.Context, input CreateLessonInput) (*domain.Lesson, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	l, err := s.lessons.Create(ctx, &domain.Lesson{
		BoardID: input.BoardID,
		Title:   strings.TrimSpace(input.Title),
		Order:   input.Order,
	})
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	s.log.InfoContext(ctx, "lesson created",
		slog.String("lesson_id", l.ID.String()),
		slog.String("board_id", l.BoardID.String()),
	)
	return l, nil
}

func (s *Service) invalidate(ctx context.Context, boardType domain.BoardType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, boardType); err != nil {
		s.log.WarnContext(ctx, "board cache invalidation failed",
			slog.String("type", boardType.String()),
			slog.String("error", err.Error()),
		)
	}
}
