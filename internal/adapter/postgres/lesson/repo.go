// Package lesson implements the lesson repository using PostgreSQL.
package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// Repo provides lesson persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lesson repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	BoardID   uuid.UUID `db:"board_id"`
	Title     string    `db:"title"`
	SortOrder int       `db:"sort_order"`
	CreatedAt time.Time `db:"created_at"`
}

// ListByBoard returns the lessons of a board in sort order.
func (r *Repo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	sql, args, err := postgres.Builder().
		Select("id", "board_id", "title", "sort_order", "created_at").
		From("lessons").
		Where(squirrel.Eq{"board_id": boardID}).
		OrderBy("sort_order ASC", "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	out := make([]domain.Lesson, len(rows))
	for i, rw := range rows {
		out[i] = domain.Lesson{
			ID:        rw.ID,
			BoardID:   rw.BoardID,
			Title:     rw.Title,
			Order:     rw.SortOrder,
			CreatedAt: rw.CreatedAt,
		}
	}
	return out, nil
}

// Create inserts a lesson. A missing board yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, l *domain.Lesson) (*domain.Lesson, error) {
	id := l.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	sql, args, err := postgres.Builder().
		Insert("lessons").
		Columns("id", "board_id", "title", "sort_order").
		Values(id, l.BoardID, l.Title, l.Order).
		Suffix("RETURNING id, board_id, title, sort_order, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lesson", l.Title)
	}
	return &domain.Lesson{
		ID:        dst.ID,
		BoardID:   dst.BoardID,
		Title:     dst.Title,
		Order:     dst.SortOrder,
		CreatedAt: dst.CreatedAt,
	}, nil
}
