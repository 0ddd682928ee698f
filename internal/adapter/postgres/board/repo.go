// Package board implements the board repository and the board_items
// membership table using PostgreSQL.
package board

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

// Repo provides board persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new board repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	SortOrder int       `db:"sort_order"`
	CreatedAt time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Boards
// ---------------------------------------------------------------------------

// List returns the boards of a type ordered by sort order, then name.
func (r *Repo) List(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	sql, args, err := postgres.Builder().
		Select("id", "name", "type", "sort_order", "created_at").
		From("boards").
		Where(squirrel.Eq{"type": string(boardType)}).
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	out := make([]domain.Board, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// GetByID returns a board by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	sql, args, err := postgres.Builder().
		Select("id", "name", "type", "sort_order", "created_at").
		From("boards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "board", id)
	}
	b := toDomain(dst)
	return &b, nil
}

// Create inserts a board. A board with the same type and name yields
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Board) (*domain.Board, error) {
	id := b.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	sql, args, err := postgres.Builder().
		Insert("boards").
		Columns("id", "name", "type", "sort_order").
		Values(id, b.Name, string(b.Type), b.Order).
		Suffix("RETURNING id, name, type, sort_order, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, sql, args...); err != nil {
		return nil, postgres.MapError(err, "board", b.Name)
	}
	out := toDomain(dst)
	return &out, nil
}

// Delete removes a board with its lessons and memberships.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (domain.BoardType, error) {
	sql, args, err := postgres.Builder().
		Delete("boards").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING type").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var boardType string
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&boardType); err != nil {
		return "", postgres.MapError(err, "board", id)
	}
	return domain.BoardType(boardType), nil
}

// ---------------------------------------------------------------------------
// Membership
// ---------------------------------------------------------------------------

// AddItem links a record to a board. Linking twice is a no-op. A missing
// board or record yields domain.ErrNotFound.
func (r *Repo) AddItem(ctx context.Context, boardID, recordID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Insert("board_items").
		Columns("board_id", "record_id").
		Values(boardID, recordID).
		Suffix("ON CONFLICT (board_id, record_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "board_item", boardID.String()+"/"+recordID.String())
	}
	return nil
}

// RemoveRecord drops every membership of a record and returns how many
// boards it was removed from.
func (r *Repo) RemoveRecord(ctx context.Context, recordID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Delete("board_items").
		Where(squirrel.Eq{"record_id": recordID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "board_item", recordID)
	}
	return int(tag.RowsAffected()), nil
}

// ListItems returns the ids of records linked to a board, oldest link first.
func (r *Repo) ListItems(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := postgres.Builder().
		Select("record_id").
		From("board_items").
		Where(squirrel.Eq{"board_id": boardID}).
		OrderBy("created_at ASC", "record_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list board items: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func toDomain(r row) domain.Board {
	return domain.Board{
		ID:        r.ID,
		Name:      r.Name,
		Type:      domain.BoardType(r.Type),
		Order:     r.SortOrder,
		CreatedAt: r.CreatedAt,
	}
}
