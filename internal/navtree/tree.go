// Package navtree is the lazily loaded Board → Lesson navigation tree.
package navtree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

// ErrUnknownBoard is returned for board ids that were not part of the mounted list.
var ErrUnknownBoard = errors.New("board is not in the tree")

type boardLister interface {
	ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)
}

// NodeState is the expansion state of a board node.
type NodeState int

const (
	Collapsed NodeState = iota
	Loading
	Expanded
)

func (s NodeState) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Loading:
		return "loading"
	case Expanded:
		return "expanded"
	default:
		return fmt.Sprintf("NodeState(%d)", int(s))
	}
}

// BoardNode is the view model of a board and, when expanded, its lessons.
type BoardNode struct {
	Board   domain.Board
	Path    string
	State   NodeState
	Active  bool
	Lessons []LessonNode
}

// LessonNode is the view model of a lesson.
type LessonNode struct {
	Lesson domain.Lesson
	Path   string
	Active bool
}

// Tree is the navigation tree of one catalog type.
type Tree struct {
	boards    boardLister
	cache     *LessonCache
	boardType domain.BoardType
	log       *slog.Logger

	mountMu sync.Mutex
	mounted bool

	mu    sync.Mutex
	order []uuid.UUID
	nodes map[uuid.UUID]*node
}

type node struct {
	board domain.Board
	state NodeState
}

// New creates a tree for boardType. The cache may be shared between trees.
func New(logger *slog.Logger, boards boardLister, cache *LessonCache, boardType domain.BoardType) *Tree {
	return &Tree{
		boards:    boards,
		cache:     cache,
		boardType: boardType,
		log:       logger.With("service", "navtree", "board_type", string(boardType)),
		nodes:     make(map[uuid.UUID]*node),
	}
}

// Mount loads the board list. After the first successful call Mount is a
// no-op; a failed call leaves the tree empty and the next call fetches again.
func (t *Tree) Mount(ctx context.Context) error {
	t.mountMu.Lock()
	defer t.mountMu.Unlock()
	if t.mounted {
		return nil
	}

	boards, err := t.boards.ListBoards(ctx, t.boardType)
	if err != nil {
		return fmt.Errorf("list boards: %w", err)
	}
	boards = slices.Clone(boards)
	slices.SortStableFunc(boards, func(a, b domain.Board) int { return a.Order - b.Order })

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range boards {
		t.order = append(t.order, b.ID)
		t.nodes[b.ID] = &node{board: b, state: Collapsed}
	}
	t.mounted = true
	t.log.DebugContext(ctx, "tree mounted", slog.Int("boards", len(boards)))
	return nil
}

// Expand opens a board, loading its lessons on first use. On failure the
// node returns to Collapsed and the next Expand tries again. If the board is
// collapsed while loading, it stays collapsed and the lessons are still cached.
func (t *Tree) Expand(ctx context.Context, boardID uuid.UUID) error {
	t.mu.Lock()
	n, ok := t.nodes[boardID]
	if !ok {
		t.mu.Unlock()
		return ErrUnknownBoard
	}
	if n.state == Expanded {
		t.mu.Unlock()
		return nil
	}
	n.state = Loading
	t.mu.Unlock()

	_, err := t.cache.Load(ctx, boardID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		if n.state == Loading {
			n.state = Collapsed
		}
		t.log.WarnContext(ctx, "lesson load failed",
			slog.String("board_id", boardID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}
	if n.state == Loading {
		n.state = Expanded
	}
	return nil
}

// Collapse closes a board, including one whose lessons are still loading.
// Loaded lessons stay cached.
func (t *Tree) Collapse(boardID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[boardID]
	if !ok {
		return ErrUnknownBoard
	}
	n.state = Collapsed
	return nil
}

// Toggle expands a collapsed board and collapses an expanded or loading one.
func (t *Tree) Toggle(ctx context.Context, boardID uuid.UUID) error {
	t.mu.Lock()
	n, ok := t.nodes[boardID]
	var state NodeState
	if ok {
		state = n.state
	}
	t.mu.Unlock()

	if !ok {
		return ErrUnknownBoard
	}
	if state == Collapsed {
		return t.Expand(ctx, boardID)
	}
	return t.Collapse(boardID)
}

// State returns the state of a board node.
func (t *Tree) State(boardID uuid.UUID) (NodeState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[boardID]
	if !ok {
		return Collapsed, false
	}
	return n.state, true
}

// Nodes returns the view of the tree for currentPath. Lessons are listed only
// for expanded boards.
func (t *Tree) Nodes(currentPath string) []BoardNode {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]BoardNode, 0, len(t.order))
	for _, id := range t.order {
		n := t.nodes[id]
		bn := BoardNode{
			Board: n.board,
			Path:  BoardPath(t.boardType, id),
			State: n.state,
		}
		bn.Active = IsActive(bn.Path, currentPath)

		if n.state == Expanded {
			lessons, _ := t.cache.Lessons(id)
			for _, l := range lessons {
				p := LessonPath(t.boardType, id, l.ID)
				bn.Lessons = append(bn.Lessons, LessonNode{
					Lesson: l,
					Path:   p,
					Active: IsActive(p, currentPath),
				})
			}
		}
		out = append(out, bn)
	}
	return out
}

// BoardPath is the route of a board node.
func BoardPath(boardType domain.BoardType, boardID uuid.UUID) string {
	return "/" + string(boardType) + "/" + boardID.String()
}

// LessonPath is the route of a lesson node.
func LessonPath(boardType domain.BoardType, boardID, lessonID uuid.UUID) string {
	return BoardPath(boardType, boardID) + "/" + lessonID.String()
}
