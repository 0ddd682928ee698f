package navtree

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

type lessonLister interface {
	ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)
}

// EntryStatus is the load state of one board's lessons.
type EntryStatus int

const (
	StatusNotLoaded EntryStatus = iota
	StatusLoading
	StatusLoaded
)

type entry struct {
	status  EntryStatus
	lessons []domain.Lesson
}

// CacheStats counts gateway calls made by a LessonCache.
type CacheStats struct {
	Fetches  int
	Failures int
	PerBoard map[uuid.UUID]int
}

// LessonCache holds the lessons of each board for the lifetime of a session.
// A board's lessons are fetched at most once; concurrent loads of the same
// board share one request, and failed loads are not remembered. The shared
// request is not cancelled when the caller that started it gives up.
type LessonCache struct {
	lister lessonLister
	group  singleflight.Group

	mu       sync.Mutex
	entries  map[uuid.UUID]*entry
	fetches  map[uuid.UUID]int
	failures int
}

// NewLessonCache creates an empty cache.
func NewLessonCache(lister lessonLister) *LessonCache {
	return &LessonCache{
		lister:  lister,
		entries: make(map[uuid.UUID]*entry),
		fetches: make(map[uuid.UUID]int),
	}
}

// Status returns the load state of boardID.
func (c *LessonCache) Status(boardID uuid.UUID) EntryStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[boardID]; ok {
		return e.status
	}
	return StatusNotLoaded
}

// Lessons returns the cached lessons of boardID, if loaded.
func (c *LessonCache) Lessons(boardID uuid.UUID) ([]domain.Lesson, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[boardID]
	if !ok || e.status != StatusLoaded {
		return nil, false
	}
	return slices.Clone(e.lessons), true
}

// Load returns the lessons of boardID, fetching them on first use. A cancelled
// ctx returns early without affecting other callers waiting on the same board.
func (c *LessonCache) Load(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	if lessons, ok := c.Lessons(boardID); ok {
		return lessons, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(boardID.String(), func() (any, error) {
		c.mu.Lock()
		if e, ok := c.entries[boardID]; ok && e.status == StatusLoaded {
			c.mu.Unlock()
			return e.lessons, nil
		}
		c.entries[boardID] = &entry{status: StatusLoading}
		c.fetches[boardID]++
		c.mu.Unlock()

		lessons, err := c.lister.ListLessons(fetchCtx, boardID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			delete(c.entries, boardID)
			c.failures++
			return nil, fmt.Errorf("load lessons of board %s: %w", boardID, err)
		}
		lessons = slices.Clone(lessons)
		slices.SortStableFunc(lessons, func(a, b domain.Lesson) int { return a.Order - b.Order })
		c.entries[boardID] = &entry{status: StatusLoaded, lessons: lessons}
		return lessons, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]domain.Lesson)), nil
	}
}

// Stats returns a snapshot of fetch counters.
func (c *LessonCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := CacheStats{Failures: c.failures, PerBoard: make(map[uuid.UUID]int, len(c.fetches))}
	for id, n := range c.fetches {
		s.Fetches += n
		s.PerBoard[id] = n
	}
	return s
}
