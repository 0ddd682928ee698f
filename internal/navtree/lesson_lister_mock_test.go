package navtree

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"sync"
)

var _ lessonLister = &lessonListerMock{}

type lessonListerMock struct {
	ListLessonsFunc func(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error)

	calls struct {
		ListLessons []struct {
			Ctx     context.Context
			BoardID uuid.UUID
		}
	}
	lockListLessons sync.RWMutex
}

func (mock *lessonListerMock) ListLessons(ctx context.Context, boardID uuid.UUID) ([]domain.Lesson, error) {
	if mock.ListLessonsFunc == nil {
		panic("lessonListerMock.ListLessonsFunc: method is nil but lessonLister.ListLessons was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
	}{Ctx: ctx, BoardID: boardID}
	mock.lockListLessons.Lock()
	mock.calls.ListLessons = append(mock.calls.ListLessons, callInfo)
	mock.lockListLessons.Unlock()
	return mock.ListLessonsFunc(ctx, boardID)
}

func (mock *lessonListerMock) ListLessonsCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
} {
	mock.lockListLessons.RLock()
	calls := mock.calls.ListLessons
	mock.lockListLessons.RUnlock()
	return calls
}
