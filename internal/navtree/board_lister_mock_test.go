package navtree

import (
	"context"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"sync"
)

var _ boardLister = &boardListerMock{}

type boardListerMock struct {
	ListBoardsFunc func(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error)

	calls struct {
		ListBoards []struct {
			Ctx       context.Context
			BoardType domain.BoardType
		}
	}
	lockListBoards sync.RWMutex
}

func (mock *boardListerMock) ListBoards(ctx context.Context, boardType domain.BoardType) ([]domain.Board, error) {
	if mock.ListBoardsFunc == nil {
		panic("boardListerMock.ListBoardsFunc: method is nil but boardLister.ListBoards was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		BoardType domain.BoardType
	}{Ctx: ctx, BoardType: boardType}
	mock.lockListBoards.Lock()
	mock.calls.ListBoards = append(mock.calls.ListBoards, callInfo)
	mock.lockListBoards.Unlock()
	return mock.ListBoardsFunc(ctx, boardType)
}

func (mock *boardListerMock) ListBoardsCalls() []struct {
	Ctx       context.Context
	BoardType domain.BoardType
} {
	mock.lockListBoards.RLock()
	calls := mock.calls.ListBoards
	mock.lockListBoards.RUnlock()
	return calls
}
