package ingest

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ boardLinker = &boardLinkerMock{}

type boardLinkerMock struct {
	LinkToBoardFunc func(ctx context.Context, boardID uuid.UUID, itemID uuid.UUID) error

	calls struct {
		LinkToBoard []struct {
			Ctx     context.Context
			BoardID uuid.UUID
			ItemID  uuid.UUID
		}
	}
	lockLinkToBoard sync.RWMutex
}

func (mock *boardLinkerMock) LinkToBoard(ctx context.Context, boardID uuid.UUID, itemID uuid.UUID) error {
	if mock.LinkToBoardFunc == nil {
		panic("boardLinkerMock.LinkToBoardFunc: method is nil but boardLinker.LinkToBoard was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		BoardID uuid.UUID
		ItemID  uuid.UUID
	}{Ctx: ctx, BoardID: boardID, ItemID: itemID}
	mock.lockLinkToBoard.Lock()
	mock.calls.LinkToBoard = append(mock.calls.LinkToBoard, callInfo)
	mock.lockLinkToBoard.Unlock()
	return mock.LinkToBoardFunc(ctx, boardID, itemID)
}

func (mock *boardLinkerMock) LinkToBoardCalls() []struct {
	Ctx     context.Context
	BoardID uuid.UUID
	ItemID  uuid.UUID
} {
	mock.lockLinkToBoard.RLock()
	calls := mock.calls.LinkToBoard
	mock.lockLinkToBoard.RUnlock()
	return calls
}
