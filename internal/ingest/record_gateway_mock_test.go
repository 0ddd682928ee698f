package ingest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"sync"
)

var _ recordGateway = &recordGatewayMock{}

type recordGatewayMock struct {
	CreateRecordFunc func(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error)
	DeleteRecordFunc func(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error
	UpdateRecordFunc func(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error

	calls struct {
		CreateRecord []struct {
			Ctx     context.Context
			Kind    domain.RecordKind
			Payload domain.RecordPayload
		}
		DeleteRecord []struct {
			Ctx  context.Context
			Kind domain.RecordKind
			ID   uuid.UUID
		}
		UpdateRecord []struct {
			Ctx     context.Context
			Kind    domain.RecordKind
			ID      uuid.UUID
			Payload domain.RecordPayload
		}
	}
	lockCreateRecord sync.RWMutex
	lockDeleteRecord sync.RWMutex
	lockUpdateRecord sync.RWMutex
}

func (mock *recordGatewayMock) CreateRecord(ctx context.Context, kind domain.RecordKind, payload domain.RecordPayload) (uuid.UUID, error) {
	if mock.CreateRecordFunc == nil {
		panic("recordGatewayMock.CreateRecordFunc: method is nil but recordGateway.CreateRecord was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Kind    domain.RecordKind
		Payload domain.RecordPayload
	}{Ctx: ctx, Kind: kind, Payload: payload}
	mock.lockCreateRecord.Lock()
	mock.calls.CreateRecord = append(mock.calls.CreateRecord, callInfo)
	mock.lockCreateRecord.Unlock()
	return mock.CreateRecordFunc(ctx, kind, payload)
}

func (mock *recordGatewayMock) CreateRecordCalls() []struct {
	Ctx     context.Context
	Kind    domain.RecordKind
	Payload domain.RecordPayload
} {
	mock.lockCreateRecord.RLock()
	calls := mock.calls.CreateRecord
	mock.lockCreateRecord.RUnlock()
	return calls
}

func (mock *recordGatewayMock) DeleteRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID) error {
	if mock.DeleteRecordFunc == nil {
		panic("recordGatewayMock.DeleteRecordFunc: method is nil but recordGateway.DeleteRecord was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.RecordKind
		ID   uuid.UUID
	}{Ctx: ctx, Kind: kind, ID: id}
	mock.lockDeleteRecord.Lock()
	mock.calls.DeleteRecord = append(mock.calls.DeleteRecord, callInfo)
	mock.lockDeleteRecord.Unlock()
	return mock.DeleteRecordFunc(ctx, kind, id)
}

func (mock *recordGatewayMock) DeleteRecordCalls() []struct {
	Ctx  context.Context
	Kind domain.RecordKind
	ID   uuid.UUID
} {
	mock.lockDeleteRecord.RLock()
	calls := mock.calls.DeleteRecord
	mock.lockDeleteRecord.RUnlock()
	return calls
}

func (mock *recordGatewayMock) UpdateRecord(ctx context.Context, kind domain.RecordKind, id uuid.UUID, payload domain.RecordPayload) error {
	if mock.UpdateRecordFunc == nil {
		panic("recordGatewayMock.UpdateRecordFunc: method is nil but recordGateway.UpdateRecord was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Kind    domain.RecordKind
		ID      uuid.UUID
		Payload domain.RecordPayload
	}{Ctx: ctx, Kind: kind, ID: id, Payload: payload}
	mock.lockUpdateRecord.Lock()
	mock.calls.UpdateRecord = append(mock.calls.UpdateRecord, callInfo)
	mock.lockUpdateRecord.Unlock()
	return mock.UpdateRecordFunc(ctx, kind, id, payload)
}

func (mock *recordGatewayMock) UpdateRecordCalls() []struct {
	Ctx     context.Context
	Kind    domain.RecordKind
	ID      uuid.UUID
	Payload domain.RecordPayload
} {
	mock.lockUpdateRecord.RLock()
	calls := mock.calls.UpdateRecord
	mock.lockUpdateRecord.RUnlock()
	return calls
}
