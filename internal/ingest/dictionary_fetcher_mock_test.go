package ingest

import (
	"context"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"sync"
)

var _ dictionaryFetcher = &dictionaryFetcherMock{}

type dictionaryFetcherMock struct {
	FetchDictionaryFunc func(ctx context.Context, word string) (*domain.PartialRecord, error)

	calls struct {
		FetchDictionary []struct {
			Ctx  context.Context
			Word string
		}
	}
	lockFetchDictionary sync.RWMutex
}

func (mock *dictionaryFetcherMock) FetchDictionary(ctx context.Context, word string) (*domain.PartialRecord, error) {
	if mock.FetchDictionaryFunc == nil {
		panic("dictionaryFetcherMock.FetchDictionaryFunc: method is nil but dictionaryFetcher.FetchDictionary was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Word string
	}{Ctx: ctx, Word: word}
	mock.lockFetchDictionary.Lock()
	mock.calls.FetchDictionary = append(mock.calls.FetchDictionary, callInfo)
	mock.lockFetchDictionary.Unlock()
	return mock.FetchDictionaryFunc(ctx, word)
}

func (mock *dictionaryFetcherMock) FetchDictionaryCalls() []struct {
	Ctx  context.Context
	Word string
} {
	mock.lockFetchDictionary.RLock()
	calls := mock.calls.FetchDictionary
	mock.lockFetchDictionary.RUnlock()
	return calls
}
