package itinerary

import (
	"context"
	"sync"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

var (
	_ generator      = &generatorMock{}
	_ placeLookup    = &placeLookupMock{}
	_ snapshotStore  = &snapshotStoreMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type generatorMock struct {
	GenerateFunc func(ctx context.Context, trip domain.Trip) ([]byte, error)

	calls struct {
		Generate []struct {
			Ctx  context.Context
			Trip domain.Trip
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *generatorMock) Generate(ctx context.Context, trip domain.Trip) ([]byte, error) {
	if mock.GenerateFunc == nil {
		panic("generatorMock.GenerateFunc: method is nil but generator.Generate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Trip domain.Trip
	}{Ctx: ctx, Trip: trip}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, trip)
}

func (mock *generatorMock) GenerateCalls() []struct {
	Ctx  context.Context
	Trip domain.Trip
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

type placeLookupMock struct {
	FindPlaceFunc func(ctx context.Context, query string) (*domain.Place, error)

	calls struct {
		FindPlace []struct {
			Ctx   context.Context
			Query string
		}
	}
	lockFindPlace sync.RWMutex
}

func (mock *placeLookupMock) FindPlace(ctx context.Context, query string) (*domain.Place, error) {
	if mock.FindPlaceFunc == nil {
		panic("placeLookupMock.FindPlaceFunc: method is nil but placeLookup.FindPlace was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Query string
	}{Ctx: ctx, Query: query}
	mock.lockFindPlace.Lock()
	mock.calls.FindPlace = append(mock.calls.FindPlace, callInfo)
	mock.lockFindPlace.Unlock()
	return mock.FindPlaceFunc(ctx, query)
}

func (mock *placeLookupMock) FindPlaceCalls() []struct {
	Ctx   context.Context
	Query string
} {
	mock.lockFindPlace.RLock()
	calls := mock.calls.FindPlace
	mock.lockFindPlace.RUnlock()
	return calls
}

type snapshotStoreMock struct {
	PutFunc func(ctx context.Context, key string, data []byte, contentType string) error

	calls struct {
		Put []struct {
			Ctx         context.Context
			Key         string
			Data        []byte
			ContentType string
		}
	}
	lockPut sync.RWMutex
}

func (mock *snapshotStoreMock) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if mock.PutFunc == nil {
		panic("snapshotStoreMock.PutFunc: method is nil but snapshotStore.Put was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Key         string
		Data        []byte
		ContentType string
	}{Ctx: ctx, Key: key, Data: data, ContentType: contentType}
	mock.lockPut.Lock()
	mock.calls.Put = append(mock.calls.Put, callInfo)
	mock.lockPut.Unlock()
	return mock.PutFunc(ctx, key, data, contentType)
}

func (mock *snapshotStoreMock) PutCalls() []struct {
	Ctx         context.Context
	Key         string
	Data        []byte
	ContentType string
} {
	mock.lockPut.RLock()
	calls := mock.calls.Put
	mock.lockPut.RUnlock()
	return calls
}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, e syncevent.Event) error

	calls struct {
		Publish []struct {
			Ctx context.Context
			E   syncevent.Event
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, e syncevent.Event) error {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but eventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   syncevent.Event
	}{Ctx: ctx, E: e}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, e)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx context.Context
	E   syncevent.Event
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
