package itinerary

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

var _ itineraryRepo = &itineraryRepoMock{}

type itineraryRepoMock struct {
	CreateFunc func(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	UpdateFunc func(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	LoadFunc   func(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error)
	ListFunc   func(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.ItinerarySummary, int, error)
	DeleteFunc func(ctx context.Context, userID uuid.UUID, id string) error

	calls struct {
		Create []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Doc    domain.Document
		}
		Update []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Doc    domain.Document
		}
		Load []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     string
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Limit  int
			Offset int
		}
		Delete []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ID     string
		}
	}
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockLoad   sync.RWMutex
	lockList   sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *itineraryRepoMock) Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("itineraryRepoMock.CreateFunc: method is nil but itineraryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Doc    domain.Document
	}{Ctx: ctx, UserID: userID, Doc: doc}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, userID, doc)
}

func (mock *itineraryRepoMock) CreateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Doc    domain.Document
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *itineraryRepoMock) Update(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	if mock.UpdateFunc == nil {
		panic("itineraryRepoMock.UpdateFunc: method is nil but itineraryRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Doc    domain.Document
	}{Ctx: ctx, UserID: userID, Doc: doc}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, userID, doc)
}

func (mock *itineraryRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Doc    domain.Document
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *itineraryRepoMock) Load(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error) {
	if mock.LoadFunc == nil {
		panic("itineraryRepoMock.LoadFunc: method is nil but itineraryRepo.Load was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     string
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockLoad.Lock()
	mock.calls.Load = append(mock.calls.Load, callInfo)
	mock.lockLoad.Unlock()
	return mock.LoadFunc(ctx, userID, id)
}

func (mock *itineraryRepoMock) LoadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     string
} {
	mock.lockLoad.RLock()
	calls := mock.calls.Load
	mock.lockLoad.RUnlock()
	return calls
}

func (mock *itineraryRepoMock) List(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]domain.ItinerarySummary, int, error) {
	if mock.ListFunc == nil {
		panic("itineraryRepoMock.ListFunc: method is nil but itineraryRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Limit  int
		Offset int
	}{Ctx: ctx, UserID: userID, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, limit, offset)
}

func (mock *itineraryRepoMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *itineraryRepoMock) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	if mock.DeleteFunc == nil {
		panic("itineraryRepoMock.DeleteFunc: method is nil but itineraryRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     string
	}{Ctx: ctx, UserID: userID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *itineraryRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
