package lexicon

import (
	"context"
	"sync"

	"github.com/heartmarshall/conlang/internal/domain"
)

var _ languageRepo = &languageRepoMock{}

type languageRepoMock struct {
	CreateFunc    func(ctx context.Context, lang *domain.LanguageDescription) error
	DeleteFunc    func(ctx context.Context, name string) error
	GetByNameFunc func(ctx context.Context, name string) (*domain.LanguageDescription, error)
	ListFunc      func(ctx context.Context) ([]domain.LanguageSummary, error)
	SaveFunc      func(ctx context.Context, lang *domain.LanguageDescription) error

	calls struct {
		Create []struct {
			Ctx  context.Context
			Lang *domain.LanguageDescription
		}
		Delete []struct {
			Ctx  context.Context
			Name string
		}
		GetByName []struct {
			Ctx  context.Context
			Name string
		}
		List []struct {
			Ctx context.Context
		}
		Save []struct {
			Ctx  context.Context
			Lang *domain.LanguageDescription
		}
	}
	lockCreate    sync.RWMutex
	lockDelete    sync.RWMutex
	lockGetByName sync.RWMutex
	lockList      sync.RWMutex
	lockSave      sync.RWMutex
}

func (mock *languageRepoMock) Create(ctx context.Context, lang *domain.LanguageDescription) error {
	if mock.CreateFunc == nil {
		panic("languageRepoMock.CreateFunc: method is nil but languageRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Lang *domain.LanguageDescription
	}{Ctx: ctx, Lang: lang}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, lang)
}

func (mock *languageRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Lang *domain.LanguageDescription
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *languageRepoMock) Delete(ctx context.Context, name string) error {
	if mock.DeleteFunc == nil {
		panic("languageRepoMock.DeleteFunc: method is nil but languageRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, name)
}

func (mock *languageRepoMock) DeleteCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *languageRepoMock) GetByName(ctx context.Context, name string) (*domain.LanguageDescription, error) {
	if mock.GetByNameFunc == nil {
		panic("languageRepoMock.GetByNameFunc: method is nil but languageRepo.GetByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockGetByName.Lock()
	mock.calls.GetByName = append(mock.calls.GetByName, callInfo)
	mock.lockGetByName.Unlock()
	return mock.GetByNameFunc(ctx, name)
}

func (mock *languageRepoMock) GetByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockGetByName.RLock()
	calls := mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

func (mock *languageRepoMock) List(ctx context.Context) ([]domain.LanguageSummary, error) {
	if mock.ListFunc == nil {
		panic("languageRepoMock.ListFunc: method is nil but languageRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *languageRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *languageRepoMock) Save(ctx context.Context, lang *domain.LanguageDescription) error {
	if mock.SaveFunc == nil {
		panic("languageRepoMock.SaveFunc: method is nil but languageRepo.Save was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Lang *domain.LanguageDescription
	}{Ctx: ctx, Lang: lang}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, lang)
}

func (mock *languageRepoMock) SaveCalls() []struct {
	Ctx  context.Context
	Lang *domain.LanguageDescription
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}
