package lexicon

import (
	"context"
	"sync"

	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/domain"
)

var _ pipeline = &pipelineMock{}

type pipelineMock struct {
	RunFunc func(ctx context.Context, lang *domain.LanguageDescription, phases []string) ([]app.PhaseResult, error)

	calls struct {
		Run []struct {
			Ctx    context.Context
			Lang   *domain.LanguageDescription
			Phases []string
		}
	}
	lockRun sync.RWMutex
}

func (mock *pipelineMock) Run(ctx context.Context, lang *domain.LanguageDescription, phases []string) ([]app.PhaseResult, error) {
	if mock.RunFunc == nil {
		panic("pipelineMock.RunFunc: method is nil but pipeline.Run was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Lang   *domain.LanguageDescription
		Phases []string
	}{Ctx: ctx, Lang: lang, Phases: phases}
	mock.lockRun.Lock()
	mock.calls.Run = append(mock.calls.Run, callInfo)
	mock.lockRun.Unlock()
	return mock.RunFunc(ctx, lang, phases)
}

func (mock *pipelineMock) RunCalls() []struct {
	Ctx    context.Context
	Lang   *domain.LanguageDescription
	Phases []string
} {
	mock.lockRun.RLock()
	calls := mock.calls.Run
	mock.lockRun.RUnlock()
	return calls
}
