package state

import (
	"context"

	"github.com/sig-0/vesdash/upstream"
)

type currentRatesDelegate func(context.Context) (*upstream.CurrentResponse, error)

type mockRateSource struct {
	currentRatesFn currentRatesDelegate
}

func (m *mockRateSource) CurrentRates(ctx context.Context) (*upstream.CurrentResponse, error) {
	if m.currentRatesFn != nil {
		return m.currentRatesFn(ctx)
	}

	return nil, nil
}

type noticeDelegate func(title, detail string)

type mockNotifier struct {
	successFn noticeDelegate
	errorFn   noticeDelegate
}

func (m *mockNotifier) Success(title, detail string) {
	if m.successFn != nil {
		m.successFn(title, detail)
	}
}

func (m *mockNotifier) Error(title, detail string) {
	if m.errorFn != nil {
		m.errorFn(title, detail)
	}
}

type mockObserver struct {
	ch chan bool
}

func (m *mockObserver) Changes() <-chan bool {
	return m.ch
}
