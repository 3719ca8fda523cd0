package server

import (
	"context"

	"github.com/sig-0/vesdash/history"
	"github.com/sig-0/vesdash/state"
)

type (
	snapshotDelegate     func() state.State
	refreshRatesDelegate func(context.Context, bool, bool)
	setActiveTabDelegate func(state.Tab)
)

type mockDashboard struct {
	snapshotFn     snapshotDelegate
	refreshRatesFn refreshRatesDelegate
	setActiveTabFn setActiveTabDelegate
}

func (m *mockDashboard) Snapshot() state.State {
	if m.snapshotFn != nil {
		return m.snapshotFn()
	}

	return state.State{}
}

func (m *mockDashboard) RefreshRates(ctx context.Context, showNotification, manual bool) {
	if m.refreshRatesFn != nil {
		m.refreshRatesFn(ctx, showNotification, manual)
	}
}

func (m *mockDashboard) SetActiveTab(tab state.Tab) {
	if m.setActiveTabFn != nil {
		m.setActiveTabFn(tab)
	}
}

type fetchDelegate func(context.Context, history.Params) (*history.Result, error)

type mockHistoryQuerier struct {
	fetchFn fetchDelegate
}

func (m *mockHistoryQuerier) Fetch(ctx context.Context, p history.Params) (*history.Result, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, p)
	}

	return nil, nil
}
