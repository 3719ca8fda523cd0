package state

import (
	"time"

	"github.com/sig-0/vesdash/quote"
)

type Tab string

const (
	TabAll    Tab = "all"
	TabDolar  Tab = "dolar"
	TabEuro   Tab = "euro"
	TabCripto Tab = "cripto"
)

func (t Tab) String() string {
	return string(t)
}

// ValidTab reports whether the given tab is one of the known tabs
func ValidTab(t Tab) bool {
	switch t {
	case TabAll, TabDolar, TabEuro, TabCripto:
		return true
	default:
		return false
	}
}

// State is the session-wide dashboard state.
// It is a value, transitions produce a new copy
type State struct {
	Rates                []quote.Quotation `json:"rates"`
	IsLoading            bool              `json:"is_loading"`
	Error                string            `json:"error,omitempty"`
	LastUpdate           time.Time         `json:"last_update"`
	IsOnline             bool              `json:"is_online"`
	ActiveTab            Tab               `json:"active_tab"`
	InitialLoadAttempted bool              `json:"initial_load_attempted"`
	LastManualRefresh    time.Time         `json:"last_manual_refresh"`
}

// initialState is the state at session start: no rates,
// not loading, online, all tabs
func initialState() State {
	return State{
		IsOnline:  true,
		ActiveTab: TabAll,
	}
}
