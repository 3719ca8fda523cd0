package server

import (
	"time"

	"github.com/sig-0/vesdash/history"
	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/state"
)

// CurrentView is the current-quotations dashboard payload
type CurrentView struct {
	Cards []quote.Quotation `json:"cards"`

	IsLoading  bool      `json:"is_loading"`
	Error      string    `json:"error,omitempty"`
	LastUpdate time.Time `json:"last_update"`
	IsOnline   bool      `json:"is_online"`
	ActiveTab  state.Tab `json:"active_tab"`

	// Official-vs-crypto spread, present when both
	// reference quotations are loaded
	CryptoGap *float64 `json:"crypto_gap,omitempty"`
}

// HistoryView is the historical dashboard payload: the filtered
// record list plus the chart-ready day series
type HistoryView struct {
	Records []quote.HistoricalRate `json:"records"`
	Warning string                 `json:"warning,omitempty"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Points []history.Point `json:"points"`
	Stats  history.Stats   `json:"stats"`

	// Canonical shareable query string, defaults omitted
	Query string `json:"query"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
