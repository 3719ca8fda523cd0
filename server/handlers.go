package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sig-0/vesdash/dashboard"
	"github.com/sig-0/vesdash/history"
	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/state"
)

// Reference quotation IDs for the official-vs-crypto gap
const (
	officialReferenceID = "usd-BCV"
	cryptoReferenceID   = "usdt-BINANCE_P2P"
)

var (
	errInvalidTab         = errors.New("invalid tab")
	errHistoryUnavailable = errors.New("Error al cargar cualquier dato histórico.")
)

// CurrentRates renders the current-quotation cards for a tab.
// The optional tab query parameter scopes the view without
// changing the session's active tab
func (s *Server) CurrentRates(w http.ResponseWriter, r *http.Request) {
	snapshot := s.dashboard.Snapshot()

	tab := snapshot.ActiveTab

	if raw := r.URL.Query().Get("tab"); raw != "" {
		parsed := state.Tab(raw)
		if !state.ValidTab(parsed) {
			writeError(w, http.StatusBadRequest, errInvalidTab)

			return
		}

		tab = parsed
	}

	writeJSON(w, http.StatusOK, currentView(snapshot, tab))
}

// Refresh triggers a manual rate refresh.
// Rate-limited rejections surface only through the notifier,
// the response always carries the resulting snapshot
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	s.dashboard.RefreshRates(r.Context(), true, true)

	snapshot := s.dashboard.Snapshot()

	writeJSON(w, http.StatusOK, currentView(snapshot, snapshot.ActiveTab))
}

// ActiveTab sets the session's active display tab
func (s *Server) ActiveTab(w http.ResponseWriter, r *http.Request) {
	tab := state.Tab(r.URL.Query().Get("tab"))
	if !state.ValidTab(tab) {
		writeError(w, http.StatusBadRequest, errInvalidTab)

		return
	}

	s.dashboard.SetActiveTab(tab)

	snapshot := s.dashboard.Snapshot()

	writeJSON(w, http.StatusOK, currentView(snapshot, snapshot.ActiveTab))
}

// History renders the historical view: validated filters, bounded
// record list, chart points and summary statistics
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	// Untrusted parameters coerce to defaults, never to errors
	params := history.ParseParams(r.URL.Query())

	result, err := s.histories.Fetch(r.Context(), params)
	if err != nil {
		s.logger.Debug(
			"unable to fetch historical view",
			"err", err,
		)

		writeError(w, http.StatusBadGateway, errHistoryUnavailable)

		return
	}

	points, stats := history.Aggregate(
		result.Records,
		history.MapSelection(params.Exchange),
		params.Days(),
		time.Now(),
	)

	writeJSON(w, http.StatusOK, &HistoryView{
		Records: result.Records,
		Warning: result.Warning,
		Start:   result.Start,
		End:     result.End,
		Points:  points,
		Stats:   stats,
		Query:   params.Query().Encode(),
	})
}

// currentView assembles the card view for a snapshot and tab
func currentView(snapshot state.State, tab state.Tab) *CurrentView {
	view := &CurrentView{
		Cards:      dashboard.Cards(snapshot.Rates, tab),
		IsLoading:  snapshot.IsLoading,
		Error:      snapshot.Error,
		LastUpdate: snapshot.LastUpdate,
		IsOnline:   snapshot.IsOnline,
		ActiveTab:  tab,
	}

	var official, crypto *quote.Quotation

	for i, rate := range snapshot.Rates {
		switch rate.ID {
		case officialReferenceID:
			official = &snapshot.Rates[i]
		case cryptoReferenceID:
			crypto = &snapshot.Rates[i]
		}
	}

	if official != nil && crypto != nil {
		gap := quote.Gap(official.Avg, crypto.Avg)
		view.CryptoGap = &gap
	}

	return view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
