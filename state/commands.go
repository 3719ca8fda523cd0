package state

import (
	"time"

	"github.com/sig-0/vesdash/quote"
)

// command is a single tagged state transition
type command interface {
	isCommand()
}

type setLoading struct {
	loading bool
}

type setRates struct {
	rates []quote.Quotation
	at    time.Time
}

type setError struct {
	message string
}

type clearError struct{}

type updateRate struct {
	id    string
	patch quote.RatePatch
	at    time.Time
}

type setOnline struct {
	online bool
}

type setActiveTab struct {
	tab Tab
}

type markInitialLoad struct{}

type markManualRefresh struct {
	at time.Time
}

func (setLoading) isCommand()        {}
func (setRates) isCommand()          {}
func (setError) isCommand()          {}
func (clearError) isCommand()        {}
func (updateRate) isCommand()        {}
func (setOnline) isCommand()         {}
func (setActiveTab) isCommand()      {}
func (markInitialLoad) isCommand()   {}
func (markManualRefresh) isCommand() {}

// apply is the pure transition function over the dashboard state.
// It never mutates the given state, the rate list is copied on write
func apply(s State, cmd command) State {
	switch c := cmd.(type) {
	case setLoading:
		s.IsLoading = c.loading
	case setRates:
		// The rate list is replaced wholesale, there is
		// no incremental merge across refreshes
		s.Rates = c.rates
		s.IsLoading = false
		s.Error = ""
		s.LastUpdate = c.at
	case setError:
		s.Error = c.message
		s.IsLoading = false
	case clearError:
		s.Error = ""
	case updateRate:
		rates := make([]quote.Quotation, len(s.Rates))

		for i, rate := range s.Rates {
			if rate.ID == c.id {
				rate = patchQuotation(rate, c.patch, c.at)
			}

			rates[i] = rate
		}

		s.Rates = rates
	case setOnline:
		s.IsOnline = c.online
	case setActiveTab:
		s.ActiveTab = c.tab
	case markInitialLoad:
		s.InitialLoadAttempted = true
	case markManualRefresh:
		s.LastManualRefresh = c.at
	}

	return s
}

// patchQuotation applies the non-nil patch fields and stamps
// the entity's last local mutation time
func patchQuotation(q quote.Quotation, patch quote.RatePatch, at time.Time) quote.Quotation {
	if patch.Buy != nil {
		q.Buy = *patch.Buy
	}

	if patch.Sell != nil {
		q.Sell = *patch.Sell
	}

	if patch.Avg != nil {
		q.Avg = *patch.Avg
	}

	if patch.Volume24h != nil {
		q.Volume24h = patch.Volume24h
	}

	q.LastUpdate = at

	return q
}
