package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/upstream"
)

// ManualRefreshInterval is the minimum wall-clock spacing
// between manual refreshes
const ManualRefreshInterval = 2 * time.Minute

const manualRefreshKey = "manual-refresh"

// Fixed user-facing messages, surfaced as-is by the UI
const (
	refreshErrorMessage = "Error al actualizar las cotizaciones"

	limitedNoticeTitle  = "Actualización no disponible"
	limitedNoticeDetail = "Por favor, espera un momento antes de intentar actualizar nuevamente."

	refreshedNoticeTitle = "Tasas actualizadas correctamente"
	failedNoticeTitle    = "Error al actualizar las tasas"
	failedNoticeDetail   = "No se pudieron cargar las cotizaciones"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// RateSource fetches the current quotations
type RateSource interface {
	CurrentRates(ctx context.Context) (*upstream.CurrentResponse, error)
}

// ConnectivityObserver emits network online / offline transitions
type ConnectivityObserver interface {
	// Changes yields connectivity transitions for the session lifetime
	Changes() <-chan bool
}

// Manager holds the authoritative in-memory list of current
// quotations and owns the fetch / refresh protocol.
// It is the single state container of the session, all mutations
// go through its action methods
type Manager struct {
	source   RateSource
	notifier Notifier
	logger   *slog.Logger

	refreshLimiter *limiter.Limiter
	now            func() time.Time

	initialLoad sync.Once

	state State
	mu    sync.RWMutex
}

// NewManager creates a new rate state manager
func NewManager(source RateSource, opts ...Option) *Manager {
	m := &Manager{
		source: source,
		logger: noopLogger,
		now:    time.Now,
		state:  initialState(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(m)
	}

	if m.notifier == nil {
		m.notifier = NewLogNotifier(m.logger)
	}

	if m.refreshLimiter == nil {
		m.refreshLimiter = limiter.New(
			memorystore.NewStore(),
			limiter.Rate{
				Period: ManualRefreshInterval,
				Limit:  1,
			},
		)
	}

	return m
}

// Snapshot returns a copy of the current dashboard state
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.state
	s.Rates = make([]quote.Quotation, len(m.state.Rates))
	copy(s.Rates, m.state.Rates)

	return s
}

// Activate triggers the one automatic initial load of the session.
// It is safe to call on every view mount, the load fires at most once
func (m *Manager) Activate(ctx context.Context) {
	m.initialLoad.Do(func() {
		m.mu.RLock()
		needed := len(m.state.Rates) == 0 && !m.state.InitialLoadAttempted
		m.mu.RUnlock()

		if !needed {
			return
		}

		// Silent, non-manual, exempt from the manual rate limit
		m.RefreshRates(ctx, false, false)
	})
}

// RefreshRates fetches the current quotations and replaces the rate
// list wholesale. Manual triggers are rate limited, rejected calls
// are dropped and never deferred. Concurrent refreshes are not
// queued or canceled, the last response to resolve wins
func (m *Manager) RefreshRates(ctx context.Context, showNotification, manual bool) {
	if manual && m.manualRefreshLimited(ctx) {
		m.notifier.Error(limitedNoticeTitle, limitedNoticeDetail)

		return
	}

	now := m.now()

	m.mu.Lock()
	m.state = apply(m.state, clearError{})
	m.state = apply(m.state, setLoading{loading: true})
	m.state = apply(m.state, markInitialLoad{})

	if manual {
		// Recorded before the network call resolves, so rapid
		// double-clicks cannot slip past the limiter
		m.state = apply(m.state, markManualRefresh{at: now})
	}
	m.mu.Unlock()

	resp, err := m.source.CurrentRates(ctx)
	if err != nil {
		m.failRefresh(showNotification, err)

		return
	}

	if resp.Status != upstream.StatusSuccess {
		m.failRefresh(
			showNotification,
			fmt.Errorf("invalid payload status %q", resp.Status),
		)

		return
	}

	rates := flattenRates(resp, now)

	m.mu.Lock()
	m.state = apply(m.state, setRates{rates: rates, at: m.now()})
	m.mu.Unlock()

	m.logger.Info(
		"rates refreshed",
		"count", len(rates),
		"manual", manual,
	)

	if showNotification && len(rates) > 0 {
		m.notifier.Success(
			refreshedNoticeTitle,
			fmt.Sprintf("Se actualizaron %d cotizaciones", len(rates)),
		)
	}
}

// UpdateRate patches a single quotation in place, by ID.
// Unknown IDs are a no-op, not an error
func (m *Manager) UpdateRate(id string, patch quote.RatePatch) {
	m.mu.Lock()
	m.state = apply(m.state, updateRate{
		id:    id,
		patch: patch,
		at:    m.now(),
	})
	m.mu.Unlock()
}

// ClearError clears the error state, nothing else
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.state = apply(m.state, clearError{})
	m.mu.Unlock()
}

// SetActiveTab sets the active display tab
func (m *Manager) SetActiveTab(tab Tab) {
	if !ValidTab(tab) {
		return
	}

	m.mu.Lock()
	m.state = apply(m.state, setActiveTab{tab: tab})
	m.mu.Unlock()
}

// WatchConnectivity mirrors observer transitions into the state
// for the lifetime of the given context.
// A transition never triggers a refresh by itself
func (m *Manager) WatchConnectivity(ctx context.Context, obs ConnectivityObserver) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case online, ok := <-obs.Changes():
				if !ok {
					return
				}

				m.mu.Lock()
				m.state = apply(m.state, setOnline{online: online})
				m.mu.Unlock()
			}
		}
	}()
}

// manualRefreshLimited consumes one manual-refresh slot and reports
// whether the limit was already reached
func (m *Manager) manualRefreshLimited(ctx context.Context) bool {
	lctx, err := m.refreshLimiter.Get(ctx, manualRefreshKey)
	if err != nil {
		// A broken limiter store is no reason to block the refresh
		m.logger.Error(
			"unable to check refresh limit",
			"err", err,
		)

		return false
	}

	return lctx.Reached
}

// failRefresh converts a transport / payload failure into the generic
// error state. The previous rate list is preserved
func (m *Manager) failRefresh(showNotification bool, err error) {
	m.mu.Lock()
	m.state = apply(m.state, setError{message: refreshErrorMessage})
	m.mu.Unlock()

	m.logger.Error(
		"unable to refresh rates",
		"err", err,
	)

	if showNotification {
		m.notifier.Error(failedNoticeTitle, failedNoticeDetail)
	}
}

// flattenRates normalizes the per-exchange breakdown of the payload,
// taking only the successful exchanges. When the breakdown carries no
// records at all, the flat top-level data array is used instead
func flattenRates(resp *upstream.CurrentResponse, now time.Time) []quote.Quotation {
	rates := make([]quote.Quotation, 0, len(resp.Data))

	for _, update := range resp.UpdateStatus {
		if update.Status != upstream.StatusSuccess {
			continue
		}

		for _, raw := range update.ProcessedData {
			rates = append(rates, quote.Normalize(raw, now))
		}
	}

	if len(rates) > 0 {
		return rates
	}

	for _, raw := range resp.Data {
		rates = append(rates, quote.Normalize(raw, now))
	}

	return rates
}
