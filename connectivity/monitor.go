package connectivity

import (
	"context"
	"sync"
	"time"
)

// Pinger checks an upstream service for reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes the upstream API and emits online / offline
// transitions. It doubles as a scheduler job and as the
// connectivity observer for the rate state manager
type Monitor struct {
	pinger   Pinger
	interval time.Duration

	changes chan bool

	online bool
	mu     sync.Mutex
}

// NewMonitor creates a new connectivity monitor.
// The session starts out assumed online
func NewMonitor(pinger Pinger, interval time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		changes:  make(chan bool, 1),
		online:   true,
	}
}

func (m *Monitor) Name() string {
	return "connectivity-probe"
}

func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Run probes the upstream once. A failed probe is an offline
// signal, not a job error
func (m *Monitor) Run(ctx context.Context) error {
	online := m.pinger.Ping(ctx) == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		// Non-blocking, a slow consumer only sees the latest transition
		select {
		case m.changes <- online:
		default:
		}
	}

	return nil
}

// Changes yields connectivity transitions
func (m *Monitor) Changes() <-chan bool {
	return m.changes
}

// Online returns the last observed connectivity status
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.online
}
