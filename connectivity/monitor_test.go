package connectivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingDelegate func(context.Context) error

type mockPinger struct {
	pingFn pingDelegate
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}

	return nil
}

func TestMonitor_Run_Transitions(t *testing.T) {
	t.Parallel()

	var (
		pingErr error

		pinger = &mockPinger{
			pingFn: func(_ context.Context) error {
				return pingErr
			},
		}
	)

	m := NewMonitor(pinger, time.Second)

	require.True(t, m.Online())

	// A failed probe flips the status and emits one transition
	pingErr = errors.New("unreachable")

	require.NoError(t, m.Run(context.Background()))
	assert.False(t, m.Online())

	select {
	case online := <-m.Changes():
		assert.False(t, online)
	default:
		t.Fatal("expected an offline transition")
	}

	// A repeated failure is not a transition
	require.NoError(t, m.Run(context.Background()))

	select {
	case <-m.Changes():
		t.Fatal("unexpected transition")
	default:
	}

	// Recovery emits the online transition
	pingErr = nil

	require.NoError(t, m.Run(context.Background()))
	assert.True(t, m.Online())

	select {
	case online := <-m.Changes():
		assert.True(t, online)
	default:
		t.Fatal("expected an online transition")
	}
}

func TestMonitor_Run_NeverErrors(t *testing.T) {
	t.Parallel()

	pinger := &mockPinger{
		pingFn: func(_ context.Context) error {
			return errors.New("unreachable")
		},
	}

	m := NewMonitor(pinger, time.Second)

	// Offline is a signal, not a job failure, so the scheduler
	// keeps the regular probe cadence
	assert.NoError(t, m.Run(context.Background()))
}

func TestMonitor_Job(t *testing.T) {
	t.Parallel()

	m := NewMonitor(&mockPinger{}, time.Minute)

	assert.Equal(t, "connectivity-probe", m.Name())
	assert.Equal(t, time.Minute, m.Interval())
}
