package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/upstream"
)

// ErrNoHistoricalData is returned when both the primary source and
// the bundled fallback fail. Terminal for the view, no retries
var ErrNoHistoricalData = errors.New("unable to load any historical data")

// FallbackWarning is the user-visible notice shown when the
// bundled backstop dataset is in use
const FallbackWarning = "Error al cargar los datos históricos. Usando datos de respaldo."

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Source fetches historical rate records
type Source interface {
	// HistoricalRates fetches the historical records,
	// with an optional record-limit hint (<= 0 means none)
	HistoricalRates(ctx context.Context, limit int) (*upstream.HistoryResponse, error)
}

// FallbackFn loads the backstop historical dataset
type FallbackFn func() ([]quote.HistoricalRate, error)

// Result is a displayable, time-bounded, sorted historical view.
// The record list is owned by the caller for one page view and is
// never shared with the current-rate state
type Result struct {
	Records []quote.HistoricalRate
	Warning string

	Start time.Time
	End   time.Time
}

// Controller resolves a validated filter spec into a displayable
// historical record list, falling back to the bundled static
// dataset when the live API is unreachable
type Controller struct {
	source   Source
	fallback FallbackFn
	logger   *slog.Logger
	now      func() time.Time
}

// NewController creates a new historical query controller
func NewController(source Source, opts ...ControllerOption) *Controller {
	c := &Controller{
		source:   source,
		fallback: loadBundledFallback,
		logger:   noopLogger,
		now:      time.Now,
	}

	// Apply the options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch runs the query: fetch, exchange filter, inclusive date-range
// filter, descending sort. On upstream failure the bundled fallback
// dataset is served instead, flagged with a warning
func (c *Controller) Fetch(ctx context.Context, p Params) (*Result, error) {
	start, end := p.DateRange(c.now())

	resp, err := c.source.HistoricalRates(ctx, p.Records)
	if err != nil {
		c.logger.Error(
			"unable to fetch historical rates",
			"err", err,
		)

		return c.fallbackResult(start, end)
	}

	if resp.Status != upstream.StatusSuccess {
		c.logger.Error(
			"invalid historical payload status",
			"status", resp.Status,
		)

		return c.fallbackResult(start, end)
	}

	records := resp.Data

	if p.Exchange != ExchangeAll {
		filtered := make([]quote.HistoricalRate, 0, len(records))

		for _, r := range records {
			if strings.EqualFold(r.ExchangeCode, p.Exchange) {
				filtered = append(filtered, r)
			}
		}

		records = filtered
	}

	records = filterRange(records, start, end)

	// Most recent first
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	return &Result{
		Records: records,
		Start:   start,
		End:     end,
	}, nil
}

// fallbackResult serves the bundled static dataset, bounded by the
// same date window as the failed query
func (c *Controller) fallbackResult(start, end time.Time) (*Result, error) {
	records, err := c.fallback()
	if err != nil {
		c.logger.Error(
			"fallback dataset failed",
			"err", err,
		)

		return nil, fmt.Errorf("%w: %w", ErrNoHistoricalData, err)
	}

	return &Result{
		Records: filterRange(records, start, end),
		Warning: FallbackWarning,
		Start:   start,
		End:     end,
	}, nil
}

// filterRange keeps records within the inclusive [start, end] window
func filterRange(records []quote.HistoricalRate, start, end time.Time) []quote.HistoricalRate {
	out := make([]quote.HistoricalRate, 0, len(records))

	for _, r := range records {
		ts := r.Timestamp.UTC()

		if ts.Before(start) || ts.After(end) {
			continue
		}

		out = append(out, r)
	}

	return out
}
