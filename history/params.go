package history

import (
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/sig-0/vesdash/quote"
)

// Period is a named lookback window for historical queries
type Period string

const (
	Period7D  Period = "7d"
	Period30D Period = "30d"
	Period90D Period = "90d"
	Period1Y  Period = "1y"
)

// periodDays maps period tokens to their day count
var periodDays = map[Period]int{
	Period7D:  7,
	Period30D: 30,
	Period90D: 90,
	Period1Y:  365,
}

// ExchangeAll is the sentinel for "no exchange filter"
const ExchangeAll = "all"

const (
	DefaultExchange = ExchangeAll
	DefaultRecords  = 500
	DefaultPeriod   = Period7D
)

// allowedRecords is the closed set of record-limit values.
// 0 means unbounded
var allowedRecords = []int{0, 50, 100, 200, 500, 1000}

// Params is a validated historical query filter spec
type Params struct {
	Exchange string
	Records  int
	Period   Period
}

// DefaultParams returns the default filter spec
func DefaultParams() Params {
	return Params{
		Exchange: DefaultExchange,
		Records:  DefaultRecords,
		Period:   DefaultPeriod,
	}
}

// ParseParams sanitizes untrusted query parameters into a valid
// filter spec. Unknown values silently coerce to defaults,
// they are never surfaced as errors
func ParseParams(values url.Values) Params {
	p := DefaultParams()

	if exchange := values.Get("exchange"); exchange != "" {
		if exchange == ExchangeAll || slices.Contains(quote.KnownExchangeCodes(), exchange) {
			p.Exchange = exchange
		}
	}

	if raw := values.Get("records"); raw != "" {
		if records, err := strconv.Atoi(raw); err == nil && slices.Contains(allowedRecords, records) {
			p.Records = records
		}
	}

	if period := Period(values.Get("period")); period != "" {
		if _, ok := periodDays[period]; ok {
			p.Period = period
		}
	}

	return p
}

// Days returns the lookback day count of the period
func (p Params) Days() int {
	if days, ok := periodDays[p.Period]; ok {
		return days
	}

	return periodDays[DefaultPeriod]
}

// Query renders the canonical shareable query parameters.
// Values equal to their default are omitted, to keep URLs canonical
func (p Params) Query() url.Values {
	values := url.Values{}

	if p.Exchange != DefaultExchange {
		values.Set("exchange", p.Exchange)
	}

	if p.Records != DefaultRecords {
		values.Set("records", strconv.Itoa(p.Records))
	}

	if p.Period != DefaultPeriod {
		values.Set("period", string(p.Period))
	}

	return values
}

// DateRange returns the inclusive query window
// [today - period days at 00:00, today at 23:59:59.999], in UTC.
// All date math in the pipeline truncates in UTC
func (p Params) DateRange(now time.Time) (time.Time, time.Time) {
	y, m, d := now.UTC().Date()

	end := time.Date(y, m, d, 23, 59, 59, 999_000_000, time.UTC)
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -p.Days())

	return start, end
}
