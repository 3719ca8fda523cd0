package history

import (
	"sort"
	"strings"
	"time"

	"github.com/sig-0/vesdash/quote"
)

// pairSplitExchanges are sources that publish several quote pairs.
// Their records chart as one named series per pair instead of
// being merged into a single line
var pairSplitExchanges = map[string]bool{
	"BCV": true,
}

// Point is one charted data point: a calendar day with one value
// per named series present that day. Days with no records are
// not synthesized
type Point struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// Stats are the summary statistics shown alongside the chart
type Stats struct {
	TotalRecords    int     `json:"total_records"`
	FilteredRecords int     `json:"filtered_records"`
	ExchangeCount   int     `json:"exchange_count"`
	LatestPrice     float64 `json:"latest_price"`
	LatestLabel     string  `json:"latest_label"`
}

// Aggregate turns a flat historical record list into one chart point
// per calendar day per series, with chart-local exchange and period
// filtering. The selection is "all", an exchange code, or a named
// "CODE BASE" series. Within a day the last record per series wins,
// there is no intra-day averaging
func Aggregate(
	records []quote.HistoricalRate,
	selection string,
	periodDays int,
	now time.Time,
) ([]Point, Stats) {
	y, m, d := now.UTC().Date()
	windowStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -periodDays)

	buckets := make(map[string]map[string]float64)

	for _, r := range records {
		if !selectionMatches(r, selection) {
			continue
		}

		ts := r.Timestamp.UTC()
		if ts.Before(windowStart) {
			continue
		}

		var (
			day    = ts.Format(time.DateOnly)
			series = SeriesName(r)
		)

		if buckets[day] == nil {
			buckets[day] = make(map[string]float64)
		}

		// Last write per day and series wins
		buckets[day][series] = displayPrice(r)
	}

	points := make([]Point, 0, len(buckets))

	for day, values := range buckets {
		points = append(points, Point{
			Date:   day,
			Values: values,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points, summarize(records, len(points))
}

// SeriesName names the chart series for a record. Pair-splitting
// sources get one series per base currency
func SeriesName(r quote.HistoricalRate) string {
	if !pairSplitExchanges[r.ExchangeCode] {
		return r.ExchangeCode
	}

	base := r.CurrencyPair
	if idx := strings.Index(base, "/"); idx != -1 {
		base = base[:idx]
	}

	return r.ExchangeCode + " " + base
}

// MapSelection maps a query-level exchange filter onto a chart
// selection. Pair-splitting sources default to their USD series
func MapSelection(exchange string) string {
	if pairSplitExchanges[exchange] {
		return exchange + " USD"
	}

	return exchange
}

// selectionMatches applies the chart-local exchange selection
func selectionMatches(r quote.HistoricalRate, selection string) bool {
	switch {
	case selection == "" || selection == ExchangeAll:
		return true
	case strings.Contains(selection, " "):
		return SeriesName(r) == selection
	default:
		return r.ExchangeCode == selection
	}
}

// displayPrice is the charted value: the mean price when the record
// provides one, the buy price otherwise
func displayPrice(r quote.HistoricalRate) float64 {
	if r.AvgPrice != 0 {
		return r.AvgPrice
	}

	return r.BuyPrice
}

// summarize computes the chart statistics over the pre-aggregation
// record set, with the most recent record picked by timestamp
func summarize(records []quote.HistoricalRate, plotted int) Stats {
	stats := Stats{
		TotalRecords:    len(records),
		FilteredRecords: plotted,
	}

	if len(records) == 0 {
		return stats
	}

	seen := make(map[string]struct{})
	latest := records[0]

	for _, r := range records {
		seen[r.ExchangeCode] = struct{}{}

		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}

	stats.ExchangeCount = len(seen)
	stats.LatestPrice = displayPrice(latest)
	stats.LatestLabel = latest.ExchangeCode + " " + latest.CurrencyPair

	return stats
}
