package history

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sig-0/vesdash/quote"
)

// The bundled backstop dataset: one legacy source (BCV),
// one pair (USD/VES), one reference value per day
//
//go:embed data/historical-rates.json
var fallbackFS embed.FS

// fallbackRecord is the narrow legacy schema of the bundled dataset
type fallbackRecord struct {
	BCVUSD float64 `json:"bcv-usd"`
	Fecha  string  `json:"fecha"`
}

// loadBundledFallback loads and widens the bundled dataset into
// full historical records. The single provided value fills buy,
// sell and avg alike
func loadBundledFallback() ([]quote.HistoricalRate, error) {
	raw, err := fallbackFS.ReadFile("data/historical-rates.json")
	if err != nil {
		return nil, fmt.Errorf("unable to read bundled dataset: %w", err)
	}

	var legacy []fallbackRecord
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("unable to parse bundled dataset: %w", err)
	}

	records := make([]quote.HistoricalRate, 0, len(legacy))

	for _, item := range legacy {
		ts, err := parseFecha(item.Fecha)
		if err != nil {
			continue
		}

		records = append(records, quote.HistoricalRate{
			ExchangeCode: "BCV",
			CurrencyPair: "USD/VES",
			BuyPrice:     item.BCVUSD,
			SellPrice:    item.BCVUSD,
			AvgPrice:     item.BCVUSD,
			Timestamp:    ts,
			Source:       "bcv",
			TradeType:    "official",
		})
	}

	return records, nil
}

// parseFecha parses the legacy dataset date field
func parseFecha(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"02/01/2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
