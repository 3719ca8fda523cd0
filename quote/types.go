package quote

import "time"

type Category string

const (
	CategoryDolar  Category = "dolar"
	CategoryEuro   Category = "euro"
	CategoryCripto Category = "cripto"
)

func (c Category) String() string {
	return string(c)
}

type TradeType string

const (
	TradeTypeOfficial TradeType = "official"
	TradeTypeP2P      TradeType = "p2p"
)

func (t TradeType) String() string {
	return string(t)
}

type CurrencyKind string

const (
	CurrencyKindFiat   CurrencyKind = "fiat"
	CurrencyKindCrypto CurrencyKind = "crypto"
)

// RawRateRecord is a single rate record as delivered by the
// upstream aggregation API
type RawRateRecord struct {
	ExchangeCode string   `json:"exchange_code"`
	CurrencyPair string   `json:"currency_pair"`
	BuyPrice     float64  `json:"buy_price"`
	SellPrice    float64  `json:"sell_price"`
	AvgPrice     float64  `json:"avg_price"`
	Volume24h    *float64 `json:"volume_24h,omitempty"`
	Source       string   `json:"source"`
}

// Quotation is a single current-rate entity, keyed by
// the (base currency, exchange) pair
type Quotation struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Category      Category     `json:"category"`
	Buy           float64      `json:"buy"`
	Sell          float64      `json:"sell"`
	Avg           float64      `json:"avg"`
	LastUpdate    time.Time    `json:"last_update"`
	Kind          CurrencyKind `json:"type"`
	Color         string       `json:"color"`
	Description   string       `json:"description,omitempty"`
	BaseCurrency  string       `json:"base_currency"`
	QuoteCurrency string       `json:"quote_currency"`
	TradeType     TradeType    `json:"trade_type"`
	ExchangeCode  string       `json:"exchange_code"`
	Volume24h     *float64     `json:"volume_24h,omitempty"`
}

// RatePatch is a partial in-place update for a single Quotation.
// Nil fields are left untouched
type RatePatch struct {
	Buy       *float64
	Sell      *float64
	Avg       *float64
	Volume24h *float64
}

// HistoricalRate is a single time-series rate record.
// Records are read-only after fetch, they are only ever
// filtered and re-ordered into derived views
type HistoricalRate struct {
	ExchangeCode string    `json:"exchange_code"`
	CurrencyPair string    `json:"currency_pair"`
	BuyPrice     float64   `json:"buy_price"`
	SellPrice    float64   `json:"sell_price"`
	AvgPrice     float64   `json:"avg_price"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	TradeType    string    `json:"trade_type"`
}
