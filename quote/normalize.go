package quote

import (
	"fmt"
	"strings"
	"time"
)

// Normalize maps one upstream rate record into a Quotation, filling
// derived fields from the currency and exchange registries.
// It is deterministic given the registries and its inputs, and total:
// unknown codes fall back to registry defaults instead of erroring
func Normalize(raw RawRateRecord, now time.Time) Quotation {
	var (
		baseCurrency  = raw.CurrencyPair
		quoteCurrency = ""
	)

	if idx := strings.Index(raw.CurrencyPair, "/"); idx != -1 {
		baseCurrency = raw.CurrencyPair[:idx]
		quoteCurrency = raw.CurrencyPair[idx+1:]
	}

	var (
		currencyInfo = CurrencyConfig(baseCurrency)
		exchangeInfo = ExchangeConfig(raw.ExchangeCode)
	)

	return Quotation{
		ID:            strings.ToLower(baseCurrency) + "-" + raw.ExchangeCode,
		Name:          exchangeInfo.Name + " " + baseCurrency,
		Category:      currencyInfo.Category,
		Buy:           raw.BuyPrice,
		Sell:          raw.SellPrice,
		Avg:           raw.AvgPrice,
		LastUpdate:    now,
		Kind:          currencyInfo.Kind,
		Color:         currencyInfo.Color,
		Description:   fmt.Sprintf("%s - %s", raw.Source, raw.CurrencyPair),
		BaseCurrency:  baseCurrency,
		QuoteCurrency: quoteCurrency,
		TradeType:     exchangeInfo.TradeType,
		ExchangeCode:  raw.ExchangeCode,
		Volume24h:     raw.Volume24h,
	}
}
