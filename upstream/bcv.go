package upstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sig-0/vesdash/quote"
)

var errInvalidRate = errors.New("invalid rate")

// DefaultBCVURL is the public BCV website address
const DefaultBCVURL = "https://www.bcv.org.ve/"

// BCVScraper fetches official rates straight from the BCV website.
// It is a diagnostic source for when the aggregation API is down,
// and covers only the pairs published on the front page
type BCVScraper struct {
	client *http.Client
	url    string
}

// NewBCVScraper creates a new instance of the BCV website scraper
func NewBCVScraper(url string, timeout time.Duration) *BCVScraper {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // Fine to ignore
	}

	return &BCVScraper{
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		url: url,
	}
}

// Fetch scrapes the published official rates as raw rate records.
// The BCV publishes a single reference price per pair, so buy,
// sell and avg carry the same value
func (s *BCVScraper) Fetch(ctx context.Context) ([]quote.RawRateRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	fetchCurrencyRate := func(currencyID string) (float64, error) {
		sel := doc.Find("#" + currencyID)

		if sel.Length() == 0 {
			return 0, fmt.Errorf("missing element #%s", currencyID)
		}

		txt := sel.Find(".col-sm-6.col-xs-6.centrado").First().Text()
		if strings.TrimSpace(txt) == "" {
			txt = sel.Find(".centrado").First().Text()
		}

		txt = strings.TrimSpace(txt)

		v, err := parseBCVNumber(txt)
		if err != nil {
			return 0, fmt.Errorf("unable to parse rate value for %s: %w", currencyID, err)
		}

		return math.Round(v*1e4) / 1e4, nil
	}

	ids := []string{
		"dolar",
		"euro",
		"yuan",
		"lira",
		"rublo",
	}

	records := make([]quote.RawRateRecord, 0, len(ids))

	for _, id := range ids {
		rate, err := fetchCurrencyRate(id)
		if err != nil {
			continue
		}

		records = append(records, quote.RawRateRecord{
			ExchangeCode: "BCV",
			CurrencyPair: idToCurrency(id) + "/VES",
			BuyPrice:     rate,
			SellPrice:    rate,
			AvgPrice:     rate,
			Source:       "bcv_web_scraping",
		})
	}

	if len(records) == 0 {
		return nil, errors.New("no rates found on page")
	}

	return records, nil
}

// parseBCVNumber parses the rate number from the BCV website
func parseBCVNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errInvalidRate
	}

	// BCV typically uses comma as decimal separator and no thousands:
	// "1.234,56" -> "1234.56"
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse rate %q: %w", s, err)
	}

	return f, nil
}

// idToCurrency maps the hardcoded BCV website currency section ID
// to a currency code
func idToCurrency(id string) string {
	switch id {
	case "dolar":
		return "USD"
	case "euro":
		return "EUR"
	case "yuan":
		return "CNY"
	case "lira":
		return "TRY"
	case "rublo":
		return "RUB"
	default:
		return "XXX"
	}
}
