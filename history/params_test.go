package history

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	testTable := []struct {
		name     string
		query    string
		expected Params
	}{
		{
			"empty query",
			"",
			DefaultParams(),
		},
		{
			"valid values",
			"exchange=BCV&records=100&period=30d",
			Params{Exchange: "BCV", Records: 100, Period: Period30D},
		},
		{
			"all exchanges",
			"exchange=all",
			DefaultParams(),
		},
		{
			"unknown exchange coerced",
			"exchange=WALLSTREET",
			DefaultParams(),
		},
		{
			"unlisted record count coerced",
			"records=123",
			DefaultParams(),
		},
		{
			"non-numeric record count coerced",
			"records=abc",
			DefaultParams(),
		},
		{
			"unbounded record count",
			"records=0",
			Params{Exchange: DefaultExchange, Records: 0, Period: DefaultPeriod},
		},
		{
			"unknown period coerced",
			"period=abc",
			DefaultParams(),
		},
		{
			"one year period",
			"period=1y",
			Params{Exchange: DefaultExchange, Records: DefaultRecords, Period: Period1Y},
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			values, err := url.ParseQuery(testCase.query)
			if err != nil {
				t.Fatalf("unable to parse query, %v", err)
			}

			assert.Equal(t, testCase.expected, ParseParams(values))
		})
	}
}

func TestParams_Query_OmitsDefaults(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DefaultParams().Query().Encode())

	p := Params{
		Exchange: "BCV",
		Records:  DefaultRecords,
		Period:   Period90D,
	}

	assert.Equal(t, "exchange=BCV&period=90d", p.Query().Encode())
}

func TestParams_Days(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, Params{Period: Period7D}.Days())
	assert.Equal(t, 365, Params{Period: Period1Y}.Days())

	// Unknown periods fall back to the default window
	assert.Equal(t, 7, Params{Period: Period("2d")}.Days())
}

func TestParams_DateRange(t *testing.T) {
	t.Parallel()

	// Local time zones must not shift the window
	loc := time.FixedZone("VET", -4*60*60)
	now := time.Date(2026, time.March, 5, 22, 30, 0, 0, loc)

	start, end := Params{Period: Period7D}.DateRange(now)

	assert.Equal(t, time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 6, 23, 59, 59, 999_000_000, time.UTC), end)
}
