package history

import (
	"context"

	"github.com/sig-0/vesdash/upstream"
)

type historicalRatesDelegate func(context.Context, int) (*upstream.HistoryResponse, error)

type mockSource struct {
	historicalRatesFn historicalRatesDelegate
}

func (m *mockSource) HistoricalRates(ctx context.Context, limit int) (*upstream.HistoryResponse, error) {
	if m.historicalRatesFn != nil {
		return m.historicalRatesFn(ctx, limit)
	}

	return nil, nil
}
