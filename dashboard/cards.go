package dashboard

import (
	"sort"

	"github.com/sig-0/vesdash/quote"
	"github.com/sig-0/vesdash/state"
)

// MaxVisibleCards caps how many quotation cards are shown at once
const MaxVisibleCards = 5

// Cards resolves the visible quotation cards for a tab: category
// filter, ascending sell-price order, capped at MaxVisibleCards
func Cards(rates []quote.Quotation, tab state.Tab) []quote.Quotation {
	visible := make([]quote.Quotation, 0, len(rates))

	for _, rate := range rates {
		if tab != state.TabAll && rate.Category.String() != tab.String() {
			continue
		}

		visible = append(visible, rate)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Sell < visible[j].Sell
	})

	if len(visible) > MaxVisibleCards {
		visible = visible[:MaxVisibleCards]
	}

	return visible
}
