package insights

import (
	"time"

	"tradecoach/internal/domain"
)

// washSaleWindowDays is the +/- window in which a buy around a sell of the
// same security counts as a wash-sale event.
const washSaleWindowDays = 30

// DetectWashSales scans equity and ETF trades for (sell, buy) pairs of the
// same ticker dated within 30 days of each other in either direction,
// same-day pairs excluded. An event is tagged cross-account when the two
// legs carry different account identifiers.
//
// Returns nil when detection is not applicable: no equity/ETF trades, no
// sells, or no buys. Callers must distinguish that from a present result
// with zero events.
func DetectWashSales(trades []domain.TradeRecord) *domain.WashSaleResult {
	var sells, buys []domain.TradeRecord
	var tickerOrder []string
	seen := make(map[string]bool)

	for _, t := range trades {
		if t.Instrument != domain.InstrumentEquity && t.Instrument != domain.InstrumentETF {
			continue
		}
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			tickerOrder = append(tickerOrder, t.Ticker)
		}
		switch t.Action {
		case domain.Sell:
			sells = append(sells, t)
		case domain.Buy:
			buys = append(buys, t)
		}
	}
	if len(sells) == 0 || len(buys) == 0 {
		return nil
	}

	eventsByTicker := make(map[string]int)
	result := &domain.WashSaleResult{}
	for _, sell := range sells {
		sellDate, err := time.Parse("2006-01-02", sell.Date)
		if err != nil {
			continue
		}
		for _, buy := range buys {
			if buy.Ticker != sell.Ticker || buy.Date == sell.Date {
				continue
			}
			buyDate, err := time.Parse("2006-01-02", buy.Date)
			if err != nil {
				continue
			}
			days := buyDate.Sub(sellDate).Hours() / 24
			if days < -washSaleWindowDays || days > washSaleWindowDays {
				continue
			}
			eventsByTicker[sell.Ticker]++
			result.TotalEvents++
			if buy.Account != sell.Account {
				result.CrossAccountCount++
			}
		}
	}

	result.TickerCount = len(eventsByTicker)
	for _, ticker := range tickerOrder {
		if n := eventsByTicker[ticker]; n > result.TopTickerEvents {
			result.TopTicker = ticker
			result.TopTickerEvents = n
		}
	}
	return result
}
