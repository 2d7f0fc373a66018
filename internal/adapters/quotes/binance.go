package quotes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tradecoach/internal/ports"

	"github.com/adshao/go-binance/v2"
)

// quoteAsset is appended to bare crypto tickers ("BTC" -> "BTCUSDT").
const quoteAsset = "USDT"

// Client implements ports.QuoteProvider against the Binance spot API. It
// only covers crypto tickers; equity symbols return ErrQuoteUnavailable and
// callers fall back to cost basis. Public price endpoints need no API keys.
type Client struct {
	spot   *binance.Client
	logger ports.Logger
}

// Config holds configuration for the quote client.
type Config struct {
	APIKey    string
	SecretKey string
	Logger    ports.Logger
}

// New creates a Binance-backed quote provider.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for quote client")
	}
	return &Client{
		spot:   binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger: cfg.Logger,
	}, nil
}

// GetPrice retrieves the last traded price for a symbol. Bare tickers are
// paired against USDT; symbols Binance does not list map to
// ports.ErrQuoteUnavailable.
func (c *Client) GetPrice(ctx context.Context, symbol string) (float64, error) {
	pair := strings.ToUpper(strings.TrimSpace(symbol))
	if pair == "" {
		return 0, fmt.Errorf("empty symbol: %w", ports.ErrInvalidRequest)
	}
	if !strings.HasSuffix(pair, quoteAsset) {
		pair += quoteAsset
	}

	prices, err := c.spot.NewListPricesService().Symbol(pair).Do(ctx)
	if err != nil {
		c.logger.Debug(ctx, "Quote lookup failed", map[string]interface{}{"symbol": pair, "err": err.Error()})
		return 0, fmt.Errorf("quote lookup for %s: %w", pair, ports.ErrQuoteUnavailable)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("no price returned for %s: %w", pair, ports.ErrQuoteUnavailable)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q for %s: %w", prices[0].Price, pair, err)
	}
	return price, nil
}
