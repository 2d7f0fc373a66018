package ports

import "context"

// QuoteProvider supplies a last-traded price for a symbol. The analytics
// engine never calls this itself (it uses only ingested prices); callers use
// it to mark a portfolio snapshot to market before rule validation.
type QuoteProvider interface {
	// GetPrice retrieves the current price for a symbol.
	// Returns ErrQuoteUnavailable if the provider does not cover the symbol.
	GetPrice(ctx context.Context, symbol string) (float64, error)
}
