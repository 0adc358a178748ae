package internal

import (
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"

	"github.com/swingdesk/signum/internal/clients"
	"github.com/swingdesk/signum/internal/services/market/collector"
)

// NewKlineProvider dispatches the exchange SDK client to its kline
// provider. This is the single point of truth for platform dispatch.
func NewKlineProvider(client any) (collector.KlineProvider, error) {
	switch c := client.(type) {
	case *binance.Client:
		return collector.NewBinanceKlineProvider(c), nil
	case *bybit.Client:
		return collector.NewBybitKlineProvider(c), nil
	case *clients.HyperliquidClient:
		return collector.NewHyperliquidKlineProvider(c.Exchange().Info()), nil
	default:
		return nil, fmt.Errorf("unsupported client type: %T", client)
	}
}
