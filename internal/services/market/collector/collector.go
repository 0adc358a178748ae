// Package collector fetches candle series from exchanges and turns them
// into indicator frames for the analysis pipeline.
package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/swingdesk/signum/internal/domain"
	"github.com/swingdesk/signum/internal/services/market/indicators"
)

const fetchTimeout = 30 * time.Second

// KlineProvider fetches historical candle data for an instrument.
type KlineProvider interface {
	// GetKlines fetches up to limit candles for the interval notation
	// ("1m", "15m", "1h", "4h"), oldest first.
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error)
}

// MarketDataCollector fetches candles and derives indicator frames.
type MarketDataCollector struct {
	provider KlineProvider
	pair     domain.Pair
}

// NewMarketDataCollector creates a collector for one instrument.
func NewMarketDataCollector(provider KlineProvider, pair domain.Pair) *MarketDataCollector {
	return &MarketDataCollector{provider: provider, pair: pair}
}

// FetchFrame fetches raw candles for the timeframe and computes the
// indicator frame.
func (c *MarketDataCollector) FetchFrame(ctx context.Context, tf domain.Timeframe, limit int) (*domain.IndicatorFrame, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	candles, err := c.provider.GetKlines(ctxWithTimeout, c.pair, tf.Interval(), limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines for timeframe %s", tf)
	}
	if len(candles) == 0 {
		return nil, errors.Errorf("no kline data returned for timeframe %s", tf)
	}

	frame, err := indicators.BuildFrame(candles)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build indicator frame for timeframe %s", tf)
	}
	return frame, nil
}
