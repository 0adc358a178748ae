package collector

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/swingdesk/signum/internal/domain"
)

// BinanceKlineProvider implements KlineProvider for Binance.
type BinanceKlineProvider struct {
	client *binance.Client
}

// NewBinanceKlineProvider creates a new Binance kline provider.
func NewBinanceKlineProvider(client *binance.Client) *BinanceKlineProvider {
	return &BinanceKlineProvider{client: client}
}

// GetKlines fetches kline data from Binance.
func (p *BinanceKlineProvider) GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(pair.Symbol()).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Binance for %s", pair.String())
	}

	result := make([]domain.MarketCandle, len(klines))
	for i, k := range klines {
		candle, err := parseCandle(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "binance kline at index %d", i)
		}
		candle.OpenTime = time.UnixMilli(k.OpenTime)
		candle.CloseTime = time.UnixMilli(k.CloseTime)
		result[i] = candle
	}

	return result, nil
}

// parseCandle converts exchange string prices into a candle.
func parseCandle(open, high, low, close, volume string) (domain.MarketCandle, error) {
	var c domain.MarketCandle
	var err error

	if c.Open, err = decimal.NewFromString(open); err != nil {
		return c, errors.Wrapf(err, "failed to parse open price %q", open)
	}
	if c.High, err = decimal.NewFromString(high); err != nil {
		return c, errors.Wrapf(err, "failed to parse high price %q", high)
	}
	if c.Low, err = decimal.NewFromString(low); err != nil {
		return c, errors.Wrapf(err, "failed to parse low price %q", low)
	}
	if c.Close, err = decimal.NewFromString(close); err != nil {
		return c, errors.Wrapf(err, "failed to parse close price %q", close)
	}
	if c.Volume, err = decimal.NewFromString(volume); err != nil {
		return c, errors.Wrapf(err, "failed to parse volume %q", volume)
	}

	return c, nil
}
