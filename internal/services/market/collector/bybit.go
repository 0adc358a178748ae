package collector

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"

	"github.com/swingdesk/signum/internal/domain"
)

const bybitCategory = "spot"

// BybitKlineProvider implements KlineProvider for Bybit V5.
type BybitKlineProvider struct {
	client *bybit.Client
}

// NewBybitKlineProvider creates a new Bybit kline provider.
func NewBybitKlineProvider(client *bybit.Client) *BybitKlineProvider {
	return &BybitKlineProvider{client: client}
}

// GetKlines fetches kline data from Bybit. Bybit returns newest first, so
// the result is re-sorted oldest first.
func (p *BybitKlineProvider) GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error) {
	bybitInterval, err := bybitInterval(interval)
	if err != nil {
		return nil, err
	}

	klines, err := p.client.V5().Market().GetKline(bybit.V5GetKlineParam{
		Category: bybitCategory,
		Symbol:   bybit.SymbolV5(pair.Symbol()),
		Interval: bybitInterval,
		Limit:    &limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", pair.String())
	}
	if len(klines.Result.List) == 0 {
		return nil, errors.Errorf("no klines data received from Bybit for %s", pair.String())
	}

	result := make([]domain.MarketCandle, 0, len(klines.Result.List))
	for i, k := range klines.Result.List {
		candle, err := parseCandle(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "bybit kline at index %d", i)
		}

		startMs, err := strconv.ParseInt(k.StartTime, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse start time %q", k.StartTime)
		}
		candle.OpenTime = time.UnixMilli(startMs)

		dur, err := intervalDuration(interval)
		if err != nil {
			return nil, err
		}
		candle.CloseTime = candle.OpenTime.Add(dur)

		result = append(result, candle)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].OpenTime.Before(result[j].OpenTime)
	})

	return result, nil
}

func bybitInterval(interval string) (bybit.Interval, error) {
	switch interval {
	case "1m":
		return bybit.Interval1, nil
	case "5m":
		return bybit.Interval5, nil
	case "15m":
		return bybit.Interval15, nil
	case "1h":
		return bybit.Interval60, nil
	case "4h":
		return bybit.Interval240, nil
	default:
		return "", errors.Errorf("unsupported bybit interval: %s", interval)
	}
}
