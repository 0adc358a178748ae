// Package indicators derives per-bar technical indicator series from raw
// candles. It uses the cinar/indicator library for EMA, RSI, ATR and SMA
// and realigns their warm-up-shortened outputs back to the candle index.
package indicators

import (
	"math"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
	"github.com/pkg/errors"

	"github.com/swingdesk/signum/internal/domain"
)

const (
	emaFastPeriod = 50
	emaSlowPeriod = 200
	rsiPeriod     = 14
	atrPeriod     = 14
	volPeriod     = 20

	// minBars is the shortest warm-up of any derived series (RSI14/ATR14).
	// Below this nothing can be produced at all.
	minBars = 15
)

var (
	// ErrInsufficientData series too short to produce any indicator output.
	ErrInsufficientData = errors.New("insufficient candle data")
	// ErrMalformedInput series violates the feed contract (empty fields,
	// non-ascending timestamps). Signals an upstream feed bug.
	ErrMalformedInput = errors.New("malformed candle series")
)

// BuildFrame computes the indicator frame for an ordered candle series.
// The result is index-aligned 1:1 with the input; bars inside a warm-up
// window carry NaN. Pure transform, no side effects.
func BuildFrame(candles []domain.MarketCandle) (*domain.IndicatorFrame, error) {
	if err := validate(candles); err != nil {
		return nil, err
	}
	if len(candles) < minBars {
		return nil, errors.Wrapf(ErrInsufficientData, "need at least %d bars, got %d", minBars, len(candles))
	}

	n := len(candles)
	frame := &domain.IndicatorFrame{
		Times:  make([]time.Time, n),
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]float64, n),
	}
	for i, c := range candles {
		frame.Times[i] = c.OpenTime
		frame.Open[i], _ = c.Open.Float64()
		frame.High[i], _ = c.High.Float64()
		frame.Low[i], _ = c.Low.Float64()
		frame.Close[i], _ = c.Close.Float64()
		frame.Volume[i], _ = c.Volume.Float64()
	}

	frame.EMA50 = alignRight(computeEMA(frame.Close, emaFastPeriod), n)
	frame.EMA200 = alignRight(computeEMA(frame.Close, emaSlowPeriod), n)
	frame.RSI14 = alignRight(computeRSI(frame.Close, rsiPeriod), n)
	frame.ATR14 = alignRight(computeATR(frame.High, frame.Low, frame.Close, atrPeriod), n)
	frame.VolSMA20 = alignRight(computeSMA(frame.Volume, volPeriod), n)
	frame.VolZ20 = volumeZScore(frame.Volume, volPeriod)

	return frame, nil
}

func validate(candles []domain.MarketCandle) error {
	if len(candles) == 0 {
		return errors.Wrap(ErrInsufficientData, "empty series")
	}
	for i := 1; i < len(candles); i++ {
		if !candles[i].OpenTime.After(candles[i-1].OpenTime) {
			return errors.Wrapf(ErrMalformedInput, "non-ascending open time at index %d", i)
		}
	}
	return nil
}

func computeEMA(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nil
	}
	ema := trend.NewEmaWithPeriod[float64](period)
	return helper.ChanToSlice(ema.Compute(helper.SliceToChan(closes)))
}

func computeRSI(closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		return nil
	}
	rsi := momentum.NewRsiWithPeriod[float64](period)
	return helper.ChanToSlice(rsi.Compute(helper.SliceToChan(closes)))
}

func computeATR(highs, lows, closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		return nil
	}
	atr := volatility.NewAtrWithPeriod[float64](period)
	out := atr.Compute(
		helper.SliceToChan(highs),
		helper.SliceToChan(lows),
		helper.SliceToChan(closes),
	)
	return helper.ChanToSlice(out)
}

func computeSMA(values []float64, period int) []float64 {
	if len(values) < period {
		return nil
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	return helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
}

// alignRight pads a warm-up-shortened series with leading NaN so it lines up
// with the candle index, one value per bar.
func alignRight(series []float64, length int) []float64 {
	out := make([]float64, length)
	pad := length - len(series)
	if pad < 0 {
		series = series[len(series)-length:]
		pad = 0
	}
	for i := 0; i < pad; i++ {
		out[i] = math.NaN()
	}
	copy(out[pad:], series)
	return out
}

// volumeZScore computes the rolling z-score of volume against the trailing
// window using the population standard deviation. A zero deviation yields
// NaN instead of a divide-by-zero fault.
func volumeZScore(volume []float64, period int) []float64 {
	out := make([]float64, len(volume))
	for i := range out {
		if i+1 < period {
			out[i] = math.NaN()
			continue
		}
		window := volume[i+1-period : i+1]
		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		variance := 0.0
		for _, v := range window {
			d := v - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(period))
		if std == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (volume[i] - mean) / std
	}
	return out
}
