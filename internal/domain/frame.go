package domain

import (
	"math"
	"time"
)

// IndicatorFrame is a candle series with per-bar derived indicator values.
// All slices are index-aligned 1:1 with the candles; bars inside an
// indicator's warm-up window carry NaN.
type IndicatorFrame struct {
	Times  []time.Time
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64

	EMA50    []float64
	EMA200   []float64
	RSI14    []float64
	ATR14    []float64
	VolSMA20 []float64
	VolZ20   []float64
}

// Len returns the number of bars in the frame.
func (f *IndicatorFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Close)
}

// LastClose returns the close of the most recent bar, or 0 for an empty frame.
func (f *IndicatorFrame) LastClose() float64 {
	if f.Len() == 0 {
		return 0
	}
	return f.Close[f.Len()-1]
}

// LastATR returns the ATR14 of the most recent bar with NaN coerced to 0.
func (f *IndicatorFrame) LastATR() float64 {
	if f.Len() == 0 {
		return 0
	}
	return zeroIfNaN(f.ATR14[f.Len()-1])
}

// LastVolZ returns the volume z-score of the most recent bar with NaN coerced to 0.
func (f *IndicatorFrame) LastVolZ() float64 {
	if f.Len() == 0 {
		return 0
	}
	return zeroIfNaN(f.VolZ20[f.Len()-1])
}

// BarSnapshot last-bar values with undefined indicators coerced to 0,
// safe for formatting and scoring.
type BarSnapshot struct {
	Time     time.Time
	Close    float64
	EMA50    float64
	EMA200   float64
	RSI14    float64
	ATR14    float64
	Volume   float64
	VolSMA20 float64
	VolZ20   float64
}

// LastSnapshot returns the snapshot of the most recent bar.
func (f *IndicatorFrame) LastSnapshot() BarSnapshot {
	n := f.Len()
	if n == 0 {
		return BarSnapshot{}
	}
	i := n - 1
	return BarSnapshot{
		Time:     f.Times[i],
		Close:    zeroIfNaN(f.Close[i]),
		EMA50:    zeroIfNaN(f.EMA50[i]),
		EMA200:   zeroIfNaN(f.EMA200[i]),
		RSI14:    zeroIfNaN(f.RSI14[i]),
		ATR14:    zeroIfNaN(f.ATR14[i]),
		Volume:   zeroIfNaN(f.Volume[i]),
		VolSMA20: zeroIfNaN(f.VolSMA20[i]),
		VolZ20:   zeroIfNaN(f.VolZ20[i]),
	}
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
