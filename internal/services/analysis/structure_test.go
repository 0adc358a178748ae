package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swingdesk/signum/internal/domain"
)

// newFrame builds a minimal frame for structure tests. Indicator columns are
// NaN unless overridden, matching a freshly built frame inside warm-up.
func newFrame(high, low, close []float64) *domain.IndicatorFrame {
	n := len(close)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	f := &domain.IndicatorFrame{
		Times:  make([]time.Time, n),
		Open:   make([]float64, n),
		High:   high,
		Low:    low,
		Close:  close,
		Volume: make([]float64, n),

		EMA50:    nanSeries(n),
		EMA200:   nanSeries(n),
		RSI14:    nanSeries(n),
		ATR14:    nanSeries(n),
		VolSMA20: nanSeries(n),
		VolZ20:   nanSeries(n),
	}
	for i := range f.Times {
		f.Times[i] = start.Add(time.Duration(i) * time.Minute)
		f.Open[i] = close[i]
		f.Volume[i] = 1000
	}
	return f
}

func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func repeat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestStructureFlatSeriesIsRanging(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{})
	f := newFrame(repeat(101, 30), repeat(99, 30), repeat(100, 30))

	require.Empty(t, a.Swings(f), "equal bars must not qualify as strict extremes")

	res := a.Analyze(f)
	require.Equal(t, domain.BiasRanging, res.Bias)
	require.Equal(t, domain.EventNone, res.Event)
}

func TestStructureEmptyFrameDegrades(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{})
	res := a.Analyze(&domain.IndicatorFrame{})
	require.Equal(t, domain.BiasRanging, res.Bias)
	require.Equal(t, domain.EventNone, res.Event)
}

func TestStructureBullishBOS(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{SwingLookback: 3})

	high := []float64{50, 50, 50, 60, 50, 50, 50, 50, 50, 50, 50, 62}
	low := []float64{40, 40, 40, 41, 40, 40, 39, 40, 40, 40, 40, 40}
	close := []float64{45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 61}

	res := a.Analyze(newFrame(high, low, close))
	require.Equal(t, domain.BiasBullish, res.Bias)
	require.Equal(t, domain.EventBOS, res.Event)
	require.Equal(t, 60.0, res.LastSwingHigh)
	require.Equal(t, 39.0, res.LastSwingLow)
}

func TestStructureBearishBOS(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{SwingLookback: 3})

	high := []float64{50, 50, 50, 60, 50, 50, 50, 50, 50, 50, 50, 50}
	low := []float64{40, 40, 40, 41, 40, 40, 39, 40, 40, 40, 40, 37}
	close := []float64{45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 38}

	res := a.Analyze(newFrame(high, low, close))
	require.Equal(t, domain.BiasBearish, res.Bias)
	require.Equal(t, domain.EventBOS, res.Event)
}

// Inverted swing levels: the last swing low (a pullback after a rally) sits
// above an older swing high. A close between them trips both override
// conditions in sequence and settles on BULLISH with a CHoCH event. This
// pins the sequential re-read semantics of the override block.
func TestStructureCHoCHWithInvertedSwings(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{SwingLookback: 1})

	high := []float64{15, 20, 18, 36, 37, 38, 38.5}
	low := []float64{12, 14, 15, 31, 30, 32, 24}
	close := []float64{13, 18, 16, 35, 33, 36, 25}

	f := newFrame(high, low, close)

	swings := a.Swings(f)
	require.Len(t, swings, 2)
	require.Equal(t, domain.SwingHigh, swings[0].Kind)
	require.Equal(t, 20.0, swings[0].Price)
	require.Equal(t, domain.SwingLow, swings[1].Kind)
	require.Equal(t, 30.0, swings[1].Price)

	res := a.Analyze(f)
	require.Equal(t, domain.BiasBullish, res.Bias)
	require.Equal(t, domain.EventCHoCH, res.Event)
}

func TestStructureEMAFallback(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{})

	f := newFrame(repeat(12, 30), repeat(10, 30), repeat(11, 30))
	f.EMA50 = repeat(10.5, 30)
	f.EMA200 = repeat(9.5, 30)

	res := a.Analyze(f)
	require.Equal(t, domain.BiasBullish, res.Bias, "close above a rising EMA stack resolves to bullish")
	require.Equal(t, domain.EventNone, res.Event)

	f.EMA50 = repeat(11.5, 30)
	f.EMA200 = repeat(12.5, 30)
	res = a.Analyze(f)
	require.Equal(t, domain.BiasBearish, res.Bias, "close below a falling EMA stack resolves to bearish")

	// NaN EMAs keep the fallback inert
	f.EMA50 = nanSeries(30)
	f.EMA200 = nanSeries(30)
	res = a.Analyze(f)
	require.Equal(t, domain.BiasRanging, res.Bias)
}

func TestStructureAnalyzeIsIdempotent(t *testing.T) {
	a := NewStructureAnalyzer(StructureConfig{SwingLookback: 3})

	high := []float64{50, 50, 50, 60, 50, 50, 50, 50, 50, 50, 50, 62}
	low := []float64{40, 40, 40, 41, 40, 40, 39, 40, 40, 40, 40, 40}
	close := []float64{45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 61}
	f := newFrame(high, low, close)

	first := a.Analyze(f)
	second := a.Analyze(f)
	require.Equal(t, first, second)
}
