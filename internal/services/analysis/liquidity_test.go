package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swingdesk/signum/internal/domain"
)

// sweepFixture builds a 20-bar frame with a reference high of 105 and a
// reference low of 95 inside the 10-bar lookback window, then appends the
// bar under test.
func sweepFixture(last bar) *domain.IndicatorFrame {
	bars := make([]bar, 19)
	for i := range bars {
		bars[i] = bar{open: 100, high: 101, low: 99, close: 100}
	}
	bars[12] = bar{open: 100, high: 105, low: 99, close: 100} // reference high
	bars[14] = bar{open: 100, high: 101, low: 95, close: 100} // reference low
	return frameFromBars(append(bars, last))
}

func TestDetectSweepHighWeakWick(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	// trades through 105, closes back inside, upper wick 2 of range 4
	f := sweepFixture(bar{open: 104, high: 106, low: 102, close: 103})

	ev := a.DetectSweep(f)
	require.Equal(t, domain.SweepHigh, ev.Sweep)
	require.Equal(t, 105.0, ev.Level)
	require.Equal(t, "weak_wick", ev.Note)
}

func TestDetectSweepHighWickDominant(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	// upper wick 3.4 of range 4
	f := sweepFixture(bar{open: 102.6, high: 106, low: 102, close: 102.5})

	ev := a.DetectSweep(f)
	require.Equal(t, domain.SweepHigh, ev.Sweep)
	require.Equal(t, "wick_dominant", ev.Note)
}

func TestDetectSweepLow(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	f := sweepFixture(bar{open: 96, high: 98, low: 94, close: 97})

	ev := a.DetectSweep(f)
	require.Equal(t, domain.SweepLow, ev.Sweep)
	require.Equal(t, 95.0, ev.Level)
}

func TestDetectSweepNone(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	f := sweepFixture(bar{open: 100, high: 101, low: 99, close: 100})

	ev := a.DetectSweep(f)
	require.Equal(t, domain.SweepNone, ev.Sweep)
	require.Equal(t, "none", ev.Note)
}

func TestDetectSweepInsufficientBars(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	bars := make([]bar, 14) // below lookback+5
	for i := range bars {
		bars[i] = bar{open: 100, high: 101, low: 99, close: 100}
	}

	ev := a.DetectSweep(frameFromBars(bars))
	require.Equal(t, domain.SweepNone, ev.Sweep)
	require.Equal(t, "insufficient_bars", ev.Note)
}

func TestDetectFakeoutUp(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	bars := make([]bar, 22)
	for i := range bars {
		bars[i] = bar{open: 100, high: 101, low: 99, close: 100}
	}
	bars[12] = bar{open: 100, high: 105, low: 99, close: 100}  // reference high
	bars[20] = bar{open: 104, high: 107, low: 103, close: 106} // close beyond the level
	bars[21] = bar{open: 106, high: 106.5, low: 103, close: 104} // close back inside

	ev := a.DetectFakeout(frameFromBars(bars))
	require.Equal(t, domain.FakeUp, ev.Fake)
	require.Equal(t, 105.0, ev.Level)
}

func TestDetectFakeoutDown(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	bars := make([]bar, 22)
	for i := range bars {
		bars[i] = bar{open: 100, high: 101, low: 99, close: 100}
	}
	bars[13] = bar{open: 100, high: 101, low: 95, close: 100} // reference low
	bars[20] = bar{open: 96, high: 97, low: 93, close: 94}    // close beyond the level
	bars[21] = bar{open: 94, high: 97, low: 93.5, close: 96}  // close back inside

	ev := a.DetectFakeout(frameFromBars(bars))
	require.Equal(t, domain.FakeDown, ev.Fake)
	require.Equal(t, 95.0, ev.Level)
}

func TestDetectFakeoutInsufficientBars(t *testing.T) {
	a := NewLiquidityAnalyzer(LiquidityConfig{Lookback: 10})

	bars := make([]bar, 19) // below lookback+10
	for i := range bars {
		bars[i] = bar{open: 100, high: 101, low: 99, close: 100}
	}

	ev := a.DetectFakeout(frameFromBars(bars))
	require.Equal(t, domain.FakeNone, ev.Fake)
}
