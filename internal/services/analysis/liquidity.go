package analysis

import (
	"math"

	"github.com/swingdesk/signum/internal/domain"
)

const (
	defaultLiquidityLookback = 50
	defaultWickRatio         = 0.55

	// minReferenceBars is the smallest window that still yields usable
	// reference levels; below it levels are disabled (0).
	minReferenceBars = 5

	noteNone             = "none"
	noteWickDominant     = "wick_dominant"
	noteWeakWick         = "weak_wick"
	noteInsufficientBars = "insufficient_bars"
)

// LiquidityConfig parameters for sweep and fakeout detection.
type LiquidityConfig struct {
	// Lookback is the number of bars the reference high/low is taken over.
	Lookback int
	// WickRatio is the wick-dominance annotation threshold.
	WickRatio float64
}

// LiquidityAnalyzer detects stop hunts and failed breakouts against prior
// extremes.
type LiquidityAnalyzer struct {
	lookback  int
	wickRatio float64
}

// NewLiquidityAnalyzer creates a liquidity analyzer.
func NewLiquidityAnalyzer(cfg LiquidityConfig) *LiquidityAnalyzer {
	lookback := cfg.Lookback
	if lookback <= 0 {
		lookback = defaultLiquidityLookback
	}
	wick := cfg.WickRatio
	if wick <= 0 {
		wick = defaultWickRatio
	}
	return &LiquidityAnalyzer{lookback: lookback, wickRatio: wick}
}

// DetectSweep checks the most recent bar for a liquidity sweep: a trade
// through the reference level that closes back inside. The wick-dominance
// ratio only annotates the note, it never suppresses a detected sweep.
// With fewer than lookback+5 bars the result is a no-event with an
// "insufficient_bars" note.
func (a *LiquidityAnalyzer) DetectSweep(f *domain.IndicatorFrame) domain.LiquidityEvent {
	n := f.Len()
	if n < a.lookback+5 {
		return domain.LiquidityEvent{Sweep: domain.SweepNone, Note: noteInsufficientBars}
	}

	prevHigh, prevLow := a.referenceLevels(f, n)

	i := n - 1
	o, h, l, c := f.Open[i], f.High[i], f.Low[i], f.Close[i]

	rng := math.Max(h-l, rangeEpsilon)
	upperWick := h - math.Max(o, c)
	lowerWick := math.Min(o, c) - l

	if prevHigh > 0 && h > prevHigh && c < prevHigh {
		note := noteWeakWick
		if upperWick/rng >= a.wickRatio {
			note = noteWickDominant
		}
		return domain.LiquidityEvent{Sweep: domain.SweepHigh, Level: prevHigh, Note: note}
	}

	if prevLow > 0 && l < prevLow && c > prevLow {
		note := noteWeakWick
		if lowerWick/rng >= a.wickRatio {
			note = noteWickDominant
		}
		return domain.LiquidityEvent{Sweep: domain.SweepLow, Level: prevLow, Note: note}
	}

	return domain.LiquidityEvent{Sweep: domain.SweepNone, Note: noteNone}
}

// DetectFakeout checks the last two bars for a failed breakout: the close
// two bars back broke the reference level and the close one bar back
// already returned inside. Requires lookback+10 bars.
func (a *LiquidityAnalyzer) DetectFakeout(f *domain.IndicatorFrame) domain.FakeoutEvent {
	n := f.Len()
	if n < a.lookback+10 {
		return domain.FakeoutEvent{Fake: domain.FakeNone}
	}

	// Reference levels exclude the two bars under test.
	prevHigh, prevLow := a.referenceLevels(f, n-2)

	c1 := f.Close[n-2]
	c2 := f.Close[n-1]

	if prevHigh > 0 && c1 > prevHigh && c2 < prevHigh {
		return domain.FakeoutEvent{Fake: domain.FakeUp, Level: prevHigh}
	}
	if prevLow > 0 && c1 < prevLow && c2 > prevLow {
		return domain.FakeoutEvent{Fake: domain.FakeDown, Level: prevLow}
	}

	return domain.FakeoutEvent{Fake: domain.FakeNone}
}

// referenceLevels returns the max high and min low over the lookback window
// preceding bar index end-1 (the window never includes the final bar of the
// considered range). Windows shorter than minReferenceBars disable levels.
func (a *LiquidityAnalyzer) referenceLevels(f *domain.IndicatorFrame, end int) (high, low float64) {
	from := 0
	if end > a.lookback+1 {
		from = end - (a.lookback + 1)
	}
	to := end - 1
	if to-from < minReferenceBars {
		return 0, 0
	}

	high = f.High[from]
	low = f.Low[from]
	for i := from + 1; i < to; i++ {
		high = math.Max(high, f.High[i])
		low = math.Min(low, f.Low[i])
	}
	return high, low
}
