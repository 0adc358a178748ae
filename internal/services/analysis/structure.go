// Package analysis implements market structure classification: fractal
// swings, bias/break events, supply-demand zones and liquidity sweeps.
// Every analyzer is a pure function over the full frame; nothing is carried
// across ticks.
package analysis

import "github.com/swingdesk/signum/internal/domain"

const defaultSwingLookback = 3

// StructureConfig parameters for swing detection.
type StructureConfig struct {
	// SwingLookback is the number of neighbors on each side a bar must
	// dominate to qualify as a fractal swing.
	SwingLookback int
}

// StructureAnalyzer classifies market bias and structural break events.
type StructureAnalyzer struct {
	lookback int
}

// NewStructureAnalyzer creates a structure analyzer.
func NewStructureAnalyzer(cfg StructureConfig) *StructureAnalyzer {
	lookback := cfg.SwingLookback
	if lookback <= 0 {
		lookback = defaultSwingLookback
	}
	return &StructureAnalyzer{lookback: lookback}
}

// Swings returns the confirmed fractal swing points of the frame, oldest
// first. A bar qualifies iff its high (low) is the strict extreme over the
// symmetric window around it; only interior bars with a full window on both
// sides can qualify, so the most recent bar is never flagged.
func (a *StructureAnalyzer) Swings(f *domain.IndicatorFrame) []domain.SwingPoint {
	n := f.Len()
	var swings []domain.SwingPoint

	for i := a.lookback; i < n-a.lookback; i++ {
		if a.isStrictExtreme(f.High, i, true) {
			swings = append(swings, domain.SwingPoint{Index: i, Price: f.High[i], Kind: domain.SwingHigh})
		}
		if a.isStrictExtreme(f.Low, i, false) {
			swings = append(swings, domain.SwingPoint{Index: i, Price: f.Low[i], Kind: domain.SwingLow})
		}
	}
	return swings
}

func (a *StructureAnalyzer) isStrictExtreme(values []float64, i int, max bool) bool {
	for j := i - a.lookback; j <= i+a.lookback; j++ {
		if j == i {
			continue
		}
		if max && values[j] >= values[i] {
			return false
		}
		if !max && values[j] <= values[i] {
			return false
		}
	}
	return true
}

// Analyze derives bias and break event from the frame. It never fails:
// with insufficient data the result degrades to RANGING/NONE.
func (a *StructureAnalyzer) Analyze(f *domain.IndicatorFrame) domain.StructureResult {
	res := domain.StructureResult{Bias: domain.BiasRanging, Event: domain.EventNone}

	n := f.Len()
	if n == 0 {
		return res
	}

	for _, s := range a.Swings(f) {
		switch s.Kind {
		case domain.SwingHigh:
			res.LastSwingHigh = s.Price
		case domain.SwingLow:
			res.LastSwingLow = s.Price
		}
	}

	close := f.Close[n-1]
	lastHigh := res.LastSwingHigh
	lastLow := res.LastSwingLow

	if lastHigh > 0 && close > lastHigh {
		res.Bias = domain.BiasBullish
		res.Event = domain.EventBOS
	} else if lastLow > 0 && close < lastLow {
		res.Bias = domain.BiasBearish
		res.Event = domain.EventBOS
	}

	// CHoCH override, kept literal: each condition re-reads the bias the
	// previous one may have just flipped. The conjunction only fires when
	// the swing levels are inverted (lastLow above lastHigh).
	if res.Bias == domain.BiasBullish && lastLow > 0 && close < lastLow {
		res.Bias = domain.BiasBearish
		res.Event = domain.EventCHoCH
	}
	if res.Bias == domain.BiasBearish && lastHigh > 0 && close > lastHigh {
		res.Bias = domain.BiasBullish
		res.Event = domain.EventCHoCH
	}

	// EMA-context fallback when structure alone is inconclusive.
	if res.Bias == domain.BiasRanging {
		ema50 := f.EMA50[n-1]
		ema200 := f.EMA200[n-1]
		if ema50 > 0 && ema200 > 0 {
			if close > ema50 && ema50 > ema200 {
				res.Bias = domain.BiasBullish
			} else if close < ema50 && ema50 < ema200 {
				res.Bias = domain.BiasBearish
			}
		}
	}

	return res
}
