// Package entry composes bias, zones, liquidity and volatility into a
// concrete trade plan. A nil plan is the normal "keep watching" outcome,
// never an error.
package entry

import (
	"fmt"
	"math"

	"github.com/swingdesk/signum/internal/domain"
)

const (
	slATRBuffer  = 0.35
	minLevelStep = 1.0

	baseConfidence     = 50.0
	emaAlignmentBonus  = 10.0
	rsiBandBonus       = 8.0
	staleSignalPenalty = 15.0
	safeConfidenceCap  = 80.0
)

// Config entry engine parameters.
type Config struct {
	Mode domain.Mode
}

// Engine builds trade plans from aligned multi-timeframe context.
type Engine struct {
	mode domain.Mode
}

// New creates an entry engine.
func New(cfg Config) *Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = domain.ModeSafe
	}
	return &Engine{mode: mode}
}

// Input everything the entry decision depends on, for the entry timeframe.
type Input struct {
	Symbol    string
	HTFBias   domain.Bias
	LTFBias   domain.Bias
	Frame     *domain.IndicatorFrame
	Zones     domain.ZoneSet
	Liquidity domain.LiquidityEvent
	Fakeout   domain.FakeoutEvent
}

// BuildPlan returns a trade plan, or nil when preconditions are unmet:
// a ranging or misaligned bias, a missing zone, or liquidity contradicting
// the trade direction.
func (e *Engine) BuildPlan(in Input) *domain.TradePlan {
	if in.HTFBias == domain.BiasRanging {
		return nil
	}
	if in.LTFBias != in.HTFBias {
		return nil
	}

	snap := in.Frame.LastSnapshot()
	atr := snap.ATR14

	var (
		side                domain.Side
		zone                *domain.Zone
		sl                  float64
		entryLow, entryHigh float64
		tp1, tp2, tp3       float64
	)

	switch in.HTFBias {
	case domain.BiasBullish:
		side = domain.SideBuy
		// A topside stop hunt contradicts going long.
		if in.Liquidity.Sweep == domain.SweepHigh || in.Fakeout.Fake == domain.FakeUp {
			return nil
		}
		zone = in.Zones.Demand
		if zone == nil {
			return nil
		}
		entryLow, entryHigh = zone.Low, zone.High
		mid := (entryLow + entryHigh) / 2
		sl = entryLow - math.Max(atr*slATRBuffer, minLevelStep)
		tp1 = mid + math.Max(atr*1, minLevelStep)
		tp2 = mid + math.Max(atr*2, minLevelStep)
		tp3 = mid + math.Max(atr*3, minLevelStep)

	default: // BEARISH
		side = domain.SideSell
		if in.Liquidity.Sweep == domain.SweepLow || in.Fakeout.Fake == domain.FakeDown {
			return nil
		}
		zone = in.Zones.Supply
		if zone == nil {
			return nil
		}
		entryLow, entryHigh = zone.Low, zone.High
		mid := (entryLow + entryHigh) / 2
		sl = entryHigh + math.Max(atr*slATRBuffer, minLevelStep)
		tp1 = mid - math.Max(atr*1, minLevelStep)
		tp2 = mid - math.Max(atr*2, minLevelStep)
		tp3 = mid - math.Max(atr*3, minLevelStep)
	}

	entryMid := (entryLow + entryHigh) / 2
	rr := riskReward(entryMid, sl, tp2)
	conf := e.confidence(side, snap, entryMid, rr)

	reason := fmt.Sprintf(
		"HTF aligned (%s); zone-based entry; liquidity filters OK; ATR=%.2f; RR(TP2)=%.2f",
		in.HTFBias, atr, rr,
	)

	return &domain.TradePlan{
		Symbol:     in.Symbol,
		Side:       side,
		MarketBias: in.HTFBias,
		EntryLow:   entryLow,
		EntryHigh:  entryHigh,
		SL:         sl,
		TP1:        tp1,
		TP2:        tp2,
		TP3:        tp3,
		RiskReward: rr,
		Confidence: conf,
		Reason:     reason,
	}
}

// riskReward is reward distance over risk distance, 0 when risk is not positive.
func riskReward(entry, sl, tp float64) float64 {
	risk := math.Abs(entry - sl)
	if risk <= 0 {
		return 0
	}
	return math.Abs(tp-entry) / risk
}

func (e *Engine) confidence(side domain.Side, snap domain.BarSnapshot, entryMid, rr float64) float64 {
	conf := baseConfidence

	if snap.EMA50 > 0 && snap.EMA200 > 0 {
		if side == domain.SideBuy && snap.EMA50 > snap.EMA200 {
			conf += emaAlignmentBonus
		}
		if side == domain.SideSell && snap.EMA50 < snap.EMA200 {
			conf += emaAlignmentBonus
		}
	}

	if side == domain.SideBuy && snap.RSI14 >= 45 && snap.RSI14 <= 70 {
		conf += rsiBandBonus
	}
	if side == domain.SideSell && snap.RSI14 >= 30 && snap.RSI14 <= 55 {
		conf += rsiBandBonus
	}

	// Price already ran away from the zone: the signal is stale.
	if snap.ATR14 > 0 && math.Abs(snap.Close-entryMid) > snap.ATR14*2 {
		conf -= staleSignalPenalty
	}

	switch {
	case rr >= 2.0:
		conf += 10
	case rr >= 1.5:
		conf += 6
	case rr < 1.2:
		conf -= 10
	}

	if e.mode == domain.ModeSafe {
		conf = math.Min(conf, safeConfidenceCap)
	}

	return clampConfidence(conf)
}

func clampConfidence(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
