// Package engine orchestrates the per-tick analysis pipeline: structure,
// zones and liquidity per timeframe, the no-trade gate, and plan
// construction. Evaluate is pure and performs no I/O; the enclosing run
// loop owns polling cadence and publish cooldowns.
package engine

import (
	"github.com/swingdesk/signum/internal/domain"
	"github.com/swingdesk/signum/internal/services/analysis"
	"github.com/swingdesk/signum/internal/services/entry"
	"github.com/swingdesk/signum/internal/services/gate"
)

// Config analysis pipeline parameters.
type Config struct {
	Symbol string

	// EntryTimeframe is the timeframe plans are built on.
	EntryTimeframe domain.Timeframe
	// ZoneTimeframes are the timeframes zone detection runs on.
	ZoneTimeframes []domain.Timeframe

	Structure analysis.StructureConfig
	Zone      analysis.ZoneConfig
	Liquidity analysis.LiquidityConfig
	Mode      domain.Mode
}

// Engine evaluates one tick's frames into an Evaluation.
type Engine struct {
	cfg       Config
	structure *analysis.StructureAnalyzer
	zones     *analysis.ZoneDetector
	liquidity *analysis.LiquidityAnalyzer
	gate      gate.Policy
	entry     *entry.Engine
}

// New creates an engine with the given gate policy.
func New(cfg Config, policy gate.Policy) *Engine {
	if cfg.EntryTimeframe == "" {
		cfg.EntryTimeframe = domain.TimeframeM15
	}
	if len(cfg.ZoneTimeframes) == 0 {
		cfg.ZoneTimeframes = []domain.Timeframe{domain.TimeframeM15, domain.TimeframeH1, domain.TimeframeH4}
	}
	return &Engine{
		cfg:       cfg,
		structure: analysis.NewStructureAnalyzer(cfg.Structure),
		zones:     analysis.NewZoneDetector(cfg.Zone),
		liquidity: analysis.NewLiquidityAnalyzer(cfg.Liquidity),
		gate:      policy,
		entry:     entry.New(entry.Config{Mode: cfg.Mode}),
	}
}

// Evaluate classifies every supplied frame, applies the gate and, when the
// market is tradable, builds a plan on the entry timeframe. Deterministic:
// identical frames always yield an identical evaluation.
func (e *Engine) Evaluate(frames map[domain.Timeframe]*domain.IndicatorFrame) domain.Evaluation {
	eval := domain.Evaluation{
		Results: make(map[domain.Timeframe]domain.TimeframeResult, len(frames)),
		Zones:   make(map[domain.Timeframe]domain.ZoneSet, len(frames)),
	}

	for tf, frame := range frames {
		eval.Results[tf] = domain.TimeframeResult{
			Structure: e.structure.Analyze(frame),
			ATR:       frame.LastATR(),
			VolZ:      frame.LastVolZ(),
		}
	}

	for _, tf := range e.cfg.ZoneTimeframes {
		frame, ok := frames[tf]
		if !ok {
			continue
		}
		eval.Zones[tf] = e.zones.Detect(frame)
	}

	entryFrame, hasEntryFrame := frames[e.cfg.EntryTimeframe]
	if hasEntryFrame {
		eval.Liquidity = e.liquidity.DetectSweep(entryFrame)
		eval.Fakeout = e.liquidity.DetectFakeout(entryFrame)
	}

	eval.GateAllowed, eval.GateReason = e.gate.Evaluate(eval.Results)
	if !eval.GateAllowed || !hasEntryFrame {
		return eval
	}

	eval.Plan = e.entry.BuildPlan(entry.Input{
		Symbol:    e.cfg.Symbol,
		HTFBias:   e.htfBias(eval.Results),
		LTFBias:   eval.Results[e.cfg.EntryTimeframe].Structure.Bias,
		Frame:     entryFrame,
		Zones:     eval.Zones[e.cfg.EntryTimeframe],
		Liquidity: eval.Liquidity,
		Fakeout:   eval.Fakeout,
	})

	return eval
}

// htfBias is the H4 bias, falling back to H1 momentum when H4 is ranging.
// The fallback is only reachable under the momentum gate policy: the strict
// policy rejects a ranging H4 outright.
func (e *Engine) htfBias(results map[domain.Timeframe]domain.TimeframeResult) domain.Bias {
	bias := results[domain.TimeframeH4].Structure.Bias
	if bias == domain.BiasRanging {
		bias = results[domain.TimeframeH1].Structure.Bias
	}
	return bias
}
