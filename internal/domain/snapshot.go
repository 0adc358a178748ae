package domain

import "time"

// TimeframeResult per-timeframe analysis outcome consumed by the gate.
type TimeframeResult struct {
	Structure StructureResult
	ATR       float64
	VolZ      float64
}

// Evaluation everything the analysis pipeline derives from one tick's frames.
// Pure data: identical inputs always produce an identical evaluation.
type Evaluation struct {
	Results   map[Timeframe]TimeframeResult `json:"results"`
	Zones     map[Timeframe]ZoneSet         `json:"zones"`
	Liquidity LiquidityEvent                `json:"liquidity"`
	Fakeout   FakeoutEvent                  `json:"fakeout"`

	GateAllowed bool   `json:"gate_allowed"`
	GateReason  string `json:"gate_reason"`

	// Plan is nil when the gate vetoed or no setup qualified.
	Plan *TradePlan `json:"plan,omitempty"`
}

// TickSnapshot an evaluation stamped with tick metadata by the run loop.
type TickSnapshot struct {
	TickID string    `json:"tick_id"`
	Symbol string    `json:"symbol"`
	Time   time.Time `json:"time"`

	Evaluation
}
