package domain

// Side trade direction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Mode operating mode of the entry engine.
type Mode string

const (
	// ModeSafe caps confidence at 80.
	ModeSafe Mode = "SAFE"
	// ModeAggressive applies no confidence cap.
	ModeAggressive Mode = "AGGRESSIVE"
)

// TradePlan a concrete trade proposal produced at most once per tick.
// Plans carry no persisted identity.
//
// Invariants: EntryLow <= EntryHigh within the source zone; SL strictly
// beyond the zone boundary opposite the trade direction; TP1 < TP2 < TP3
// in the trade direction; Confidence in [0,100].
type TradePlan struct {
	Symbol     string
	Side       Side
	MarketBias Bias
	EntryLow   float64
	EntryHigh  float64
	SL         float64
	TP1        float64
	TP2        float64
	TP3        float64
	RiskReward float64
	Confidence float64
	Reason     string
}

// EntryMid returns the midpoint of the entry zone.
func (p *TradePlan) EntryMid() float64 {
	return (p.EntryLow + p.EntryHigh) / 2
}
