package domain

// Bias qualitative market direction derived from structure.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasRanging Bias = "RANGING"
)

// StructureEvent structural break classification.
type StructureEvent string

const (
	// EventBOS break of structure: close beyond the last opposing swing level.
	EventBOS StructureEvent = "BOS"
	// EventCHoCH change of character: a reversal overriding a freshly declared bias.
	EventCHoCH StructureEvent = "CHoCH"
	EventNone  StructureEvent = "NONE"
)

// SwingKind marks a fractal swing as a high or a low.
type SwingKind int

const (
	SwingHigh SwingKind = iota
	SwingLow
)

// SwingPoint a confirmed fractal swing extreme.
type SwingPoint struct {
	Index int
	Price float64
	Kind  SwingKind
}

// StructureResult bias and break event for one timeframe, recomputed fresh
// every evaluation. Zero swing levels mean "no level found".
type StructureResult struct {
	Bias          Bias
	Event         StructureEvent
	LastSwingHigh float64
	LastSwingLow  float64
}
