package domain

// SweepKind liquidity sweep direction.
type SweepKind string

const (
	SweepNone SweepKind = ""
	// SweepHigh price traded above the reference high and closed back below it.
	SweepHigh SweepKind = "SWEEP_HIGH"
	// SweepLow price traded below the reference low and closed back above it.
	SweepLow SweepKind = "SWEEP_LOW"
)

// LiquidityEvent result of sweep detection on the most recent bar.
// Note annotates wick dominance or insufficient data; it never suppresses
// a detected sweep.
type LiquidityEvent struct {
	Sweep SweepKind
	Level float64
	Note  string
}

// FakeKind failed-breakout direction.
type FakeKind string

const (
	FakeNone FakeKind = ""
	FakeUp   FakeKind = "FAKE_UP"
	FakeDown FakeKind = "FAKE_DOWN"
)

// FakeoutEvent a breakout that failed within two bars.
type FakeoutEvent struct {
	Fake  FakeKind
	Level float64
}
