package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swingdesk/signum/internal/domain"
)

// lastBarFrame builds a one-bar frame carrying the snapshot values the
// entry engine reads.
func lastBarFrame(close, ema50, ema200, rsi, atr float64) *domain.IndicatorFrame {
	return &domain.IndicatorFrame{
		Times:    []time.Time{time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Open:     []float64{close},
		High:     []float64{close + 1},
		Low:      []float64{close - 1},
		Close:    []float64{close},
		Volume:   []float64{1000},
		EMA50:    []float64{ema50},
		EMA200:   []float64{ema200},
		RSI14:    []float64{rsi},
		ATR14:    []float64{atr},
		VolSMA20: []float64{1000},
		VolZ20:   []float64{0},
	}
}

func buyInput() Input {
	return Input{
		Symbol:  "XAUUSDT",
		HTFBias: domain.BiasBullish,
		LTFBias: domain.BiasBullish,
		Frame:   lastBarFrame(102, 101, 99, 55, 2),
		Zones: domain.ZoneSet{
			Demand: &domain.Zone{Type: domain.ZoneDemand, Low: 100, High: 102},
		},
	}
}

func sellInput() Input {
	return Input{
		Symbol:  "XAUUSDT",
		HTFBias: domain.BiasBearish,
		LTFBias: domain.BiasBearish,
		Frame:   lastBarFrame(100, 99, 101, 45, 2),
		Zones: domain.ZoneSet{
			Supply: &domain.Zone{Type: domain.ZoneSupply, Low: 100, High: 102},
		},
	}
}

func TestBuildPlanBuy(t *testing.T) {
	e := New(Config{Mode: domain.ModeSafe})

	plan := e.BuildPlan(buyInput())
	require.NotNil(t, plan)
	require.Equal(t, domain.SideBuy, plan.Side)
	require.Equal(t, domain.BiasBullish, plan.MarketBias)
	require.Equal(t, 100.0, plan.EntryLow)
	require.Equal(t, 102.0, plan.EntryHigh)

	// mid 101, ATR 2: SL = 100 - 1, TPs laddered off the mid
	require.Equal(t, 99.0, plan.SL)
	require.Equal(t, 103.0, plan.TP1)
	require.Equal(t, 105.0, plan.TP2)
	require.Equal(t, 107.0, plan.TP3)

	require.Less(t, plan.SL, plan.EntryLow)
	require.Less(t, plan.TP1, plan.TP2)
	require.Less(t, plan.TP2, plan.TP3)

	require.Equal(t, 2.0, plan.RiskReward)
	// 50 base + 10 EMA stack + 8 RSI band + 10 RR
	require.Equal(t, 78.0, plan.Confidence)
}

func TestBuildPlanSell(t *testing.T) {
	e := New(Config{Mode: domain.ModeSafe})

	plan := e.BuildPlan(sellInput())
	require.NotNil(t, plan)
	require.Equal(t, domain.SideSell, plan.Side)

	// mid 101, ATR 2: SL above the zone, TPs below
	require.Equal(t, 103.0, plan.SL)
	require.Equal(t, 99.0, plan.TP1)
	require.Equal(t, 97.0, plan.TP2)
	require.Equal(t, 95.0, plan.TP3)

	require.Greater(t, plan.SL, plan.EntryHigh)
	require.Greater(t, plan.TP1, plan.TP2)
	require.Greater(t, plan.TP2, plan.TP3)
}

func TestBuildPlanNilOnRangingBias(t *testing.T) {
	e := New(Config{})

	in := buyInput()
	in.HTFBias = domain.BiasRanging
	require.Nil(t, e.BuildPlan(in))
}

func TestBuildPlanNilOnMisalignedBias(t *testing.T) {
	e := New(Config{})

	in := buyInput()
	in.LTFBias = domain.BiasBearish
	require.Nil(t, e.BuildPlan(in))
}

func TestBuildPlanNilOnMissingZone(t *testing.T) {
	e := New(Config{})

	in := buyInput()
	in.Zones = domain.ZoneSet{}
	require.Nil(t, e.BuildPlan(in))
}

func TestBuildPlanNilOnContradictingLiquidity(t *testing.T) {
	e := New(Config{})

	in := buyInput()
	in.Liquidity = domain.LiquidityEvent{Sweep: domain.SweepHigh, Level: 105}
	require.Nil(t, e.BuildPlan(in), "a topside sweep must veto a long")

	in = buyInput()
	in.Fakeout = domain.FakeoutEvent{Fake: domain.FakeUp, Level: 105}
	require.Nil(t, e.BuildPlan(in), "a failed upside breakout must veto a long")

	in = sellInput()
	in.Liquidity = domain.LiquidityEvent{Sweep: domain.SweepLow, Level: 95}
	require.Nil(t, e.BuildPlan(in), "a downside sweep must veto a short")

	in = sellInput()
	in.Fakeout = domain.FakeoutEvent{Fake: domain.FakeDown, Level: 95}
	require.Nil(t, e.BuildPlan(in), "a failed downside breakout must veto a short")
}

func TestBuildPlanAlignedSweepAllowed(t *testing.T) {
	e := New(Config{})

	// a downside sweep is fuel for a long, not a veto
	in := buyInput()
	in.Liquidity = domain.LiquidityEvent{Sweep: domain.SweepLow, Level: 99}
	require.NotNil(t, e.BuildPlan(in))
}

func TestBuildPlanStalePenalty(t *testing.T) {
	e := New(Config{Mode: domain.ModeSafe})

	in := buyInput()
	// close ran 9 points from the zone mid with ATR 2: stale
	in.Frame = lastBarFrame(110, 109, 99, 55, 2)

	plan := e.BuildPlan(in)
	require.NotNil(t, plan)
	// 50 base + 10 EMA + 8 RSI - 15 stale + 10 RR
	require.Equal(t, 63.0, plan.Confidence)
}

func TestBuildPlanConfidenceBounds(t *testing.T) {
	for _, mode := range []domain.Mode{domain.ModeSafe, domain.ModeAggressive} {
		e := New(Config{Mode: mode})

		plan := e.BuildPlan(buyInput())
		require.NotNil(t, plan)
		require.GreaterOrEqual(t, plan.Confidence, 0.0)
		require.LessOrEqual(t, plan.Confidence, 100.0)

		if mode == domain.ModeSafe {
			require.LessOrEqual(t, plan.Confidence, 80.0)
		}
	}
}
