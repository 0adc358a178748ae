package publisher

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swingdesk/signum/internal/domain"
)

func testSnapshot() domain.TickSnapshot {
	return domain.TickSnapshot{
		TickID: "tick-1",
		Symbol: "XAUUSDT",
		Time:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Evaluation: domain.Evaluation{
			Results: map[domain.Timeframe]domain.TimeframeResult{
				domain.TimeframeM15: {
					Structure: domain.StructureResult{Bias: domain.BiasBullish},
					ATR:       42.5,
				},
				domain.TimeframeH1: {
					Structure: domain.StructureResult{Bias: domain.BiasBullish},
					ATR:       150.2,
				},
				domain.TimeframeH4: {
					Structure: domain.StructureResult{Bias: domain.BiasBullish},
					ATR:       390,
				},
			},
			Zones: map[domain.Timeframe]domain.ZoneSet{
				domain.TimeframeM15: {
					Demand: &domain.Zone{Type: domain.ZoneDemand, Low: 2310, High: 2318},
				},
			},
			GateAllowed: true,
			GateReason:  "Market OK",
			Plan: &domain.TradePlan{
				Symbol:     "XAUUSDT",
				Side:       domain.SideBuy,
				MarketBias: domain.BiasBullish,
				EntryLow:   2310,
				EntryHigh:  2318,
				SL:         2302,
				TP1:        2326,
				TP2:        2340,
				TP3:        2354,
				RiskReward: 2.17,
				Confidence: 78,
				Reason:     "HTF aligned (BULLISH); zone-based entry",
			},
		},
	}
}

func TestFormatSignal(t *testing.T) {
	out := FormatSignal(testSnapshot())

	require.Contains(t, out, "PAIR: XAUUSDT | SIDE: BUY | BIAS: BULLISH")
	require.Contains(t, out, "Entry Zone: 2310.00 -> 2318.00")
	require.Contains(t, out, "Stop Loss: 2302.00")
	require.Contains(t, out, "TP1 2326.00 | TP2 2340.00 | TP3 2354.00")
	require.Contains(t, out, "RR (to TP2): 2.17")
	require.Contains(t, out, "Confidence: 78.0%")
}

func TestFormatWatch(t *testing.T) {
	out := FormatWatch(testSnapshot(), "HTF ranging")

	require.Contains(t, out, "PAIR: XAUUSDT | STATUS: NO TRADE")
	require.Contains(t, out, "REASON: HTF ranging")

	// H4 before H1, then the M15 zone summary
	h4 := strings.Index(out, "H4: BULLISH")
	h1 := strings.Index(out, "H1: BULLISH")
	m15 := strings.Index(out, "M15: BULLISH")
	require.True(t, h4 >= 0 && h1 >= 0 && m15 >= 0)
	require.Less(t, h4, h1)
	require.Less(t, h1, m15)

	require.Contains(t, out, "D[2310.00-2318.00]")
}

func TestFormatZonesEmpty(t *testing.T) {
	require.Equal(t, "NOZ", formatZones(domain.ZoneSet{}))
}

func TestFormatZonesBoth(t *testing.T) {
	set := domain.ZoneSet{
		Demand: &domain.Zone{Low: 100, High: 102},
		Supply: &domain.Zone{Low: 110, High: 112},
	}
	require.Equal(t, "D[100.00-102.00] S[110.00-112.00]", formatZones(set))
}
