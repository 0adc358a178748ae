package publisher

import (
	"fmt"
	"strings"

	"github.com/swingdesk/signum/internal/domain"
)

// FormatSignal renders a trade setup as a human-readable report.
func FormatSignal(snap domain.TickSnapshot) string {
	plan := snap.Plan

	var b strings.Builder
	fmt.Fprintf(&b, "PAIR: %s | SIDE: %s | BIAS: %s\n", plan.Symbol, plan.Side, plan.MarketBias)
	fmt.Fprintf(&b, "Entry Zone: %.2f -> %.2f\n", plan.EntryLow, plan.EntryHigh)
	fmt.Fprintf(&b, "Stop Loss: %.2f\n", plan.SL)
	fmt.Fprintf(&b, "Take Profit: TP1 %.2f | TP2 %.2f | TP3 %.2f\n", plan.TP1, plan.TP2, plan.TP3)
	fmt.Fprintf(&b, "RR (to TP2): %.2f | Confidence: %.1f%%\n", plan.RiskReward, plan.Confidence)
	fmt.Fprintf(&b, "Reason: %s", plan.Reason)
	return b.String()
}

// FormatWatch renders a no-trade status report.
func FormatWatch(snap domain.TickSnapshot, reason string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PAIR: %s | STATUS: NO TRADE\n", snap.Symbol)

	for _, tf := range []domain.Timeframe{domain.TimeframeH4, domain.TimeframeH1} {
		if res, ok := snap.Results[tf]; ok {
			fmt.Fprintf(&b, "%s: %s | ATR %.2f\n", tf, res.Structure.Bias, res.ATR)
		}
	}

	if res, ok := snap.Results[domain.TimeframeM15]; ok {
		fmt.Fprintf(&b, "M15: %s | Zones: %s\n", res.Structure.Bias, formatZones(snap.Zones[domain.TimeframeM15]))
	}

	fmt.Fprintf(&b, "REASON: %s", reason)
	return b.String()
}

func formatZones(set domain.ZoneSet) string {
	var parts []string
	if set.Demand != nil {
		parts = append(parts, fmt.Sprintf("D[%.2f-%.2f]", set.Demand.Low, set.Demand.High))
	}
	if set.Supply != nil {
		parts = append(parts, fmt.Sprintf("S[%.2f-%.2f]", set.Supply.Low, set.Supply.High))
	}
	if len(parts) == 0 {
		return "NOZ"
	}
	return strings.Join(parts, " ")
}
