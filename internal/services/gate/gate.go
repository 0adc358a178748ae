// Package gate implements the cross-timeframe no-trade veto. Two policies
// exist from different points of the system's evolution: the strict
// alignment gate and the momentum-follow gate. Both are legitimate and the
// active one is selected via configuration.
package gate

import (
	"fmt"
	"sort"

	"github.com/swingdesk/signum/internal/domain"
)

// Policy names accepted by NewPolicy.
const (
	PolicyStrict   = "strict"
	PolicyMomentum = "momentum"
)

const deadVolumeZ = -3.0

// volumeCheckedTimeframes are the timeframes the dead-volume check applies to.
var volumeCheckedTimeframes = []domain.Timeframe{domain.TimeframeM15, domain.TimeframeH1}

// Policy decides whether the market is tradable. Implementations are pure:
// they never fail and identical inputs yield identical (allowed, reason)
// pairs.
type Policy interface {
	Name() string
	Evaluate(results map[domain.Timeframe]domain.TimeframeResult) (allowed bool, reason string)
}

// Config shared gate parameters.
type Config struct {
	// MinATR per-timeframe volatility floors; timeframes absent from the
	// map are not checked.
	MinATR map[domain.Timeframe]float64
}

// NewPolicy returns the named gate policy.
func NewPolicy(name string, cfg Config) (Policy, error) {
	switch name {
	case PolicyStrict:
		return &StrictPolicy{minATR: cfg.MinATR}, nil
	case PolicyMomentum:
		return &MomentumPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown gate policy: %q", name)
	}
}

// StrictPolicy requires full H1/H4 alignment, no fresh reversals, and
// volatility/volume sanity on every configured timeframe.
type StrictPolicy struct {
	minATR map[domain.Timeframe]float64
}

// Name implements Policy.
func (p *StrictPolicy) Name() string { return PolicyStrict }

// Evaluate runs the checks in order, short-circuiting on the first veto.
func (p *StrictPolicy) Evaluate(results map[domain.Timeframe]domain.TimeframeResult) (bool, string) {
	h1, okH1 := results[domain.TimeframeH1]
	h4, okH4 := results[domain.TimeframeH4]
	if !okH1 || !okH4 {
		return false, "HTF data missing"
	}

	if h1.Structure.Bias != h4.Structure.Bias {
		return false, fmt.Sprintf("HTF conflict (H1=%s vs H4=%s)", h1.Structure.Bias, h4.Structure.Bias)
	}

	if h1.Structure.Bias == domain.BiasRanging {
		return false, "HTF ranging"
	}

	if h1.Structure.Event == domain.EventCHoCH || h4.Structure.Event == domain.EventCHoCH {
		return false, "HTF CHoCH detected"
	}

	// Map iteration order is randomized; sort for a deterministic veto.
	for _, tf := range sortedTimeframes(p.minATR) {
		res, ok := results[tf]
		if !ok {
			continue
		}
		if res.ATR < p.minATR[tf] {
			return false, fmt.Sprintf("Low ATR on %s", tf)
		}
	}

	for _, tf := range volumeCheckedTimeframes {
		res, ok := results[tf]
		if !ok {
			continue
		}
		if res.VolZ < deadVolumeZ {
			return false, fmt.Sprintf("Dead volume on %s", tf)
		}
	}

	return true, "Market OK"
}

// MomentumPolicy rejects only a hard H1/H4 directional conflict or a ranging
// H1. A ranging H4 is tolerated: H1 momentum drives the decision.
type MomentumPolicy struct{}

// Name implements Policy.
func (p *MomentumPolicy) Name() string { return PolicyMomentum }

// Evaluate implements Policy.
func (p *MomentumPolicy) Evaluate(results map[domain.Timeframe]domain.TimeframeResult) (bool, string) {
	h1, okH1 := results[domain.TimeframeH1]
	h4, okH4 := results[domain.TimeframeH4]
	if !okH1 || !okH4 {
		return false, "HTF data missing"
	}

	h1Bias := h1.Structure.Bias
	h4Bias := h4.Structure.Bias

	if h1Bias == domain.BiasBullish && h4Bias == domain.BiasBearish ||
		h1Bias == domain.BiasBearish && h4Bias == domain.BiasBullish {
		return false, fmt.Sprintf("HTF conflict (H1=%s vs H4=%s)", h1Bias, h4Bias)
	}

	if h1Bias == domain.BiasRanging {
		return false, "HTF ranging (H1 neutral)"
	}

	return true, "Market OK"
}

func sortedTimeframes(m map[domain.Timeframe]float64) []domain.Timeframe {
	tfs := make([]domain.Timeframe, 0, len(m))
	for tf := range m {
		tfs = append(tfs, tf)
	}
	sort.Slice(tfs, func(i, j int) bool {
		return tfs[i].Duration() < tfs[j].Duration()
	})
	return tfs
}
