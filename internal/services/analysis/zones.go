package analysis

import (
	"math"

	"github.com/swingdesk/signum/internal/domain"
)

const (
	defaultBaseCandles = 3
	defaultImpulsePct  = 0.6

	baseBodyRatioMax = 0.35
	rangeEpsilon     = 1e-9
)

// ZoneConfig parameters for base-then-impulse zone detection.
type ZoneConfig struct {
	// BaseCandles is the required run length of small-body bars.
	BaseCandles int
	// ImpulsePct is the minimum directional move fraction of the impulse bar.
	ImpulsePct float64
}

// ZoneDetector finds the most recent supply and demand zones in a frame.
type ZoneDetector struct {
	baseCandles int
	impulsePct  float64
}

// NewZoneDetector creates a zone detector.
func NewZoneDetector(cfg ZoneConfig) *ZoneDetector {
	base := cfg.BaseCandles
	if base <= 0 {
		base = defaultBaseCandles
	}
	impulse := cfg.ImpulsePct
	if impulse <= 0 {
		impulse = defaultImpulsePct
	}
	return &ZoneDetector{baseCandles: base, impulsePct: impulse}
}

// Detect scans oldest to newest, excluding the final bar, and keeps only the
// most recent qualifying zone per type: later matches overwrite earlier ones.
func (d *ZoneDetector) Detect(f *domain.IndicatorFrame) domain.ZoneSet {
	var set domain.ZoneSet

	n := f.Len()
	for i := d.baseCandles + 2; i < n-1; i++ {
		if !d.isBase(f, i-d.baseCandles, i) {
			continue
		}

		rng := math.Max(f.High[i]-f.Low[i], rangeEpsilon)
		low, high := baseExtent(f, i-d.baseCandles, i)
		anchor := f.Times[i-1]

		if f.Close[i] > f.Open[i] {
			if (f.Close[i]-f.Open[i])/rng >= d.impulsePct {
				set.Demand = &domain.Zone{Type: domain.ZoneDemand, Low: low, High: high, AnchorTime: anchor}
			}
		} else if f.Close[i] < f.Open[i] {
			if (f.Open[i]-f.Close[i])/rng >= d.impulsePct {
				set.Supply = &domain.Zone{Type: domain.ZoneSupply, Low: low, High: high, AnchorTime: anchor}
			}
		}
	}

	return set
}

// isBase reports whether every bar in [from, to) has a body/range ratio
// below the base threshold.
func (d *ZoneDetector) isBase(f *domain.IndicatorFrame, from, to int) bool {
	for i := from; i < to; i++ {
		body := math.Abs(f.Close[i] - f.Open[i])
		rng := math.Max(f.High[i]-f.Low[i], rangeEpsilon)
		if body/rng >= baseBodyRatioMax {
			return false
		}
	}
	return true
}

func baseExtent(f *domain.IndicatorFrame, from, to int) (low, high float64) {
	low = f.Low[from]
	high = f.High[from]
	for i := from + 1; i < to; i++ {
		low = math.Min(low, f.Low[i])
		high = math.Max(high, f.High[i])
	}
	return low, high
}
