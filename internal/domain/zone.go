package domain

import "time"

// ZoneType classifies a structural zone.
type ZoneType string

const (
	ZoneSupply ZoneType = "SUPPLY"
	ZoneDemand ZoneType = "DEMAND"
)

// Zone price range where a low-volatility base preceded a strong impulse.
// Invariant: Low <= High.
type Zone struct {
	Type       ZoneType
	Low        float64
	High       float64
	AnchorTime time.Time
}

// ZoneSet the most recent qualifying zone per type, nil when none was found.
// At most one active zone per type per timeframe per tick.
type ZoneSet struct {
	Supply *Zone
	Demand *Zone
}
