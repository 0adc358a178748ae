package domain

import "time"

// Timeframe identifies a candle aggregation period.
type Timeframe string

const (
	TimeframeM1  Timeframe = "M1"
	TimeframeM5  Timeframe = "M5"
	TimeframeM15 Timeframe = "M15"
	TimeframeH1  Timeframe = "H1"
	TimeframeH4  Timeframe = "H4"
)

// AllTimeframes lists the timeframes analysed every tick, lowest first.
var AllTimeframes = []Timeframe{TimeframeM1, TimeframeM5, TimeframeM15, TimeframeH1, TimeframeH4}

// Interval returns the exchange interval notation ("1m", "4h", ...).
func (t Timeframe) Interval() string {
	switch t {
	case TimeframeM1:
		return "1m"
	case TimeframeM5:
		return "5m"
	case TimeframeM15:
		return "15m"
	case TimeframeH1:
		return "1h"
	case TimeframeH4:
		return "4h"
	}
	return ""
}

// Duration returns the candle period length.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case TimeframeM1:
		return time.Minute
	case TimeframeM5:
		return 5 * time.Minute
	case TimeframeM15:
		return 15 * time.Minute
	case TimeframeH1:
		return time.Hour
	case TimeframeH4:
		return 4 * time.Hour
	}
	return 0
}

// Valid reports whether the timeframe is one of the supported periods.
func (t Timeframe) Valid() bool {
	return t.Duration() > 0
}
