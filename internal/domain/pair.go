// Package domain defines the core data structures shared by the analysis
// pipeline, the market data feed and the publishing layer.
package domain

import "fmt"

// Pair instrument pair.
type Pair struct {
	// From base symbol.
	From string
	// To quote symbol.
	To string
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
