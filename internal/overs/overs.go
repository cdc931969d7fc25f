// Package overs holds the over/ball arithmetic shared by the aggregation
// core and the store queries. Overs are 1-based throughout the dataset.
package overs

import "fmt"

// Phase is a named segment of a T20 innings.
type Phase int

const (
	Powerplay Phase = iota // overs 1-6
	Middle                 // overs 7-15
	Death                  // overs 16-20 (and any super-over spillage)
)

// Boundaries of the phases, as over numbers.
const (
	PowerplayLastOver = 6
	DeathFirstOver    = 16
)

func (p Phase) String() string {
	switch p {
	case Powerplay:
		return "powerplay"
	case Middle:
		return "middle"
	case Death:
		return "death"
	}
	return "unknown"
}

// Classify maps an over number to its phase.
func Classify(over int) Phase {
	switch {
	case over <= PowerplayLastOver:
		return Powerplay
	case over >= DeathFirstOver:
		return Death
	default:
		return Middle
	}
}

// Format renders a legal-ball count in cricket's overs.balls notation,
// e.g. 117 balls -> "19.3".
func Format(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

// Balls converts a whole number of overs to a legal-ball count.
func Balls(completeOvers int) int {
	return completeOvers * 6
}
