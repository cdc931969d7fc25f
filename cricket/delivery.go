package cricket

// Dismissal kinds that are not credited to the bowler. Leaving this filter
// out silently inflates every wicket-taking statistic with run-outs.
var nonBowlerDismissals = map[string]bool{
	"run out":               true,
	"retired hurt":          true,
	"retired out":           true,
	"obstructing the field": true,
	"handled the ball":      true,
	"timed out":             true,
}

// Legal reports whether the delivery counts toward balls faced and balls
// bowled. Wides and no-balls do not.
func (d Delivery) Legal() bool {
	return d.WideRuns == 0 && d.NoBallRuns == 0
}

// CreditsBowler reports whether the wicket on this delivery (if any) counts
// toward the bowler's figures.
func (d Delivery) CreditsBowler() bool {
	return d.Wicket && !nonBowlerDismissals[d.WicketKind]
}

// BowlerRuns is the portion of the delivery's runs charged to the bowler:
// runs off the bat plus wides and no-balls. Byes, leg-byes and penalty runs
// are extras against the fielding side, not the bowler.
func (d Delivery) BowlerRuns() int {
	return d.BatterRuns + d.WideRuns + d.NoBallRuns
}

// ExtraRuns is the total of all extras on the delivery.
func (d Delivery) ExtraRuns() int {
	return d.WideRuns + d.NoBallRuns + d.ByeRuns + d.LegByeRuns + d.PenaltyRuns
}
