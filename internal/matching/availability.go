// Package matching scores and ranks consultants against tenders.
package matching

import (
	"math"

	"github.com/jonathan/richat-staffing/internal/types"
)

// Availability scoring constants
const (
	maxGapDays      = 30
	gapScoreCeiling = 30.0
	maxFlexBonus    = 10.0
	highCoverage    = 80.0
)

// DateScore scores how well a consultant's availability covers a tender
// window, in [0,100]. Both windows are inclusive; a missing date on either
// side scores 0.
func DateScore(consultant, tender types.Window) float64 {
	if !consultant.Complete() || !tender.Complete() {
		return 0
	}
	cs, ce := *consultant.Start, *consultant.End
	ts, te := *tender.Start, *tender.End
	if ce.Before(cs) || te.Before(ts) {
		return 0
	}

	// disjoint windows earn a little credit when the gap is small
	if ce.Before(ts) || cs.After(te) {
		gap := ce.DaysUntil(ts)
		if cs.After(te) {
			gap = te.DaysUntil(cs)
		}
		if gap > maxGapDays {
			return 0
		}
		return math.Max(0, gapScoreCeiling*(1-float64(gap)/maxGapDays))
	}

	if !cs.After(ts) && !ce.Before(te) {
		buffer := float64(cs.DaysUntil(ts) + te.DaysUntil(ce))
		flex := math.Min(maxFlexBonus, buffer/10)
		return math.Min(100, 100+flex)
	}

	overlapStart, overlapEnd := ts, te
	if cs.After(ts) {
		overlapStart = cs
	}
	if ce.Before(te) {
		overlapEnd = ce
	}
	overlap := float64(overlapStart.DaysUntil(overlapEnd) + 1)
	coverage := overlap / float64(tender.Days()) * 100

	var score float64
	if coverage >= highCoverage {
		score = 90 + (coverage-highCoverage)/2
	} else {
		score = coverage * (0.8 + 0.2*coverage/100)
	}
	return math.Min(100, score)
}
