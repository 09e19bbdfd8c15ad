// Package classifier assigns review priorities to land-cover transitions.
// The priority decides which records BKD staff inspect first.
package classifier

import "padmon/assessment"

type Priority string

const (
	Low      Priority = "LOW"
	Medium   Priority = "MEDIUM"
	High     Priority = "HIGH"
	Critical Priority = "CRITICAL"
)

var ranks = map[Priority]int{
	Low:      0,
	Medium:   1,
	High:     2,
	Critical: 3,
}

// Rank orders priorities for sorting and monotonicity checks.
func Rank(p Priority) int {
	return ranks[p]
}

// Classify tags a before/after transition with its changed area.
//
// Transitions that do not end in the taxable built class, and reversals out
// of it, are LOW. Water turning into buildings is CRITICAL regardless of
// area (possible illegal reclamation). Any other transition into built is
// HIGH when the area strictly exceeds the significant-area threshold and
// MEDIUM otherwise; an area exactly at the threshold stays MEDIUM.
func Classify(fromClass, toClass string, areaM2 float64, a *assessment.Assessment) Priority {
	if fromClass == toClass || toClass != assessment.ClassBuilt {
		return Low
	}
	if fromClass == assessment.ClassWater {
		return Critical
	}
	if areaM2 > a.Thresholds.SignificantChangeAreaM2 {
		return High
	}
	return Medium
}
