// Package scoring implements the simplicity gate and the dimension
// aggregator that turn extracted signals into a ranked opportunity score.
package scoring

// Simplicity maps a candidate's core-function count to its simplicity
// score and the hard disqualification flag. One focused function is the
// ideal; at four or more the candidate is disqualified outright, which
// overrides every other score for ranking purposes.
//
// The mapping is pure and total: re-evaluating with a corrected function
// list clears a previous disqualification.
func Simplicity(coreFunctionCount int) (score float64, disqualified bool) {
	switch {
	case coreFunctionCount <= 1:
		return 100, false
	case coreFunctionCount == 2:
		return 85, false
	case coreFunctionCount == 3:
		return 70, false
	default:
		return 0, true
	}
}
