package services

import "review-portal-api/models"

// AggregateDecisions reduces the reviewer verdicts for one item to a single
// final verdict. The second return is false when no decisions exist; the
// caller must not finalize in that case.
//
// The scheme is a severity-biased majority, applied in order with each rule
// short-circuiting:
//  1. rejection wins when it is strictly the single largest bloc;
//  2. acceptance needs a strict majority over all revision requests combined;
//  3. revisions carry when they hold at least half the votes (rounded up),
//     preferring the harsher tier on ties;
//  4. any remaining ambiguity resolves toward the harshest of the verdicts
//     tied for the highest count.
func AggregateDecisions(values []models.DecisionValue) (models.DecisionValue, bool) {
	if len(values) == 0 {
		return "", false
	}

	counts := make(map[models.DecisionValue]int, 4)
	for _, value := range values {
		counts[value]++
	}

	total := len(values)
	accept := counts[models.DecisionAccept]
	reject := counts[models.DecisionReject]
	minor := counts[models.DecisionMinorRevisions]
	major := counts[models.DecisionMajorRevisions]

	if reject > accept && reject > minor && reject > major {
		return models.DecisionReject, true
	}

	if accept > minor+major {
		return models.DecisionAccept, true
	}

	if revisions := minor + major; revisions >= (total+1)/2 {
		if major >= minor {
			return models.DecisionMajorRevisions, true
		}
		return models.DecisionMinorRevisions, true
	}

	// Residual tie: the highest count wins, Severity breaking ties toward the
	// harsher verdict.
	var result models.DecisionValue
	highest := 0
	for value, count := range counts {
		if count > highest || (count == highest && value.Severity() > result.Severity()) {
			result = value
			highest = count
		}
	}
	return result, true
}
