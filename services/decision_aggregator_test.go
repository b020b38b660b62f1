package services

import (
	"sort"
	"testing"

	"review-portal-api/models"

	"pgregory.net/rapid"
)

func TestAggregateDecisionsTable(t *testing.T) {
	accept := models.DecisionAccept
	reject := models.DecisionReject
	minor := models.DecisionMinorRevisions
	major := models.DecisionMajorRevisions

	cases := []struct {
		name   string
		input  []models.DecisionValue
		want   models.DecisionValue
		wantOK bool
	}{
		{
			name:   "empty input has no result",
			input:  nil,
			wantOK: false,
		},
		{
			name:   "reject as single largest bloc wins",
			input:  []models.DecisionValue{reject, reject, accept},
			want:   reject,
			wantOK: true,
		},
		{
			name:   "reject must strictly exceed every other value",
			input:  []models.DecisionValue{reject, reject, minor, minor},
			want:   minor,
			wantOK: true,
		},
		{
			name:   "accept with strict majority over revisions",
			input:  []models.DecisionValue{accept, accept, accept, minor},
			want:   accept,
			wantOK: true,
		},
		{
			name:   "revisions at half prefer the larger tier",
			input:  []models.DecisionValue{minor, minor, major, accept},
			want:   minor,
			wantOK: true,
		},
		{
			name:   "revision tie breaks toward major",
			input:  []models.DecisionValue{minor, major, accept, reject},
			want:   major,
			wantOK: true,
		},
		{
			name:   "single revision vote over half still carries",
			input:  []models.DecisionValue{reject, minor},
			want:   minor,
			wantOK: true,
		},
		{
			name:   "residual tie resolves to the harsher outcome",
			input:  []models.DecisionValue{reject, reject, accept, accept, minor, minor},
			want:   reject,
			wantOK: true,
		},
		{
			name:   "residual tie between accept and major resolves to major",
			input:  []models.DecisionValue{accept, accept, major, major, reject},
			want:   major,
			wantOK: true,
		},
		{
			name:   "unanimous accept",
			input:  []models.DecisionValue{accept, accept, accept},
			want:   accept,
			wantOK: true,
		},
		{
			name:   "single reject",
			input:  []models.DecisionValue{reject},
			want:   reject,
			wantOK: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AggregateDecisions(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("AggregateDecisions ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("AggregateDecisions = %s, want %s", got, tc.want)
			}
		})
	}
}

// The aggregation is a pure function of the multiset of verdicts: any
// permutation of the same votes must produce the same result, and the result
// is always one of the submitted verdicts.
func TestAggregateDecisionsOrderIndependence(t *testing.T) {
	verdicts := []models.DecisionValue{
		models.DecisionAccept,
		models.DecisionReject,
		models.DecisionMinorRevisions,
		models.DecisionMajorRevisions,
	}

	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.SampledFrom(verdicts), 1, 12).Draw(rt, "values")

		got, ok := AggregateDecisions(values)
		if !ok {
			rt.Fatalf("non-empty input produced no result")
		}

		permuted := make([]models.DecisionValue, len(values))
		copy(permuted, values)
		sort.Slice(permuted, func(i, j int) bool {
			return permuted[i].Severity() < permuted[j].Severity()
		})

		fromPermuted, ok := AggregateDecisions(permuted)
		if !ok {
			rt.Fatalf("permuted input produced no result")
		}
		if fromPermuted != got {
			rt.Fatalf("order dependence: %s vs %s for %v", got, fromPermuted, values)
		}

		found := false
		for _, value := range values {
			if value == got {
				found = true
				break
			}
		}
		if !found {
			rt.Fatalf("result %s is not among the submitted verdicts %v", got, values)
		}
	})
}
