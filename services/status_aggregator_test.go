package services

import (
	"testing"
	"time"

	"review-portal-api/models"

	"github.com/stretchr/testify/assert"
)

func rollupAssignment(status models.AssignmentStatus, due time.Time, completedAt *time.Time) models.ReviewAssignment {
	return models.ReviewAssignment{
		Status:      status,
		DueAt:       due,
		CompletedAt: completedAt,
	}
}

func TestAggregateAssignmentStatus(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	beforeDue := due.Add(-48 * time.Hour)
	afterDue := due.Add(48 * time.Hour)
	onTime := due.Add(-time.Hour)
	late := due.Add(6 * time.Hour)

	cases := []struct {
		name        string
		assignments []models.ReviewAssignment
		now         time.Time
		want        models.AssignmentStatus
	}{
		{
			name: "no assignments means pending",
			now:  beforeDue,
			want: models.AssignmentPending,
		},
		{
			name: "any untouched assignment keeps the item pending before the deadline",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentInProgress, due, nil),
				rollupAssignment(models.AssignmentInProgress, due, nil),
				rollupAssignment(models.AssignmentPending, due, nil),
			},
			now:  beforeDue,
			want: models.AssignmentPending,
		},
		{
			name: "all started means in progress before the deadline",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentInProgress, due, nil),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentInProgress, due, nil),
			},
			now:  beforeDue,
			want: models.AssignmentInProgress,
		},
		{
			name: "full on-time completion is completed regardless of clock",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
			},
			now:  afterDue,
			want: models.AssignmentCompleted,
		},
		{
			name: "majority on-time completion counts as completed after the deadline",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentPending, due, nil),
			},
			now:  afterDue,
			want: models.AssignmentCompleted,
		},
		{
			name: "minority completion after the deadline is overdue",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentPending, due, nil),
				rollupAssignment(models.AssignmentPending, due, nil),
				rollupAssignment(models.AssignmentInProgress, due, nil),
			},
			now:  afterDue,
			want: models.AssignmentOverdue,
		},
		{
			name: "exactly half on time is not a majority",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
				rollupAssignment(models.AssignmentCompleted, due, &late),
			},
			now:  afterDue,
			want: models.AssignmentOverdue,
		},
		{
			name: "late completions do not count toward on-time totals",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, &late),
				rollupAssignment(models.AssignmentCompleted, due, &late),
				rollupAssignment(models.AssignmentCompleted, due, &late),
			},
			now:  afterDue,
			want: models.AssignmentOverdue,
		},
		{
			name: "rollup uses the latest due date across drifted rows",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentPending, due.Add(-72*time.Hour), nil),
				rollupAssignment(models.AssignmentInProgress, due, nil),
			},
			now:  beforeDue,
			want: models.AssignmentPending,
		},
		{
			name: "completed rows with missing timestamps fall back to in progress before the deadline",
			assignments: []models.ReviewAssignment{
				rollupAssignment(models.AssignmentCompleted, due, nil),
				rollupAssignment(models.AssignmentCompleted, due, &onTime),
			},
			now:  beforeDue,
			want: models.AssignmentInProgress,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateAssignmentStatus(tc.assignments, tc.now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAggregateAssignmentStatusDueBoundary(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assignments := []models.ReviewAssignment{
		rollupAssignment(models.AssignmentPending, due, nil),
		rollupAssignment(models.AssignmentPending, due, nil),
	}

	// The instant of the deadline still belongs to the pre-due window.
	assert.Equal(t, models.AssignmentPending, AggregateAssignmentStatus(assignments, due))
	assert.Equal(t, models.AssignmentOverdue, AggregateAssignmentStatus(assignments, due.Add(time.Second)))
}
