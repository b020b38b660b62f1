package services

import (
	"testing"
	"time"

	"review-portal-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherReviewer(id int, state models.ReviewerState, domains ...int) models.User {
	expertise := make([]models.Domain, 0, len(domains))
	for _, domainID := range domains {
		expertise = append(expertise, models.Domain{DomainID: domainID})
	}
	return models.User{
		UserID:        id,
		RoleID:        models.RoleReviewer,
		ReviewerState: state,
		Expertise:     expertise,
	}
}

func TestFitScore(t *testing.T) {
	assert.InDelta(t, 1.0, fitScore(true, 0), 1e-9)
	assert.InDelta(t, 0.3, fitScore(false, 0), 1e-9)
	assert.InDelta(t, 0.7, fitScore(true, matcherMaxWorkload), 1e-9)
	assert.InDelta(t, 0.0, fitScore(false, matcherMaxWorkload), 1e-9)

	// Workload beyond the cap clamps rather than going negative.
	assert.InDelta(t, 0.7, fitScore(true, matcherMaxWorkload+3), 1e-9)

	assert.InDelta(t, 0.7+0.3*0.6, fitScore(true, 2), 1e-9)
}

func TestBuildCandidatesFilters(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 20),
		matcherReviewer(3, models.ReviewerSuspended, 10),
		matcherReviewer(4, models.ReviewerActive, 10), // submitter
	}
	deleted := matcherReviewer(5, models.ReviewerActive, 10)
	now := time.Now()
	deleted.DeleteAt = &now
	reviewers = append(reviewers, deleted)

	candidates := buildCandidates(reviewers, map[int]int{}, 10, 4, false)
	require.Len(t, candidates, 2)
	assert.Equal(t, 1, candidates[0].Reviewer.UserID)
	assert.True(t, candidates[0].DomainMatch)
	assert.Equal(t, 2, candidates[1].Reviewer.UserID)
	assert.False(t, candidates[1].DomainMatch)
}

func TestBuildCandidatesRequireDomain(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 20),
		matcherReviewer(3, models.ReviewerActive),
	}

	candidates := buildCandidates(reviewers, map[int]int{}, 10, 0, true)
	require.Len(t, candidates, 1)
	assert.Equal(t, 1, candidates[0].Reviewer.UserID)

	none := buildCandidates(reviewers, map[int]int{}, 99, 0, true)
	assert.Empty(t, none)
}

func TestBuildCandidatesWithoutDomainFilter(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 20),
		matcherReviewer(3, models.ReviewerActive),
	}

	// Domain 0 is the unfiltered listing: everyone is a candidate and nobody
	// counts as a domain match, so ranking falls back to workload.
	candidates := buildCandidates(reviewers, map[int]int{1: 2}, 0, 0, false)
	require.Len(t, candidates, 3)
	for _, candidate := range candidates {
		assert.False(t, candidate.DomainMatch)
	}

	rankCandidates(candidates)
	assert.Equal(t, 2, candidates[0].Reviewer.UserID)
	assert.Equal(t, 3, candidates[1].Reviewer.UserID)
	assert.Equal(t, 1, candidates[2].Reviewer.UserID)
}

func TestRankCandidatesOrdering(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive),     // no match, idle
		matcherReviewer(2, models.ReviewerActive, 10), // match, busy
		matcherReviewer(3, models.ReviewerActive, 10), // match, idle
		matcherReviewer(4, models.ReviewerActive, 10), // match, idle, higher id
	}
	openCounts := map[int]int{2: 4}

	candidates := buildCandidates(reviewers, openCounts, 10, 0, false)
	rankCandidates(candidates)

	require.Len(t, candidates, 4)
	// Domain matches first, lighter workload next, id as the stable key.
	assert.Equal(t, 3, candidates[0].Reviewer.UserID)
	assert.Equal(t, 4, candidates[1].Reviewer.UserID)
	assert.Equal(t, 2, candidates[2].Reviewer.UserID)
	assert.Equal(t, 1, candidates[3].Reviewer.UserID)
}

func TestRankByScorePrefersLighterWorkload(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 10),
		matcherReviewer(3, models.ReviewerActive, 10),
	}
	openCounts := map[int]int{1: 5, 2: 1, 3: 3}

	candidates := buildCandidates(reviewers, openCounts, 10, 0, true)
	rankByScore(candidates)

	require.Len(t, candidates, 3)
	assert.Equal(t, 2, candidates[0].Reviewer.UserID)
	assert.Equal(t, 3, candidates[1].Reviewer.UserID)
	assert.Equal(t, 1, candidates[2].Reviewer.UserID)
	assert.Greater(t, candidates[0].Score, candidates[1].Score)
	assert.Greater(t, candidates[1].Score, candidates[2].Score)
}

func TestSelectAutoMatchTruncatesToTopThree(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 10),
		matcherReviewer(3, models.ReviewerActive, 10),
		matcherReviewer(4, models.ReviewerActive, 10),
		matcherReviewer(5, models.ReviewerActive, 10),
	}
	openCounts := map[int]int{1: 4, 3: 2, 4: 1, 5: 3}

	candidates, matched := selectAutoMatch(buildCandidates(reviewers, openCounts, 10, 0, true))
	require.True(t, matched)
	require.Len(t, candidates, autoMatchLimit)

	// The three lightest workloads, in score order.
	assert.Equal(t, 2, candidates[0].Reviewer.UserID)
	assert.Equal(t, 4, candidates[1].Reviewer.UserID)
	assert.Equal(t, 3, candidates[2].Reviewer.UserID)
}

func TestSelectAutoMatchReportsNoDomainMatch(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(1, models.ReviewerActive, 20),
		matcherReviewer(2, models.ReviewerActive),
	}

	candidates, matched := selectAutoMatch(buildCandidates(reviewers, map[int]int{}, 10, 0, true))
	assert.False(t, matched)
	require.NotNil(t, candidates)
	assert.Empty(t, candidates)
}

func TestRankByScoreTieBreaksByID(t *testing.T) {
	reviewers := []models.User{
		matcherReviewer(7, models.ReviewerActive, 10),
		matcherReviewer(2, models.ReviewerActive, 10),
	}

	candidates := buildCandidates(reviewers, map[int]int{}, 10, 0, true)
	rankByScore(candidates)

	require.Len(t, candidates, 2)
	assert.Equal(t, 2, candidates[0].Reviewer.UserID)
	assert.Equal(t, 7, candidates[1].Reviewer.UserID)
}
