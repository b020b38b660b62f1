package services

import (
	"sort"

	"review-portal-api/models"

	"gorm.io/gorm"
)

const (
	// matcherMaxWorkload is the open-assignment count at which the workload
	// component of the score bottoms out.
	matcherMaxWorkload = 5

	domainWeight   = 0.7
	workloadWeight = 0.3

	autoMatchLimit = 3
)

// RankedReviewer pairs a candidate reviewer with the fit score used for
// ordering.
type RankedReviewer struct {
	Reviewer        models.User `json:"reviewer"`
	DomainMatch     bool        `json:"domain_match"`
	OpenAssignments int         `json:"open_assignments"`
	Score           float64     `json:"score"`
}

// ReviewerMatcher scores candidate reviewers for an item by domain fit and
// current workload. Read-only; stale workload counts only affect ranking.
type ReviewerMatcher struct {
	db *gorm.DB
}

func NewReviewerMatcher(db *gorm.DB) *ReviewerMatcher {
	return &ReviewerMatcher{db: db}
}

// CandidateReviewers returns the general availability listing for an item:
// active reviewers excluding the item's submitter, ranked by domain match
// first and lighter workload second.
func (m *ReviewerMatcher) CandidateReviewers(domainID, excludeUserID int) ([]RankedReviewer, error) {
	reviewers, openCounts, err := m.loadPool()
	if err != nil {
		return nil, err
	}
	candidates := buildCandidates(reviewers, openCounts, domainID, excludeUserID, false)
	rankCandidates(candidates)
	return candidates, nil
}

// AutoMatch returns the top candidates whose declared expertise covers the
// item's domain, ranked by combined score. The second return is false when no
// domain-matching active reviewer exists; callers must treat that as "no
// auto-match available", not an error.
func (m *ReviewerMatcher) AutoMatch(domainID, excludeUserID int) ([]RankedReviewer, bool, error) {
	reviewers, openCounts, err := m.loadPool()
	if err != nil {
		return nil, false, err
	}
	candidates, matched := selectAutoMatch(buildCandidates(reviewers, openCounts, domainID, excludeUserID, true))
	return candidates, matched, nil
}

// selectAutoMatch orders domain-matching candidates by combined score and
// keeps the top recommendations. The flag is false when no candidate exists.
func selectAutoMatch(candidates []RankedReviewer) ([]RankedReviewer, bool) {
	if len(candidates) == 0 {
		return []RankedReviewer{}, false
	}
	rankByScore(candidates)
	if len(candidates) > autoMatchLimit {
		candidates = candidates[:autoMatchLimit]
	}
	return candidates, true
}

func (m *ReviewerMatcher) loadPool() ([]models.User, map[int]int, error) {
	var reviewers []models.User
	if err := m.db.Preload("Expertise").
		Where("role_id IN ? AND reviewer_state = ? AND delete_at IS NULL",
			[]int{models.RoleReviewer, models.RoleAdmin}, models.ReviewerActive).
		Find(&reviewers).Error; err != nil {
		return nil, nil, err
	}

	type openRow struct {
		ReviewerID int
		Total      int
	}
	var rows []openRow
	if err := m.db.Model(&models.ReviewAssignment{}).
		Select("reviewer_id, COUNT(*) AS total").
		Where("status <> ?", models.AssignmentCompleted).
		Group("reviewer_id").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	openCounts := make(map[int]int, len(rows))
	for _, row := range rows {
		openCounts[row.ReviewerID] = row.Total
	}
	return reviewers, openCounts, nil
}

// buildCandidates filters and scores the pool. Inactive and suspended
// reviewers never enter the pool query, so filtering here covers the
// submitter exclusion and, when requireDomain is set, the expertise filter.
func buildCandidates(reviewers []models.User, openCounts map[int]int, domainID, excludeUserID int, requireDomain bool) []RankedReviewer {
	candidates := make([]RankedReviewer, 0, len(reviewers))
	for _, reviewer := range reviewers {
		if !reviewer.CanReview() || reviewer.UserID == excludeUserID {
			continue
		}
		domainMatch := reviewer.HasExpertise(domainID)
		if requireDomain && !domainMatch {
			continue
		}
		open := openCounts[reviewer.UserID]
		candidates = append(candidates, RankedReviewer{
			Reviewer:        reviewer,
			DomainMatch:     domainMatch,
			OpenAssignments: open,
			Score:           fitScore(domainMatch, open),
		})
	}
	return candidates
}

func fitScore(domainMatch bool, openAssignments int) float64 {
	domainScore := 0.0
	if domainMatch {
		domainScore = 1.0
	}
	workloadScore := float64(matcherMaxWorkload-openAssignments) / matcherMaxWorkload
	if workloadScore < 0 {
		workloadScore = 0
	}
	return domainWeight*domainScore + workloadWeight*workloadScore
}

// rankCandidates orders the general listing: domain matches first, then
// lighter workload, with reviewer id as a stable final key.
func rankCandidates(candidates []RankedReviewer) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DomainMatch != candidates[j].DomainMatch {
			return candidates[i].DomainMatch
		}
		if candidates[i].OpenAssignments != candidates[j].OpenAssignments {
			return candidates[i].OpenAssignments < candidates[j].OpenAssignments
		}
		return candidates[i].Reviewer.UserID < candidates[j].Reviewer.UserID
	})
}

// rankByScore orders auto-match candidates by combined score descending.
func rankByScore(candidates []RankedReviewer) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Reviewer.UserID < candidates[j].Reviewer.UserID
	})
}
