package models

import (
	"fmt"
	"strings"
	"time"
)

// DecisionValue enumerates the verdict a reviewer can give on an item.
type DecisionValue string

const (
	DecisionAccept         DecisionValue = "accept"
	DecisionReject         DecisionValue = "reject"
	DecisionMinorRevisions DecisionValue = "minor_revisions"
	DecisionMajorRevisions DecisionValue = "major_revisions"
)

// decisionSeverity orders verdicts from mildest to harshest. Ties in the
// aggregation resolve toward the higher severity.
var decisionSeverity = map[DecisionValue]int{
	DecisionAccept:         0,
	DecisionMinorRevisions: 1,
	DecisionMajorRevisions: 2,
	DecisionReject:         3,
}

var decisionLabels = map[DecisionValue]string{
	DecisionAccept:         "Accepted",
	DecisionReject:         "Rejected",
	DecisionMinorRevisions: "Minor Revisions Required",
	DecisionMajorRevisions: "Major Revisions Required",
}

var decisionColors = map[DecisionValue]string{
	DecisionAccept:         "green",
	DecisionReject:         "red",
	DecisionMinorRevisions: "yellow",
	DecisionMajorRevisions: "orange",
}

// ParseDecisionValue normalizes raw input ("ACCEPT", " minor-revisions ") to
// a DecisionValue. All boundary case-normalization happens here so internal
// code only ever sees validated values.
func ParseDecisionValue(raw string) (DecisionValue, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	value := DecisionValue(normalized)
	if _, ok := decisionSeverity[value]; !ok {
		return "", fmt.Errorf("unknown decision value %q", raw)
	}
	return value, nil
}

func (v DecisionValue) Valid() bool {
	_, ok := decisionSeverity[v]
	return ok
}

// Severity returns the harshness rank of the verdict, higher is harsher.
func (v DecisionValue) Severity() int {
	return decisionSeverity[v]
}

func (v DecisionValue) Label() string {
	if label, ok := decisionLabels[v]; ok {
		return label
	}
	return string(v)
}

func (v DecisionValue) Color() string {
	if color, ok := decisionColors[v]; ok {
		return color
	}
	return "gray"
}

// ReviewDecision is one reviewer's verdict on one item. Exactly one of
// PaperID/ProposalID is set, mirroring the assignment it belongs to. A
// decision is written once and never updated.
type ReviewDecision struct {
	DecisionID   int  `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	AssignmentID int  `gorm:"column:assignment_id;unique" json:"assignment_id"`
	ReviewerID   int  `gorm:"column:reviewer_id" json:"reviewer_id"`
	PaperID      *int `gorm:"column:paper_id" json:"paper_id,omitempty"`
	ProposalID   *int `gorm:"column:proposal_id" json:"proposal_id,omitempty"`

	Verdict DecisionValue `gorm:"column:verdict" json:"verdict"`

	// Rubric sub-scores, each 0-10. OverallScore is their average, stored
	// denormalized for listing queries.
	ScoreNovelty      float64 `gorm:"column:score_novelty" json:"score_novelty"`
	ScoreRigor        float64 `gorm:"column:score_rigor" json:"score_rigor"`
	ScoreClarity      float64 `gorm:"column:score_clarity" json:"score_clarity"`
	ScoreSignificance float64 `gorm:"column:score_significance" json:"score_significance"`
	ScorePresentation float64 `gorm:"column:score_presentation" json:"score_presentation"`
	OverallScore      float64 `gorm:"column:overall_score" json:"overall_score"`

	Feedback         string `gorm:"column:feedback" json:"feedback"`
	AttachmentFileID *int   `gorm:"column:attachment_file_id" json:"attachment_file_id,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Attachment *FileUpload `gorm:"foreignKey:AttachmentFileID" json:"attachment,omitempty"`
}

func (ReviewDecision) TableName() string {
	return "review_decisions"
}

// ComputeOverall recalculates the overall score from the five sub-scores.
func (d *ReviewDecision) ComputeOverall() float64 {
	return (d.ScoreNovelty + d.ScoreRigor + d.ScoreClarity + d.ScoreSignificance + d.ScorePresentation) / 5
}
