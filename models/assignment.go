package models

import (
	"fmt"
	"strings"
	"time"
)

// AssignmentStatus is the workflow state of a single review assignment.
// Individual assignments only ever carry pending/in_progress/completed;
// overdue exists solely as a derived rollup label on the item.
type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentOverdue    AssignmentStatus = "overdue"
)

var assignmentStatusRank = map[AssignmentStatus]int{
	AssignmentPending:    0,
	AssignmentInProgress: 1,
	AssignmentCompleted:  2,
}

var assignmentStatusLabels = map[AssignmentStatus]string{
	AssignmentPending:    "Awaiting Review",
	AssignmentInProgress: "Review In Progress",
	AssignmentCompleted:  "Review Completed",
	AssignmentOverdue:    "Review Overdue",
}

var assignmentStatusColors = map[AssignmentStatus]string{
	AssignmentPending:    "gray",
	AssignmentInProgress: "blue",
	AssignmentCompleted:  "green",
	AssignmentOverdue:    "red",
}

// ParseAssignmentStatus normalizes raw input to an AssignmentStatus. Overdue
// parses successfully (dashboards echo rollup values back) but is rejected
// as a transition target by the lifecycle manager.
func ParseAssignmentStatus(raw string) (AssignmentStatus, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	status := AssignmentStatus(normalized)
	if _, ok := assignmentStatusLabels[status]; !ok {
		return "", fmt.Errorf("unknown assignment status %q", raw)
	}
	return status, nil
}

// Settable reports whether the status may be stored on an assignment row.
func (s AssignmentStatus) Settable() bool {
	_, ok := assignmentStatusRank[s]
	return ok
}

// Rank orders the settable statuses for forward-only transition checks.
func (s AssignmentStatus) Rank() int {
	return assignmentStatusRank[s]
}

func (s AssignmentStatus) Label() string {
	if label, ok := assignmentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s AssignmentStatus) Color() string {
	if color, ok := assignmentStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// ReviewAssignment binds one reviewer to one submitted item. Exactly one of
// PaperID/ProposalID is set. DueAt is fixed at creation and shared by every
// assignment created in the same batch. Rows are never deleted once a
// decision exists for them.
type ReviewAssignment struct {
	AssignmentID int  `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ReviewerID   int  `gorm:"column:reviewer_id" json:"reviewer_id"`
	PaperID      *int `gorm:"column:paper_id" json:"paper_id,omitempty"`
	ProposalID   *int `gorm:"column:proposal_id" json:"proposal_id,omitempty"`

	Status      AssignmentStatus `gorm:"column:status" json:"status"`
	AssignedAt  time.Time        `gorm:"column:assigned_at" json:"assigned_at"`
	DueAt       time.Time        `gorm:"column:due_at" json:"due_at"`
	StartedAt   *time.Time       `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time       `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`

	// Relations
	Reviewer *User           `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Paper    *Paper          `gorm:"foreignKey:PaperID" json:"paper,omitempty"`
	Proposal *Proposal       `gorm:"foreignKey:ProposalID" json:"proposal,omitempty"`
	Decision *ReviewDecision `gorm:"foreignKey:AssignmentID" json:"decision,omitempty"`
}

func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// ItemKind reports which side of the paper/proposal exclusive-or is set.
func (a *ReviewAssignment) ItemKind() ItemKind {
	if a.ProposalID != nil {
		return ItemKindProposal
	}
	return ItemKindPaper
}

// ItemID returns the id of the referenced item.
func (a *ReviewAssignment) ItemID() int {
	if a.ProposalID != nil {
		return *a.ProposalID
	}
	if a.PaperID != nil {
		return *a.PaperID
	}
	return 0
}
