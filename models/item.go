package models

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind discriminates the two structurally identical item tables.
type ItemKind string

const (
	ItemKindPaper    ItemKind = "paper"
	ItemKindProposal ItemKind = "proposal"
)

// ParseItemKind normalizes raw input ("Paper", "PROPOSALS") to an ItemKind.
func ParseItemKind(raw string) (ItemKind, error) {
	normalized := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s")
	kind := ItemKind(normalized)
	if kind != ItemKindPaper && kind != ItemKindProposal {
		return "", fmt.Errorf("unknown item kind %q", raw)
	}
	return kind, nil
}

// ItemStatus is the workflow state of a submitted paper or proposal.
type ItemStatus string

const (
	ItemPending     ItemStatus = "pending"
	ItemUnderReview ItemStatus = "under_review"
	ItemCompleted   ItemStatus = "completed"
)

var itemStatusLabels = map[ItemStatus]string{
	ItemPending:     "Awaiting Assignment",
	ItemUnderReview: "Under Review",
	ItemCompleted:   "Review Completed",
}

var itemStatusColors = map[ItemStatus]string{
	ItemPending:     "gray",
	ItemUnderReview: "blue",
	ItemCompleted:   "green",
}

func ParseItemStatus(raw string) (ItemStatus, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	status := ItemStatus(normalized)
	if _, ok := itemStatusLabels[status]; !ok {
		return "", fmt.Errorf("unknown item status %q", raw)
	}
	return status, nil
}

func (s ItemStatus) Label() string {
	if label, ok := itemStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s ItemStatus) Color() string {
	if color, ok := itemStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// Paper is a submitted paper undergoing review.
type Paper struct {
	PaperID     int    `gorm:"primaryKey;column:paper_id" json:"paper_id"`
	Title       string `gorm:"column:title" json:"title"`
	Abstract    string `gorm:"column:abstract" json:"abstract"`
	DomainID    int    `gorm:"column:domain_id" json:"domain_id"`
	TeamID      *int   `gorm:"column:team_id" json:"team_id,omitempty"`
	SubmitterID int    `gorm:"column:submitter_id" json:"submitter_id"`

	Status        ItemStatus     `gorm:"column:status" json:"status"`
	FinalDecision *DecisionValue `gorm:"column:final_decision" json:"final_decision,omitempty"`
	DecidedAt     *time.Time     `gorm:"column:decided_at" json:"decided_at,omitempty"`

	FileID      *int       `gorm:"column:file_id" json:"file_id,omitempty"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Domain    *Domain     `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Team      *Team       `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Submitter *User       `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	File      *FileUpload `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}

// Proposal is a submitted proposal undergoing review. Structurally identical
// to Paper; the two are kept as separate tables.
type Proposal struct {
	ProposalID  int    `gorm:"primaryKey;column:proposal_id" json:"proposal_id"`
	Title       string `gorm:"column:title" json:"title"`
	Abstract    string `gorm:"column:abstract" json:"abstract"`
	DomainID    int    `gorm:"column:domain_id" json:"domain_id"`
	TeamID      *int   `gorm:"column:team_id" json:"team_id,omitempty"`
	SubmitterID int    `gorm:"column:submitter_id" json:"submitter_id"`

	Status        ItemStatus     `gorm:"column:status" json:"status"`
	FinalDecision *DecisionValue `gorm:"column:final_decision" json:"final_decision,omitempty"`
	DecidedAt     *time.Time     `gorm:"column:decided_at" json:"decided_at,omitempty"`

	FileID      *int       `gorm:"column:file_id" json:"file_id,omitempty"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Domain    *Domain     `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Team      *Team       `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Submitter *User       `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	File      *FileUpload `gorm:"foreignKey:FileID" json:"file,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// SubmittedItem is the kind-neutral view of a paper or proposal consumed by
// the review engine. It is assembled from a row, never stored itself.
type SubmittedItem struct {
	Kind          ItemKind       `json:"kind"`
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	DomainID      int            `json:"domain_id"`
	TeamID        *int           `json:"team_id,omitempty"`
	SubmitterID   int            `json:"submitter_id"`
	Status        ItemStatus     `json:"status"`
	FinalDecision *DecisionValue `json:"final_decision,omitempty"`
	DecidedAt     *time.Time     `json:"decided_at,omitempty"`
}

func (p *Paper) Item() SubmittedItem {
	return SubmittedItem{
		Kind:          ItemKindPaper,
		ID:            p.PaperID,
		Title:         p.Title,
		DomainID:      p.DomainID,
		TeamID:        p.TeamID,
		SubmitterID:   p.SubmitterID,
		Status:        p.Status,
		FinalDecision: p.FinalDecision,
		DecidedAt:     p.DecidedAt,
	}
}

func (p *Proposal) Item() SubmittedItem {
	return SubmittedItem{
		Kind:          ItemKindProposal,
		ID:            p.ProposalID,
		Title:         p.Title,
		DomainID:      p.DomainID,
		TeamID:        p.TeamID,
		SubmitterID:   p.SubmitterID,
		Status:        p.Status,
		FinalDecision: p.FinalDecision,
		DecidedAt:     p.DecidedAt,
	}
}
