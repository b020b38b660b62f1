package models

import (
	"fmt"
	"strings"
	"time"
)

// ReviewerState is the activity state of a user with reviewer privileges.
// Only active reviewers are eligible for matching.
type ReviewerState string

const (
	ReviewerActive    ReviewerState = "active"
	ReviewerInactive  ReviewerState = "inactive"
	ReviewerSuspended ReviewerState = "suspended"
	ReviewerPending   ReviewerState = "pending"
)

var reviewerStateLabels = map[ReviewerState]string{
	ReviewerActive:    "Active",
	ReviewerInactive:  "Inactive",
	ReviewerSuspended: "Suspended",
	ReviewerPending:   "Pending Approval",
}

func ParseReviewerState(raw string) (ReviewerState, error) {
	state := ReviewerState(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := reviewerStateLabels[state]; !ok {
		return "", fmt.Errorf("unknown reviewer state %q", raw)
	}
	return state, nil
}

func (s ReviewerState) Label() string {
	if label, ok := reviewerStateLabels[s]; ok {
		return label
	}
	return string(s)
}

type User struct {
	UserID    int    `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname string `gorm:"column:user_fname" json:"user_fname"`
	UserLname string `gorm:"column:user_lname" json:"user_lname"`
	Email     string `gorm:"column:email;unique" json:"email"`
	Password  string `gorm:"column:password" json:"-"`
	RoleID    int    `gorm:"column:role_id" json:"role_id"`
	TeamID    *int   `gorm:"column:team_id" json:"team_id,omitempty"`

	ReviewerState ReviewerState `gorm:"column:reviewer_state" json:"reviewer_state"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role      Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Team      *Team    `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Expertise []Domain `gorm:"many2many:user_expertise;foreignKey:UserID;joinForeignKey:user_id;References:DomainID;joinReferences:domain_id" json:"expertise,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Role IDs as seeded in the roles table.
const (
	RoleMember   = 1
	RoleReviewer = 2
	RoleAdmin    = 3
)

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

// HasExpertise reports whether the user declares expertise in the domain.
func (u *User) HasExpertise(domainID int) bool {
	for _, domain := range u.Expertise {
		if domain.DomainID == domainID {
			return true
		}
	}
	return false
}

// CanReview reports whether the user may currently receive assignments.
func (u *User) CanReview() bool {
	return u.ReviewerState == ReviewerActive && u.DeleteAt == nil
}
