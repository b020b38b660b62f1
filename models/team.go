package models

import "time"

// Team is the research group that owns submitted items.
type Team struct {
	TeamID      int        `gorm:"primaryKey;column:team_id" json:"team_id"`
	TeamName    string     `gorm:"column:team_name" json:"team_name"`
	Description string     `gorm:"column:description" json:"description"`
	OwnerID     int        `gorm:"column:owner_id" json:"owner_id"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []User `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

// Domain is a research domain tag used for item classification and reviewer
// expertise declarations.
type Domain struct {
	DomainID   int        `gorm:"primaryKey;column:domain_id" json:"domain_id"`
	DomainName string     `gorm:"column:domain_name" json:"domain_name"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Domain) TableName() string {
	return "domains"
}
