package models

import "time"

type Comment struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ProposalID string    `gorm:"not null;index" json:"proposal_id"`
	UserID     string    `gorm:"not null" json:"user_id"`
	Text       string    `gorm:"not null" json:"text"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
