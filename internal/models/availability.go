package models

import "time"

// Availability records the set of ISO dates (2006-01-02) a user marked for a
// proposal. At most one record exists per (user, proposal) pair; a record with
// an empty date set is equivalent to no availability and is deleted on write.
type Availability struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"not null;uniqueIndex:uidx_user_proposal" json:"user_id"`
	ProposalID string    `gorm:"not null;uniqueIndex:uidx_user_proposal;index" json:"proposal_id"`
	Dates      []string  `gorm:"serializer:json" json:"dates"`
	TimeSlots  []string  `gorm:"serializer:json" json:"time_slots,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
