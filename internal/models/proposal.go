package models

import "time"

const (
	ActivityEvent  = "event"
	ActivitySejour = "sejour"
)

const (
	StatusProposed  = "proposed"
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
)

// Specifics holds the resolved outcome of a proposal. Fields stay empty
// until the matching decision dimension is confirmed.
type Specifics struct {
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
}

type Proposal struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Kind      string    `gorm:"not null;default:event" json:"kind"`
	Emoji     string    `json:"emoji"`
	CreatedBy string    `gorm:"not null;index" json:"created_by"`
	Status    string    `gorm:"not null;default:proposed" json:"status"`
	Specifics Specifics `gorm:"serializer:json" json:"specifics"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProposalUpdate is a partial update; nil fields are left untouched.
type ProposalUpdate struct {
	Title     *string
	Kind      *string
	Emoji     *string
	Status    *string
	Specifics *Specifics
}

func IsValidActivityKind(kind string) bool {
	return kind == ActivityEvent || kind == ActivitySejour
}
