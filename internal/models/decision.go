package models

import "time"

const (
	DimensionTime        = "time"
	DimensionPlace       = "place"
	DimensionRequirement = "requirement"
)

const (
	ModeSingle = "single"
	ModeMulti  = "multi"
	ModeRanked = "ranked"
)

const (
	DecisionOpen = "open"
	// DecisionPendingConfirmation is declared for forward compatibility;
	// no code path transitions into it.
	DecisionPendingConfirmation = "pending_confirmation"
	DecisionConfirmed           = "confirmed"
)

// Metadata keys carried by synthesized overlap-window options.
const (
	OptionMetaWindowKey        = "windowKey"
	OptionMetaStartDate        = "startDate"
	OptionMetaEndDate          = "endDate"
	OptionMetaNights           = "nights"
	OptionMetaParticipantCount = "participantCount"
	OptionMetaParticipantIDs   = "participantUserIds"
	OptionMetaSource           = "source"
)

// OptionSourceOverlap tags options generated by the overlap window resolver.
const OptionSourceOverlap = "sejour-overlap"

// DecisionConfig pins the voting mode and status of one proposal dimension.
// At most one config exists per (proposal, dimension) pair.
type DecisionConfig struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	ProposalID string    `gorm:"not null;uniqueIndex:uidx_proposal_dimension;index" json:"proposal_id"`
	Dimension  string    `gorm:"not null;uniqueIndex:uidx_proposal_dimension" json:"dimension"`
	Mode       string    `gorm:"not null" json:"mode"`
	Status     string    `gorm:"not null;default:open" json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DecisionOption struct {
	ID         string            `gorm:"primaryKey" json:"id"`
	ProposalID string            `gorm:"not null;index:idx_option_proposal_dimension" json:"proposal_id"`
	Dimension  string            `gorm:"not null;index:idx_option_proposal_dimension" json:"dimension"`
	Label      string            `gorm:"not null" json:"label"`
	CreatedBy  string            `gorm:"not null" json:"created_by"`
	Metadata   map[string]string `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null" json:"created_at"`
}

// DecisionVote holds one user's vote on a proposal dimension. The dimension's
// current mode decides which list is read: RankedOptionIDs for single and
// ranked modes, SelectedOptionIDs for multi mode. Writes populate exactly one
// list and clear the other; at most one vote exists per (user, proposal,
// dimension), last write wins.
type DecisionVote struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	ProposalID        string    `gorm:"not null;uniqueIndex:uidx_vote_identity;index:idx_vote_proposal_dimension" json:"proposal_id"`
	Dimension         string    `gorm:"not null;uniqueIndex:uidx_vote_identity;index:idx_vote_proposal_dimension" json:"dimension"`
	UserID            string    `gorm:"not null;uniqueIndex:uidx_vote_identity" json:"user_id"`
	RankedOptionIDs   []string  `gorm:"serializer:json" json:"ranked_option_ids,omitempty"`
	SelectedOptionIDs []string  `gorm:"serializer:json" json:"selected_option_ids,omitempty"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// DecisionConfirmation is an append-only record of a confirmed selection.
// The latest record by confirmation time is authoritative.
type DecisionConfirmation struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	ProposalID  string    `gorm:"not null;index:idx_confirmation_proposal_dimension" json:"proposal_id"`
	Dimension   string    `gorm:"not null;index:idx_confirmation_proposal_dimension" json:"dimension"`
	OptionIDs   []string  `gorm:"serializer:json" json:"option_ids"`
	ConfirmedBy string    `gorm:"not null" json:"confirmed_by"`
	Note        string    `json:"note,omitempty"`
	ConfirmedAt time.Time `gorm:"not null" json:"confirmed_at"`
}

func IsValidDimension(dimension string) bool {
	switch dimension {
	case DimensionTime, DimensionPlace, DimensionRequirement:
		return true
	}
	return false
}

func IsValidVotingMode(mode string) bool {
	switch mode {
	case ModeSingle, ModeMulti, ModeRanked:
		return true
	}
	return false
}

// DefaultVotingMode returns the mode a dimension starts with: requirements
// collect a set of constraints, every other dimension picks one winner.
func DefaultVotingMode(dimension string) string {
	if dimension == DimensionRequirement {
		return ModeMulti
	}
	return ModeSingle
}
