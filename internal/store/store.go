// Package store defines the repository contract the rest of the application
// is written against. Two adapters implement it: gormstore (relational,
// sqlite) and redisstore (key-value). Core services never touch either
// backend directly.
package store

import (
	"errors"

	"github.com/pverlaine/convene/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	UserStore
	ProposalStore
	AvailabilityStore
	DecisionStore
	CommentStore
}

type UserStore interface {
	CreateUser(user *models.User) error
	FindUserByID(userID string) (models.User, error)
	FindUserByName(name string) (models.User, error)
	ListUsers() ([]models.User, error)
	CountUsers() (int64, error)
}

type ProposalStore interface {
	CreateProposal(proposal *models.Proposal) error
	FindProposalByID(proposalID string) (models.Proposal, error)
	ListProposals() ([]models.Proposal, error)
	UpdateProposal(proposalID string, update models.ProposalUpdate) error

	// DeleteProposal removes the proposal and every dependent availability,
	// decision config, option, vote, confirmation and comment atomically.
	DeleteProposal(proposalID string) error
}

type AvailabilityStore interface {
	FindAvailability(userID string, proposalID string) (models.Availability, bool, error)
	ListProposalAvailabilities(proposalID string) ([]models.Availability, error)
	ListUserAvailabilities(userID string) ([]models.Availability, error)

	// UpsertAvailability is keyed by (user, proposal); last write wins.
	UpsertAvailability(availability *models.Availability) error
	DeleteAvailability(userID string, proposalID string) error
}

type DecisionStore interface {
	FindDecisionConfig(proposalID string, dimension string) (models.DecisionConfig, bool, error)

	// UpsertDecisionConfig is keyed by (proposal, dimension); the store
	// guarantees at most one config per pair.
	UpsertDecisionConfig(config *models.DecisionConfig) error

	ListDecisionOptions(proposalID string, dimension string) ([]models.DecisionOption, error)
	FindDecisionOption(optionID string) (models.DecisionOption, error)
	CreateDecisionOption(option *models.DecisionOption) error

	// DeleteDecisionOption removes the option and strips its id from every
	// vote's ranked/selected lists and every confirmation's option id list.
	DeleteDecisionOption(optionID string) error

	ListDecisionVotes(proposalID string, dimension string) ([]models.DecisionVote, error)

	// UpsertDecisionVote is keyed by (user, proposal, dimension); last write wins.
	UpsertDecisionVote(vote *models.DecisionVote) error
	DeleteDecisionVote(userID string, proposalID string, dimension string) error

	ListDecisionConfirmations(proposalID string, dimension string) ([]models.DecisionConfirmation, error)
	AppendDecisionConfirmation(confirmation *models.DecisionConfirmation) error
}

type CommentStore interface {
	CreateComment(comment *models.Comment) error
	ListProposalComments(proposalID string) ([]models.Comment, error)
	DeleteComment(commentID string) error
	FindCommentByID(commentID string) (models.Comment, error)
}
