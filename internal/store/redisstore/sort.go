package redisstore

import (
	"sort"

	"github.com/pverlaine/convene/internal/models"
)

// Redis sets are unordered; restore the deterministic orderings the
// relational adapter produces with ORDER BY.

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
}

func sortProposals(proposals []models.Proposal) {
	sort.Slice(proposals, func(i, j int) bool {
		if !proposals[i].CreatedAt.Equal(proposals[j].CreatedAt) {
			return proposals[i].CreatedAt.Before(proposals[j].CreatedAt)
		}
		return proposals[i].ID < proposals[j].ID
	})
}

func sortAvailabilitiesByUser(availabilities []models.Availability) {
	sort.Slice(availabilities, func(i, j int) bool {
		return availabilities[i].UserID < availabilities[j].UserID
	})
}

func sortAvailabilitiesByProposal(availabilities []models.Availability) {
	sort.Slice(availabilities, func(i, j int) bool {
		return availabilities[i].ProposalID < availabilities[j].ProposalID
	})
}

func sortOptions(options []models.DecisionOption) {
	sort.Slice(options, func(i, j int) bool {
		if !options[i].CreatedAt.Equal(options[j].CreatedAt) {
			return options[i].CreatedAt.Before(options[j].CreatedAt)
		}
		return options[i].ID < options[j].ID
	})
}

func sortVotes(votes []models.DecisionVote) {
	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].UpdatedAt.Equal(votes[j].UpdatedAt) {
			return votes[i].UpdatedAt.Before(votes[j].UpdatedAt)
		}
		return votes[i].ID < votes[j].ID
	})
}

func sortConfirmationsNewestFirst(confirmations []models.DecisionConfirmation) {
	sort.Slice(confirmations, func(i, j int) bool {
		if !confirmations[i].ConfirmedAt.Equal(confirmations[j].ConfirmedAt) {
			return confirmations[i].ConfirmedAt.After(confirmations[j].ConfirmedAt)
		}
		return confirmations[i].ID > confirmations[j].ID
	})
}

func sortComments(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
}
