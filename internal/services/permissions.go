package services

import "github.com/pverlaine/convene/internal/models"

// CanConfirmDecision allows admins and the proposal's creator to confirm
// or reopen decision dimensions.
func CanConfirmDecision(user models.User, proposal models.Proposal) bool {
	return user.IsAdmin || proposal.CreatedBy == user.ID
}

// CanDeleteProposal mirrors the confirmation rule: admins and the creator.
func CanDeleteProposal(user models.User, proposal models.Proposal) bool {
	return user.IsAdmin || proposal.CreatedBy == user.ID
}

// CanDeleteOption allows admins and whoever added the option.
func CanDeleteOption(user models.User, option models.DecisionOption) bool {
	return user.IsAdmin || option.CreatedBy == user.ID
}

// CanDeleteComment allows admins and the comment's author.
func CanDeleteComment(user models.User, comment models.Comment) bool {
	return user.IsAdmin || comment.UserID == user.ID
}
