package redisstore

import (
	"context"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
)

func proposalKey(proposalID string) string { return key("proposal", proposalID) }
func proposalsIndexKey() string            { return key("proposals") }

var decisionDimensions = []string{
	models.DimensionTime,
	models.DimensionPlace,
	models.DimensionRequirement,
}

func (s *Store) CreateProposal(proposal *models.Proposal) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, proposalKey(proposal.ID), proposal); err != nil {
		return err
	}
	return s.client.SAdd(ctx, proposalsIndexKey(), proposal.ID).Err()
}

func (s *Store) FindProposalByID(proposalID string) (models.Proposal, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var proposal models.Proposal
	found, err := s.getJSON(ctx, proposalKey(proposalID), &proposal)
	if err != nil {
		return models.Proposal{}, err
	}
	if !found {
		return models.Proposal{}, store.ErrNotFound
	}
	return proposal, nil
}

func (s *Store) ListProposals() ([]models.Proposal, error) {
	ctx, cancel := operationContext()
	defer cancel()

	proposalIDs, err := s.client.SMembers(ctx, proposalsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	proposals := make([]models.Proposal, 0, len(proposalIDs))
	for _, proposalID := range proposalIDs {
		var proposal models.Proposal
		found, err := s.getJSON(ctx, proposalKey(proposalID), &proposal)
		if err != nil {
			return nil, err
		}
		if found {
			proposals = append(proposals, proposal)
		}
	}
	sortProposals(proposals)
	return proposals, nil
}

func (s *Store) UpdateProposal(proposalID string, update models.ProposalUpdate) error {
	proposal, err := s.FindProposalByID(proposalID)
	if err != nil {
		return err
	}

	if update.Title != nil {
		proposal.Title = *update.Title
	}
	if update.Kind != nil {
		proposal.Kind = *update.Kind
	}
	if update.Emoji != nil {
		proposal.Emoji = *update.Emoji
	}
	if update.Status != nil {
		proposal.Status = *update.Status
	}
	if update.Specifics != nil {
		proposal.Specifics = *update.Specifics
	}

	ctx, cancel := operationContext()
	defer cancel()
	return s.setJSON(ctx, proposalKey(proposalID), &proposal)
}

func (s *Store) DeleteProposal(proposalID string) error {
	ctx, cancel := operationContext()
	defer cancel()

	doomedKeys := []string{proposalKey(proposalID)}

	availabilityUserIDs, err := s.client.SMembers(ctx, availabilityIndexKey(proposalID)).Result()
	if err != nil {
		return err
	}
	for _, userID := range availabilityUserIDs {
		doomedKeys = append(doomedKeys, availabilityKey(proposalID, userID))
		if err := s.client.SRem(ctx, userAvailabilityIndexKey(userID), proposalID).Err(); err != nil {
			return err
		}
	}
	doomedKeys = append(doomedKeys, availabilityIndexKey(proposalID))

	for _, dimension := range decisionDimensions {
		doomedKeys = append(doomedKeys, decisionConfigKey(proposalID, dimension))

		optionIDs, err := s.client.SMembers(ctx, optionsIndexKey(proposalID, dimension)).Result()
		if err != nil {
			return err
		}
		for _, optionID := range optionIDs {
			doomedKeys = append(doomedKeys, optionKey(optionID))
		}
		doomedKeys = append(doomedKeys, optionsIndexKey(proposalID, dimension))

		voterIDs, err := s.client.SMembers(ctx, votesIndexKey(proposalID, dimension)).Result()
		if err != nil {
			return err
		}
		for _, voterID := range voterIDs {
			doomedKeys = append(doomedKeys, voteKey(proposalID, dimension, voterID))
		}
		doomedKeys = append(doomedKeys, votesIndexKey(proposalID, dimension))

		confirmationIDs, err := s.listConfirmationIDs(ctx, proposalID, dimension)
		if err != nil {
			return err
		}
		for _, confirmationID := range confirmationIDs {
			doomedKeys = append(doomedKeys, confirmationKey(confirmationID))
		}
		doomedKeys = append(doomedKeys, confirmationsIndexKey(proposalID, dimension))
	}

	commentIDs, err := s.listCommentIDs(ctx, proposalID)
	if err != nil {
		return err
	}
	for _, commentID := range commentIDs {
		doomedKeys = append(doomedKeys, commentKey(commentID))
	}
	doomedKeys = append(doomedKeys, commentsIndexKey(proposalID))

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, doomedKeys...)
	pipe.SRem(ctx, proposalsIndexKey(), proposalID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) listConfirmationIDs(ctx context.Context, proposalID string, dimension string) ([]string, error) {
	return s.client.LRange(ctx, confirmationsIndexKey(proposalID, dimension), 0, -1).Result()
}

func (s *Store) listCommentIDs(ctx context.Context, proposalID string) ([]string, error) {
	return s.client.LRange(ctx, commentsIndexKey(proposalID), 0, -1).Result()
}
