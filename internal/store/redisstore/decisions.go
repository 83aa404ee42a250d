package redisstore

import (
	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
)

func decisionConfigKey(proposalID string, dimension string) string {
	return key("decision-config", proposalID, dimension)
}

func optionKey(optionID string) string {
	return key("decision-option", optionID)
}

func optionsIndexKey(proposalID string, dimension string) string {
	return key("decision-options", proposalID, dimension)
}

func voteKey(proposalID string, dimension string, userID string) string {
	return key("decision-vote", proposalID, dimension, userID)
}

func votesIndexKey(proposalID string, dimension string) string {
	return key("decision-votes", proposalID, dimension)
}

func confirmationKey(confirmationID string) string {
	return key("decision-confirmation", confirmationID)
}

func confirmationsIndexKey(proposalID string, dimension string) string {
	return key("decision-confirmations", proposalID, dimension)
}

func (s *Store) FindDecisionConfig(proposalID string, dimension string) (models.DecisionConfig, bool, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var config models.DecisionConfig
	found, err := s.getJSON(ctx, decisionConfigKey(proposalID, dimension), &config)
	if err != nil {
		return models.DecisionConfig{}, false, err
	}
	return config, found, nil
}

func (s *Store) UpsertDecisionConfig(config *models.DecisionConfig) error {
	existing, found, err := s.FindDecisionConfig(config.ProposalID, config.Dimension)
	if err != nil {
		return err
	}
	if found {
		config.ID = existing.ID
	}

	ctx, cancel := operationContext()
	defer cancel()
	return s.setJSON(ctx, decisionConfigKey(config.ProposalID, config.Dimension), config)
}

func (s *Store) ListDecisionOptions(proposalID string, dimension string) ([]models.DecisionOption, error) {
	ctx, cancel := operationContext()
	defer cancel()

	optionIDs, err := s.client.SMembers(ctx, optionsIndexKey(proposalID, dimension)).Result()
	if err != nil {
		return nil, err
	}

	options := make([]models.DecisionOption, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		var option models.DecisionOption
		found, err := s.getJSON(ctx, optionKey(optionID), &option)
		if err != nil {
			return nil, err
		}
		if found {
			options = append(options, option)
		}
	}
	sortOptions(options)
	return options, nil
}

func (s *Store) FindDecisionOption(optionID string) (models.DecisionOption, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var option models.DecisionOption
	found, err := s.getJSON(ctx, optionKey(optionID), &option)
	if err != nil {
		return models.DecisionOption{}, err
	}
	if !found {
		return models.DecisionOption{}, store.ErrNotFound
	}
	return option, nil
}

func (s *Store) CreateDecisionOption(option *models.DecisionOption) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, optionKey(option.ID), option); err != nil {
		return err
	}
	return s.client.SAdd(ctx, optionsIndexKey(option.ProposalID, option.Dimension), option.ID).Err()
}

func (s *Store) DeleteDecisionOption(optionID string) error {
	option, err := s.FindDecisionOption(optionID)
	if err != nil {
		return err
	}

	votes, err := s.ListDecisionVotes(option.ProposalID, option.Dimension)
	if err != nil {
		return err
	}
	ctx, cancel := operationContext()
	defer cancel()
	for index := range votes {
		vote := votes[index]
		ranked := removeString(vote.RankedOptionIDs, optionID)
		selected := removeString(vote.SelectedOptionIDs, optionID)
		if len(ranked) == len(vote.RankedOptionIDs) && len(selected) == len(vote.SelectedOptionIDs) {
			continue
		}
		vote.RankedOptionIDs = ranked
		vote.SelectedOptionIDs = selected
		if err := s.setJSON(ctx, voteKey(vote.ProposalID, vote.Dimension, vote.UserID), &vote); err != nil {
			return err
		}
	}

	confirmations, err := s.ListDecisionConfirmations(option.ProposalID, option.Dimension)
	if err != nil {
		return err
	}
	for index := range confirmations {
		confirmation := confirmations[index]
		trimmed := removeString(confirmation.OptionIDs, optionID)
		if len(trimmed) == len(confirmation.OptionIDs) {
			continue
		}
		confirmation.OptionIDs = trimmed
		if err := s.setJSON(ctx, confirmationKey(confirmation.ID), &confirmation); err != nil {
			return err
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, optionKey(optionID))
	pipe.SRem(ctx, optionsIndexKey(option.ProposalID, option.Dimension), optionID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) ListDecisionVotes(proposalID string, dimension string) ([]models.DecisionVote, error) {
	ctx, cancel := operationContext()
	defer cancel()

	voterIDs, err := s.client.SMembers(ctx, votesIndexKey(proposalID, dimension)).Result()
	if err != nil {
		return nil, err
	}

	votes := make([]models.DecisionVote, 0, len(voterIDs))
	for _, voterID := range voterIDs {
		var vote models.DecisionVote
		found, err := s.getJSON(ctx, voteKey(proposalID, dimension, voterID), &vote)
		if err != nil {
			return nil, err
		}
		if found {
			votes = append(votes, vote)
		}
	}
	sortVotes(votes)
	return votes, nil
}

func (s *Store) UpsertDecisionVote(vote *models.DecisionVote) error {
	existing := models.DecisionVote{}
	ctx, cancel := operationContext()
	defer cancel()

	found, err := s.getJSON(ctx, voteKey(vote.ProposalID, vote.Dimension, vote.UserID), &existing)
	if err != nil {
		return err
	}
	if found {
		vote.ID = existing.ID
	}

	if err := s.setJSON(ctx, voteKey(vote.ProposalID, vote.Dimension, vote.UserID), vote); err != nil {
		return err
	}
	return s.client.SAdd(ctx, votesIndexKey(vote.ProposalID, vote.Dimension), vote.UserID).Err()
}

func (s *Store) DeleteDecisionVote(userID string, proposalID string, dimension string) error {
	ctx, cancel := operationContext()
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, voteKey(proposalID, dimension, userID))
	pipe.SRem(ctx, votesIndexKey(proposalID, dimension), userID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) ListDecisionConfirmations(proposalID string, dimension string) ([]models.DecisionConfirmation, error) {
	ctx, cancel := operationContext()
	defer cancel()

	confirmationIDs, err := s.listConfirmationIDs(ctx, proposalID, dimension)
	if err != nil {
		return nil, err
	}

	confirmations := make([]models.DecisionConfirmation, 0, len(confirmationIDs))
	for _, confirmationID := range confirmationIDs {
		var confirmation models.DecisionConfirmation
		found, err := s.getJSON(ctx, confirmationKey(confirmationID), &confirmation)
		if err != nil {
			return nil, err
		}
		if found {
			confirmations = append(confirmations, confirmation)
		}
	}
	sortConfirmationsNewestFirst(confirmations)
	return confirmations, nil
}

func (s *Store) AppendDecisionConfirmation(confirmation *models.DecisionConfirmation) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, confirmationKey(confirmation.ID), confirmation); err != nil {
		return err
	}
	return s.client.RPush(ctx, confirmationsIndexKey(confirmation.ProposalID, confirmation.Dimension), confirmation.ID).Err()
}

func removeString(values []string, needle string) []string {
	if len(values) == 0 {
		return values
	}
	filtered := make([]string, 0, len(values))
	for _, value := range values {
		if value != needle {
			filtered = append(filtered, value)
		}
	}
	return filtered
}
