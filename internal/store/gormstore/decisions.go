package gormstore

import (
	"errors"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
	"gorm.io/gorm"
)

func (s *Store) FindDecisionConfig(proposalID string, dimension string) (models.DecisionConfig, bool, error) {
	config := models.DecisionConfig{}
	result := s.database.
		Where("proposal_id = ? AND dimension = ?", proposalID, dimension).
		Limit(1).
		Find(&config)
	if result.Error != nil {
		return models.DecisionConfig{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DecisionConfig{}, false, nil
	}
	return config, true, nil
}

func (s *Store) UpsertDecisionConfig(config *models.DecisionConfig) error {
	existing, found, err := s.FindDecisionConfig(config.ProposalID, config.Dimension)
	if err != nil {
		return err
	}
	if found {
		config.ID = existing.ID
		return s.database.Save(config).Error
	}
	return s.database.Create(config).Error
}

func (s *Store) ListDecisionOptions(proposalID string, dimension string) ([]models.DecisionOption, error) {
	options := make([]models.DecisionOption, 0)
	if err := s.database.
		Where("proposal_id = ? AND dimension = ?", proposalID, dimension).
		Order("created_at ASC, id ASC").
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (s *Store) FindDecisionOption(optionID string) (models.DecisionOption, error) {
	var option models.DecisionOption
	if err := s.database.Where("id = ?", optionID).First(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DecisionOption{}, store.ErrNotFound
		}
		return models.DecisionOption{}, err
	}
	return option, nil
}

func (s *Store) CreateDecisionOption(option *models.DecisionOption) error {
	return s.database.Create(option).Error
}

func (s *Store) DeleteDecisionOption(optionID string) error {
	option, err := s.FindDecisionOption(optionID)
	if err != nil {
		return err
	}

	return s.database.Transaction(func(tx *gorm.DB) error {
		votes := make([]models.DecisionVote, 0)
		if err := tx.
			Where("proposal_id = ? AND dimension = ?", option.ProposalID, option.Dimension).
			Find(&votes).Error; err != nil {
			return err
		}
		for index := range votes {
			vote := &votes[index]
			ranked := removeString(vote.RankedOptionIDs, optionID)
			selected := removeString(vote.SelectedOptionIDs, optionID)
			if len(ranked) == len(vote.RankedOptionIDs) && len(selected) == len(vote.SelectedOptionIDs) {
				continue
			}
			vote.RankedOptionIDs = ranked
			vote.SelectedOptionIDs = selected
			if err := tx.Model(vote).Select("ranked_option_ids", "selected_option_ids").Updates(vote).Error; err != nil {
				return err
			}
		}

		confirmations := make([]models.DecisionConfirmation, 0)
		if err := tx.
			Where("proposal_id = ? AND dimension = ?", option.ProposalID, option.Dimension).
			Find(&confirmations).Error; err != nil {
			return err
		}
		for index := range confirmations {
			confirmation := &confirmations[index]
			trimmed := removeString(confirmation.OptionIDs, optionID)
			if len(trimmed) == len(confirmation.OptionIDs) {
				continue
			}
			confirmation.OptionIDs = trimmed
			if err := tx.Model(confirmation).Select("option_ids").Updates(confirmation).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", optionID).Delete(&models.DecisionOption{}).Error
	})
}

func (s *Store) ListDecisionVotes(proposalID string, dimension string) ([]models.DecisionVote, error) {
	votes := make([]models.DecisionVote, 0)
	if err := s.database.
		Where("proposal_id = ? AND dimension = ?", proposalID, dimension).
		Order("updated_at ASC, id ASC").
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *Store) UpsertDecisionVote(vote *models.DecisionVote) error {
	existing := models.DecisionVote{}
	result := s.database.
		Where("user_id = ? AND proposal_id = ? AND dimension = ?", vote.UserID, vote.ProposalID, vote.Dimension).
		Limit(1).
		Find(&existing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		vote.ID = existing.ID
		return s.database.Save(vote).Error
	}
	return s.database.Create(vote).Error
}

func (s *Store) DeleteDecisionVote(userID string, proposalID string, dimension string) error {
	return s.database.
		Where("user_id = ? AND proposal_id = ? AND dimension = ?", userID, proposalID, dimension).
		Delete(&models.DecisionVote{}).Error
}

func (s *Store) ListDecisionConfirmations(proposalID string, dimension string) ([]models.DecisionConfirmation, error) {
	confirmations := make([]models.DecisionConfirmation, 0)
	if err := s.database.
		Where("proposal_id = ? AND dimension = ?", proposalID, dimension).
		Order("confirmed_at DESC, id DESC").
		Find(&confirmations).Error; err != nil {
		return nil, err
	}
	return confirmations, nil
}

func (s *Store) AppendDecisionConfirmation(confirmation *models.DecisionConfirmation) error {
	return s.database.Create(confirmation).Error
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
