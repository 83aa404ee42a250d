package gormstore

import (
	"errors"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
	"gorm.io/gorm"
)

func (s *Store) CreateProposal(proposal *models.Proposal) error {
	return s.database.Create(proposal).Error
}

func (s *Store) FindProposalByID(proposalID string) (models.Proposal, error) {
	var proposal models.Proposal
	if err := s.database.Where("id = ?", proposalID).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Proposal{}, store.ErrNotFound
		}
		return models.Proposal{}, err
	}
	return proposal, nil
}

func (s *Store) ListProposals() ([]models.Proposal, error) {
	proposals := make([]models.Proposal, 0)
	if err := s.database.Order("created_at ASC, id ASC").Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// UpdateProposal goes through load-modify-Save so the serializer on the
// specifics column is applied; map-based Updates would bypass it.
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

	return s.database.Save(&proposal).Error
}

func (s *Store) DeleteProposal(proposalID string) error {
	return s.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.DecisionConfig{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.DecisionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.DecisionVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.DecisionConfirmation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("proposal_id = ?", proposalID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", proposalID).Delete(&models.Proposal{}).Error
	})
}
