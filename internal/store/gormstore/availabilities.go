package gormstore

import (
	"github.com/pverlaine/convene/internal/models"
)

func (s *Store) FindAvailability(userID string, proposalID string) (models.Availability, bool, error) {
	availability := models.Availability{}
	result := s.database.
		Where("user_id = ? AND proposal_id = ?", userID, proposalID).
		Limit(1).
		Find(&availability)
	if result.Error != nil {
		return models.Availability{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Availability{}, false, nil
	}
	return availability, true, nil
}

func (s *Store) ListProposalAvailabilities(proposalID string) ([]models.Availability, error) {
	availabilities := make([]models.Availability, 0)
	if err := s.database.
		Where("proposal_id = ?", proposalID).
		Order("user_id ASC").
		Find(&availabilities).Error; err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (s *Store) ListUserAvailabilities(userID string) ([]models.Availability, error) {
	availabilities := make([]models.Availability, 0)
	if err := s.database.
		Where("user_id = ?", userID).
		Order("proposal_id ASC").
		Find(&availabilities).Error; err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (s *Store) UpsertAvailability(availability *models.Availability) error {
	existing, found, err := s.FindAvailability(availability.UserID, availability.ProposalID)
	if err != nil {
		return err
	}
	if found {
		availability.ID = existing.ID
		return s.database.Save(availability).Error
	}
	return s.database.Create(availability).Error
}

func (s *Store) DeleteAvailability(userID string, proposalID string) error {
	return s.database.
		Where("user_id = ? AND proposal_id = ?", userID, proposalID).
		Delete(&models.Availability{}).Error
}
