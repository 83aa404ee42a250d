package redisstore

import (
	"github.com/pverlaine/convene/internal/models"
)

func availabilityKey(proposalID string, userID string) string {
	return key("availability", proposalID, userID)
}

func availabilityIndexKey(proposalID string) string {
	return key("availabilities", proposalID)
}

func userAvailabilityIndexKey(userID string) string {
	return key("user-availabilities", userID)
}

func (s *Store) FindAvailability(userID string, proposalID string) (models.Availability, bool, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var availability models.Availability
	found, err := s.getJSON(ctx, availabilityKey(proposalID, userID), &availability)
	if err != nil {
		return models.Availability{}, false, err
	}
	return availability, found, nil
}

func (s *Store) ListProposalAvailabilities(proposalID string) ([]models.Availability, error) {
	ctx, cancel := operationContext()
	defer cancel()

	userIDs, err := s.client.SMembers(ctx, availabilityIndexKey(proposalID)).Result()
	if err != nil {
		return nil, err
	}

	availabilities := make([]models.Availability, 0, len(userIDs))
	for _, userID := range userIDs {
		var availability models.Availability
		found, err := s.getJSON(ctx, availabilityKey(proposalID, userID), &availability)
		if err != nil {
			return nil, err
		}
		if found {
			availabilities = append(availabilities, availability)
		}
	}
	sortAvailabilitiesByUser(availabilities)
	return availabilities, nil
}

func (s *Store) ListUserAvailabilities(userID string) ([]models.Availability, error) {
	ctx, cancel := operationContext()
	defer cancel()

	proposalIDs, err := s.client.SMembers(ctx, userAvailabilityIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	availabilities := make([]models.Availability, 0, len(proposalIDs))
	for _, proposalID := range proposalIDs {
		var availability models.Availability
		found, err := s.getJSON(ctx, availabilityKey(proposalID, userID), &availability)
		if err != nil {
			return nil, err
		}
		if found {
			availabilities = append(availabilities, availability)
		}
	}
	sortAvailabilitiesByProposal(availabilities)
	return availabilities, nil
}

func (s *Store) UpsertAvailability(availability *models.Availability) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, availabilityKey(availability.ProposalID, availability.UserID), availability); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, availabilityIndexKey(availability.ProposalID), availability.UserID)
	pipe.SAdd(ctx, userAvailabilityIndexKey(availability.UserID), availability.ProposalID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) DeleteAvailability(userID string, proposalID string) error {
	ctx, cancel := operationContext()
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, availabilityKey(proposalID, userID))
	pipe.SRem(ctx, availabilityIndexKey(proposalID), userID)
	pipe.SRem(ctx, userAvailabilityIndexKey(userID), proposalID)
	_, err := pipe.Exec(ctx)
	return err
}
