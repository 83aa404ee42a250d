package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
)

type availabilityStore interface {
	FindAvailability(userID string, proposalID string) (models.Availability, bool, error)
	UpsertAvailability(availability *models.Availability) error
	DeleteAvailability(userID string, proposalID string) error
}

type AvailabilityService struct {
	store availabilityStore
}

func NewAvailabilityService(store availabilityStore) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// SetDates replaces a user's marked dates for one proposal. Dates are
// normalized before writing so resolvers never see duplicates or junk.
// An empty set after normalization deletes the record instead of keeping
// an empty row around.
func (service *AvailabilityService) SetDates(userID string, proposalID string, dates []string, timeSlots []string) (models.Availability, error) {
	normalized := NormalizeDates(dates)

	existing, found, err := service.store.FindAvailability(userID, proposalID)
	if err != nil {
		return models.Availability{}, fmt.Errorf("find availability: %w", err)
	}

	if len(normalized) == 0 {
		if found {
			if err := service.store.DeleteAvailability(userID, proposalID); err != nil {
				return models.Availability{}, fmt.Errorf("delete availability: %w", err)
			}
		}
		return models.Availability{UserID: userID, ProposalID: proposalID, Dates: []string{}}, nil
	}

	availability := models.Availability{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProposalID: proposalID,
		Dates:      normalized,
		TimeSlots:  normalizeTimeSlots(timeSlots),
		UpdatedAt:  time.Now(),
	}
	if found {
		availability.ID = existing.ID
	}

	if err := service.store.UpsertAvailability(&availability); err != nil {
		return models.Availability{}, fmt.Errorf("upsert availability: %w", err)
	}
	return availability, nil
}

// normalizeTimeSlots dedups and sorts preferred time-of-day labels.
func normalizeTimeSlots(timeSlots []string) []string {
	if len(timeSlots) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(timeSlots))
	normalized := make([]string, 0, len(timeSlots))
	for _, slot := range timeSlots {
		if slot == "" || seen[slot] {
			continue
		}
		seen[slot] = true
		normalized = append(normalized, slot)
	}
	sort.Strings(normalized)
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
