package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pverlaine/convene/internal/services"
)

type availabilityInput struct {
	Dates     []string `json:"dates"`
	TimeSlots []string `json:"time_slots"`
}

func (handler *Handler) GetMyAvailability(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	availability, found, err := handler.store.FindAvailability(currentUser(c).ID, proposalID)
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		availability.UserID = currentUser(c).ID
		availability.ProposalID = proposalID
		availability.Dates = []string{}
	}
	return c.JSON(availability)
}

func (handler *Handler) ListAvailabilities(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	availabilities, err := handler.store.ListProposalAvailabilities(proposalID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(availabilities)
}

func (handler *Handler) PutMyAvailability(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	var input availabilityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	availability, err := handler.availability.SetDates(currentUser(c).ID, proposalID, input.Dates, input.TimeSlots)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(availability)
}

func (handler *Handler) DeleteMyAvailability(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	if _, err := handler.availability.SetDates(currentUser(c).ID, proposalID, nil, nil); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetCalendar reports per-date availability counts, consensus percentages
// and the best-date shortlist for one proposal.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	availabilities, err := handler.store.ListProposalAvailabilities(proposalID)
	if err != nil {
		return serviceError(c, err)
	}
	totalUsers, err := handler.store.CountUsers()
	if err != nil {
		return serviceError(c, err)
	}

	counts := services.DateAvailabilityCounts(availabilities, proposalID)
	percents := make(map[string]int, len(counts))
	for date, count := range counts {
		percents[date] = services.DateConsensusPercent(count, int(totalUsers))
	}

	return c.JSON(fiber.Map{
		"date_counts":   counts,
		"date_percents": percents,
		"consensus":     services.ProposalConsensus(availabilities, proposalID, int(totalUsers)),
		"best_dates":    services.BestDates(availabilities, proposalID, int(totalUsers)),
		"total_users":   totalUsers,
	})
}
