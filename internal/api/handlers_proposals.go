package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/services"
)

type proposalInput struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	Emoji string `json:"emoji"`
}

type proposalUpdateInput struct {
	Title  *string `json:"title"`
	Kind   *string `json:"kind"`
	Emoji  *string `json:"emoji"`
	Status *string `json:"status"`
}

func (handler *Handler) ListProposals(c *fiber.Ctx) error {
	proposals, err := handler.store.ListProposals()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(proposals)
}

func (handler *Handler) CreateProposal(c *fiber.Ctx) error {
	var input proposalInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return apiError(c, fiber.StatusBadRequest, "title is required")
	}
	if input.Kind == "" {
		input.Kind = models.ActivityEvent
	}
	if !models.IsValidActivityKind(input.Kind) {
		return apiError(c, fiber.StatusBadRequest, "invalid activity kind")
	}

	now := time.Now()
	proposal := models.Proposal{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Kind:      input.Kind,
		Emoji:     input.Emoji,
		CreatedBy: currentUser(c).ID,
		Status:    models.StatusProposed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := handler.store.CreateProposal(&proposal); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

func (handler *Handler) GetProposal(c *fiber.Ctx) error {
	proposal, err := handler.store.FindProposalByID(c.Params("proposalID"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(proposal)
}

func (handler *Handler) UpdateProposal(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	var input proposalUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if input.Kind != nil && !models.IsValidActivityKind(*input.Kind) {
		return apiError(c, fiber.StatusBadRequest, "invalid activity kind")
	}
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return apiError(c, fiber.StatusBadRequest, "title is required")
		}
		input.Title = &trimmed
	}

	update := models.ProposalUpdate{
		Title:  input.Title,
		Kind:   input.Kind,
		Emoji:  input.Emoji,
		Status: input.Status,
	}
	if err := handler.store.UpdateProposal(proposalID, update); err != nil {
		return serviceError(c, err)
	}

	proposal, err := handler.store.FindProposalByID(proposalID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(proposal)
}

func (handler *Handler) DeleteProposal(c *fiber.Ctx) error {
	proposal, err := handler.store.FindProposalByID(c.Params("proposalID"))
	if err != nil {
		return serviceError(c, err)
	}
	if !services.CanDeleteProposal(currentUser(c), proposal) {
		return apiError(c, fiber.StatusForbidden, "not permitted")
	}

	if err := handler.store.DeleteProposal(proposal.ID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
