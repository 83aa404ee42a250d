package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/services"
)

type commentInput struct {
	Text string `json:"text"`
}

func (handler *Handler) ListComments(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	comments, err := handler.store.ListProposalComments(proposalID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(comments)
}

func (handler *Handler) CreateComment(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	var input commentInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input.Text = strings.TrimSpace(input.Text)
	if input.Text == "" {
		return apiError(c, fiber.StatusBadRequest, "text is required")
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		UserID:     currentUser(c).ID,
		Text:       input.Text,
		CreatedAt:  time.Now(),
	}
	if err := handler.store.CreateComment(&comment); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (handler *Handler) DeleteComment(c *fiber.Ctx) error {
	comment, err := handler.store.FindCommentByID(c.Params("commentID"))
	if err != nil {
		return serviceError(c, err)
	}
	if !services.CanDeleteComment(currentUser(c), comment) {
		return apiError(c, fiber.StatusForbidden, "not permitted")
	}

	if err := handler.store.DeleteComment(comment.ID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
