package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/services"
)

type decisionModeInput struct {
	Mode string `json:"mode"`
}

type decisionOptionInput struct {
	Label    string            `json:"label"`
	Metadata map[string]string `json:"metadata"`
}

type decisionVoteInput struct {
	OptionIDs []string `json:"option_ids"`
}

type decisionConfirmInput struct {
	OptionIDs []string `json:"option_ids"`
	Note      string   `json:"note"`
}

type overlapGenerateInput struct {
	MinNights       int `json:"min_nights"`
	MinParticipants int `json:"min_participants"`
	MaxWindows      int `json:"max_windows"`
}

type optionSummary struct {
	Option         models.DecisionOption `json:"option"`
	Support        int                   `json:"support"`
	SupportPercent int                   `json:"support_percent"`
}

func (handler *Handler) decisionScope(c *fiber.Ctx) (string, string, error) {
	proposalID := c.Params("proposalID")
	dimension := c.Params("dimension")
	if !models.IsValidDimension(dimension) {
		return "", "", services.ErrInvalidActivity
	}
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return "", "", err
	}
	return proposalID, dimension, nil
}

// GetDecisionSummary returns everything a client needs to render one
// decision dimension: config, options with support, vote counts, ranked
// standings and the latest confirmation.
func (handler *Handler) GetDecisionSummary(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}

	config, err := handler.decisions.GetOrCreateConfig(proposalID, dimension)
	if err != nil {
		return serviceError(c, err)
	}
	options, err := handler.store.ListDecisionOptions(proposalID, dimension)
	if err != nil {
		return serviceError(c, err)
	}
	votes, err := handler.store.ListDecisionVotes(proposalID, dimension)
	if err != nil {
		return serviceError(c, err)
	}
	confirmations, err := handler.store.ListDecisionConfirmations(proposalID, dimension)
	if err != nil {
		return serviceError(c, err)
	}

	summaries := make([]optionSummary, 0, len(options))
	for _, option := range options {
		summaries = append(summaries, optionSummary{
			Option:         option,
			Support:        services.OptionSupport(config.Mode, option.ID, votes),
			SupportPercent: services.OptionSupportPercent(config.Mode, option.ID, votes),
		})
	}

	scores := services.ComputeRankedScores(options, votes)
	firstChoices := services.ComputeFirstChoiceCounts(options, votes)
	topCandidates := services.TopCandidates(options, scores, firstChoices, 3)

	payload := fiber.Map{
		"config":         config,
		"options":        summaries,
		"vote_count":     len(votes),
		"top_candidates": topCandidates,
		"can_confirm":    handler.canConfirm(c, proposalID),
	}
	if len(confirmations) > 0 {
		payload["latest_confirmation"] = confirmations[0]
	}
	return c.JSON(payload)
}

func (handler *Handler) UpdateDecisionMode(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}

	var input decisionModeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	config, err := handler.decisions.SetMode(proposalID, dimension, input.Mode)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(config)
}

func (handler *Handler) CreateDecisionOption(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}

	var input decisionOptionInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	input.Label = strings.TrimSpace(input.Label)
	if input.Label == "" {
		return apiError(c, fiber.StatusBadRequest, "label is required")
	}

	if _, err := handler.decisions.GetOrCreateConfig(proposalID, dimension); err != nil {
		return serviceError(c, err)
	}

	option := models.DecisionOption{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		Dimension:  dimension,
		Label:      input.Label,
		CreatedBy:  currentUser(c).ID,
		Metadata:   input.Metadata,
		CreatedAt:  time.Now(),
	}
	if err := handler.store.CreateDecisionOption(&option); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(option)
}

func (handler *Handler) DeleteDecisionOption(c *fiber.Ctx) error {
	option, err := handler.store.FindDecisionOption(c.Params("optionID"))
	if err != nil {
		return serviceError(c, err)
	}
	if !services.CanDeleteOption(currentUser(c), option) {
		return apiError(c, fiber.StatusForbidden, "not permitted")
	}

	if err := handler.store.DeleteDecisionOption(option.ID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) PutDecisionVote(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}

	var input decisionVoteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	vote, err := handler.decisions.RecordVote(proposalID, dimension, currentUser(c).ID, input.OptionIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(vote)
}

func (handler *Handler) DeleteDecisionVote(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}

	if err := handler.store.DeleteDecisionVote(currentUser(c).ID, proposalID, dimension); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ConfirmDecision(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}
	if !handler.canConfirm(c, proposalID) {
		return apiError(c, fiber.StatusForbidden, "not permitted")
	}

	var input decisionConfirmInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	confirmation, err := handler.decisions.ConfirmSelection(proposalID, dimension, currentUser(c).ID, input.OptionIDs, input.Note)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(confirmation)
}

func (handler *Handler) ReopenDecision(c *fiber.Ctx) error {
	proposalID, dimension, err := handler.decisionScope(c)
	if err != nil {
		return serviceError(c, err)
	}
	if !handler.canConfirm(c, proposalID) {
		return apiError(c, fiber.StatusForbidden, "not permitted")
	}

	config, err := handler.decisions.ReopenDimension(proposalID, dimension)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(config)
}

// GenerateOverlapOptions materializes sejour overlap windows as time
// options and reports how many were newly created.
func (handler *Handler) GenerateOverlapOptions(c *fiber.Ctx) error {
	proposalID := c.Params("proposalID")
	if _, err := handler.store.FindProposalByID(proposalID); err != nil {
		return serviceError(c, err)
	}

	var input overlapGenerateInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	created, err := handler.decisions.GenerateOverlapOptions(proposalID, currentUser(c).ID, services.OverlapParams{
		MinNights:       input.MinNights,
		MinParticipants: input.MinParticipants,
		MaxWindows:      input.MaxWindows,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created_count": len(created),
		"options":       created,
	})
}

func (handler *Handler) canConfirm(c *fiber.Ctx, proposalID string) bool {
	proposal, err := handler.store.FindProposalByID(proposalID)
	if err != nil {
		return false
	}
	return services.CanConfirmDecision(currentUser(c), proposal)
}
