package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
)

var (
	ErrEmptySelection  = errors.New("confirmation requires at least one option")
	ErrInvalidMode     = errors.New("invalid voting mode")
	ErrUnknownOption   = errors.New("vote references an unknown option")
	ErrNotPermitted    = errors.New("not permitted")
	ErrInvalidActivity = errors.New("invalid dimension")
)

// decisionStore is the slice of the repository the decision workflow needs.
type decisionStore interface {
	FindProposalByID(proposalID string) (models.Proposal, error)
	UpdateProposal(proposalID string, update models.ProposalUpdate) error

	FindDecisionConfig(proposalID string, dimension string) (models.DecisionConfig, bool, error)
	UpsertDecisionConfig(config *models.DecisionConfig) error

	ListDecisionOptions(proposalID string, dimension string) ([]models.DecisionOption, error)
	CreateDecisionOption(option *models.DecisionOption) error

	ListDecisionVotes(proposalID string, dimension string) ([]models.DecisionVote, error)
	UpsertDecisionVote(vote *models.DecisionVote) error

	ListDecisionConfirmations(proposalID string, dimension string) ([]models.DecisionConfirmation, error)
	AppendDecisionConfirmation(confirmation *models.DecisionConfirmation) error

	ListProposalAvailabilities(proposalID string) ([]models.Availability, error)
}

type DecisionService struct {
	store decisionStore
}

func NewDecisionService(store decisionStore) *DecisionService {
	return &DecisionService{store: store}
}

// GetOrCreateConfig returns the dimension's config, creating it with the
// dimension's default mode and open status on first touch. Creation is
// idempotent under the store's (proposal, dimension) uniqueness.
func (service *DecisionService) GetOrCreateConfig(proposalID string, dimension string) (models.DecisionConfig, error) {
	if !models.IsValidDimension(dimension) {
		return models.DecisionConfig{}, ErrInvalidActivity
	}

	config, found, err := service.store.FindDecisionConfig(proposalID, dimension)
	if err != nil {
		return models.DecisionConfig{}, fmt.Errorf("find decision config: %w", err)
	}
	if found {
		return config, nil
	}

	config = models.DecisionConfig{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		Dimension:  dimension,
		Mode:       models.DefaultVotingMode(dimension),
		Status:     models.DecisionOpen,
		UpdatedAt:  time.Now(),
	}
	if err := service.store.UpsertDecisionConfig(&config); err != nil {
		return models.DecisionConfig{}, fmt.Errorf("create decision config: %w", err)
	}
	return config, nil
}

// SetMode changes the dimension's voting mode without touching its status.
// Existing votes are kept; the new mode simply decides which list is read.
func (service *DecisionService) SetMode(proposalID string, dimension string, mode string) (models.DecisionConfig, error) {
	if !models.IsValidVotingMode(mode) {
		return models.DecisionConfig{}, ErrInvalidMode
	}

	config, err := service.GetOrCreateConfig(proposalID, dimension)
	if err != nil {
		return models.DecisionConfig{}, err
	}

	config.Mode = mode
	config.UpdatedAt = time.Now()
	if err := service.store.UpsertDecisionConfig(&config); err != nil {
		return models.DecisionConfig{}, fmt.Errorf("update decision config: %w", err)
	}
	return config, nil
}

// RecordVote stores one user's vote under the dimension's current mode.
// Multi mode fills the selected list, single and ranked modes fill the
// ranked list; the other list is cleared so a later mode change cannot
// resurrect stale entries. Every referenced option must exist.
func (service *DecisionService) RecordVote(proposalID string, dimension string, userID string, optionIDs []string) (models.DecisionVote, error) {
	config, err := service.GetOrCreateConfig(proposalID, dimension)
	if err != nil {
		return models.DecisionVote{}, err
	}

	options, err := service.store.ListDecisionOptions(proposalID, dimension)
	if err != nil {
		return models.DecisionVote{}, fmt.Errorf("list decision options: %w", err)
	}
	known := make(map[string]bool, len(options))
	for _, option := range options {
		known[option.ID] = true
	}
	for _, optionID := range optionIDs {
		if !known[optionID] {
			return models.DecisionVote{}, ErrUnknownOption
		}
	}

	if config.Mode == models.ModeSingle && len(optionIDs) > 1 {
		optionIDs = optionIDs[:1]
	}

	vote := models.DecisionVote{
		ID:         uuid.NewString(),
		ProposalID: proposalID,
		Dimension:  dimension,
		UserID:     userID,
		UpdatedAt:  time.Now(),
	}
	if config.Mode == models.ModeMulti {
		vote.SelectedOptionIDs = optionIDs
	} else {
		vote.RankedOptionIDs = optionIDs
	}

	if err := service.store.UpsertDecisionVote(&vote); err != nil {
		return models.DecisionVote{}, fmt.Errorf("upsert vote: %w", err)
	}
	return vote, nil
}

// ConfirmSelection records a confirmation for the dimension, marks the
// dimension confirmed, projects the chosen options into the proposal's
// specifics and flips the proposal itself to confirmed. An empty selection
// is rejected before anything is written.
func (service *DecisionService) ConfirmSelection(proposalID string, dimension string, confirmedBy string, optionIDs []string, note string) (models.DecisionConfirmation, error) {
	if len(optionIDs) == 0 {
		return models.DecisionConfirmation{}, ErrEmptySelection
	}

	proposal, err := service.store.FindProposalByID(proposalID)
	if err != nil {
		return models.DecisionConfirmation{}, fmt.Errorf("find proposal: %w", err)
	}

	config, err := service.GetOrCreateConfig(proposalID, dimension)
	if err != nil {
		return models.DecisionConfirmation{}, err
	}

	options, err := service.store.ListDecisionOptions(proposalID, dimension)
	if err != nil {
		return models.DecisionConfirmation{}, fmt.Errorf("list decision options: %w", err)
	}
	selected := selectOptions(options, optionIDs)
	if len(selected) == 0 {
		return models.DecisionConfirmation{}, ErrUnknownOption
	}

	confirmation := models.DecisionConfirmation{
		ID:          uuid.NewString(),
		ProposalID:  proposalID,
		Dimension:   dimension,
		OptionIDs:   optionIDs,
		ConfirmedBy: confirmedBy,
		Note:        note,
		ConfirmedAt: time.Now(),
	}
	if err := service.store.AppendDecisionConfirmation(&confirmation); err != nil {
		return models.DecisionConfirmation{}, fmt.Errorf("append confirmation: %w", err)
	}

	config.Status = models.DecisionConfirmed
	config.UpdatedAt = time.Now()
	if err := service.store.UpsertDecisionConfig(&config); err != nil {
		return models.DecisionConfirmation{}, fmt.Errorf("update decision config: %w", err)
	}

	specifics := ProjectSpecifics(proposal.Specifics, dimension, selected)
	status := models.StatusConfirmed
	if err := service.store.UpdateProposal(proposalID, models.ProposalUpdate{
		Status:    &status,
		Specifics: &specifics,
	}); err != nil {
		return models.DecisionConfirmation{}, fmt.Errorf("update proposal: %w", err)
	}

	return confirmation, nil
}

// ReopenDimension sets the dimension back to open. Earlier confirmations
// stay on record; the specifics set by them are not rolled back.
func (service *DecisionService) ReopenDimension(proposalID string, dimension string) (models.DecisionConfig, error) {
	config, err := service.GetOrCreateConfig(proposalID, dimension)
	if err != nil {
		return models.DecisionConfig{}, err
	}

	config.Status = models.DecisionOpen
	config.UpdatedAt = time.Now()
	if err := service.store.UpsertDecisionConfig(&config); err != nil {
		return models.DecisionConfig{}, fmt.Errorf("update decision config: %w", err)
	}
	return config, nil
}

// GenerateOverlapOptions computes the proposal's overlap windows and creates
// a time-dimension option for each window not already represented. It
// returns the options it created.
func (service *DecisionService) GenerateOverlapOptions(proposalID string, createdBy string, params OverlapParams) ([]models.DecisionOption, error) {
	if _, err := service.GetOrCreateConfig(proposalID, models.DimensionTime); err != nil {
		return nil, err
	}

	availabilities, err := service.store.ListProposalAvailabilities(proposalID)
	if err != nil {
		return nil, fmt.Errorf("list availabilities: %w", err)
	}
	existing, err := service.store.ListDecisionOptions(proposalID, models.DimensionTime)
	if err != nil {
		return nil, fmt.Errorf("list decision options: %w", err)
	}

	windows := ComputeOverlapWindows(availabilities, proposalID, params)
	synthesized := BuildOverlapOptions(windows, existing, proposalID, createdBy, time.Now())

	created := make([]models.DecisionOption, 0, len(synthesized))
	for index := range synthesized {
		option := synthesized[index]
		option.ID = uuid.NewString()
		if err := service.store.CreateDecisionOption(&option); err != nil {
			return created, fmt.Errorf("create option: %w", err)
		}
		created = append(created, option)
	}
	return created, nil
}

// ProjectSpecifics folds confirmed options into the proposal's specifics.
// The time dimension fills both the time label and, when the options carry
// window metadata, the date range. The place dimension fills the location.
// Requirements leave specifics untouched.
func ProjectSpecifics(current models.Specifics, dimension string, selected []models.DecisionOption) models.Specifics {
	labels := make([]string, 0, len(selected))
	for _, option := range selected {
		labels = append(labels, option.Label)
	}
	joined := strings.Join(labels, ", ")

	switch dimension {
	case models.DimensionTime:
		current.Time = joined
		first := selected[0]
		startDate := first.Metadata[models.OptionMetaStartDate]
		endDate := first.Metadata[models.OptionMetaEndDate]
		switch {
		case startDate != "" && startDate == endDate:
			current.Date = startDate
		case startDate != "" && endDate != "":
			current.Date = startDate + " to " + endDate
		}
	case models.DimensionPlace:
		current.Location = joined
	}
	return current
}

func selectOptions(options []models.DecisionOption, optionIDs []string) []models.DecisionOption {
	byID := make(map[string]models.DecisionOption, len(options))
	for _, option := range options {
		byID[option.ID] = option
	}

	selected := make([]models.DecisionOption, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		if option, known := byID[optionID]; known {
			selected = append(selected, option)
		}
	}
	return selected
}
