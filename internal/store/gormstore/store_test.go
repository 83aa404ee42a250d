package gormstore

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	testStore, err := Open(filepath.Join(t.TempDir(), "convene.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return testStore
}

func seedProposal(t *testing.T, testStore *Store) models.Proposal {
	t.Helper()
	proposal := models.Proposal{
		ID:        uuid.NewString(),
		Title:     "Board game night",
		Kind:      models.ActivityEvent,
		CreatedBy: "alice",
		Status:    models.StatusProposed,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := testStore.CreateProposal(&proposal); err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	return proposal
}

func TestUserLookup(t *testing.T) {
	testStore := newTestStore(t)

	user := models.User{ID: uuid.NewString(), Name: "Alice", PasswordHash: "hash", CreatedAt: time.Now()}
	if err := testStore.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	found, err := testStore.FindUserByName("Alice")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, found.ID)
	}

	if _, err := testStore.FindUserByID("missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	count, err := testStore.CountUsers()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestUpdateProposalPartial(t *testing.T) {
	testStore := newTestStore(t)
	proposal := seedProposal(t, testStore)

	newStatus := models.StatusConfirmed
	if err := testStore.UpdateProposal(proposal.ID, models.ProposalUpdate{Status: &newStatus}); err != nil {
		t.Fatalf("update proposal: %v", err)
	}

	updated, err := testStore.FindProposalByID(proposal.ID)
	if err != nil {
		t.Fatalf("find proposal: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if updated.Title != proposal.Title {
		t.Fatalf("partial update must not touch the title, got %q", updated.Title)
	}
}

func TestUpdateProposalWritesSpecifics(t *testing.T) {
	testStore := newTestStore(t)
	proposal := seedProposal(t, testStore)

	newStatus := models.StatusConfirmed
	specifics := models.Specifics{Date: "2026-01-02 to 2026-01-04", Time: "Jan 2 - Jan 4 (2 nights, 2 persons)", Location: "The lake house"}
	if err := testStore.UpdateProposal(proposal.ID, models.ProposalUpdate{Status: &newStatus, Specifics: &specifics}); err != nil {
		t.Fatalf("update proposal: %v", err)
	}

	updated, err := testStore.FindProposalByID(proposal.ID)
	if err != nil {
		t.Fatalf("find proposal: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if !reflect.DeepEqual(updated.Specifics, specifics) {
		t.Fatalf("specifics did not round-trip: %+v", updated.Specifics)
	}

	if err := testStore.UpdateProposal("missing", models.ProposalUpdate{Status: &newStatus}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProposalCascades(t *testing.T) {
	testStore := newTestStore(t)
	proposal := seedProposal(t, testStore)

	availability := models.Availability{ID: uuid.NewString(), UserID: "alice", ProposalID: proposal.ID, Dates: []string{"2026-01-01"}, UpdatedAt: time.Now()}
	if err := testStore.UpsertAvailability(&availability); err != nil {
		t.Fatalf("upsert availability: %v", err)
	}
	config := models.DecisionConfig{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, Mode: models.ModeSingle, Status: models.DecisionOpen, UpdatedAt: time.Now()}
	if err := testStore.UpsertDecisionConfig(&config); err != nil {
		t.Fatalf("upsert config: %v", err)
	}
	option := models.DecisionOption{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, Label: "Friday", CreatedBy: "alice", CreatedAt: time.Now()}
	if err := testStore.CreateDecisionOption(&option); err != nil {
		t.Fatalf("create option: %v", err)
	}
	vote := models.DecisionVote{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, UserID: "alice", RankedOptionIDs: []string{option.ID}, UpdatedAt: time.Now()}
	if err := testStore.UpsertDecisionVote(&vote); err != nil {
		t.Fatalf("upsert vote: %v", err)
	}
	confirmation := models.DecisionConfirmation{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, OptionIDs: []string{option.ID}, ConfirmedBy: "alice", ConfirmedAt: time.Now()}
	if err := testStore.AppendDecisionConfirmation(&confirmation); err != nil {
		t.Fatalf("append confirmation: %v", err)
	}
	comment := models.Comment{ID: uuid.NewString(), ProposalID: proposal.ID, UserID: "alice", Text: "count me in", CreatedAt: time.Now()}
	if err := testStore.CreateComment(&comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := testStore.DeleteProposal(proposal.ID); err != nil {
		t.Fatalf("delete proposal: %v", err)
	}

	if _, err := testStore.FindProposalByID(proposal.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("proposal survived deletion: %v", err)
	}
	if _, found, err := testStore.FindAvailability("alice", proposal.ID); err != nil || found {
		t.Fatalf("availability survived deletion (found=%v, err=%v)", found, err)
	}
	if _, found, err := testStore.FindDecisionConfig(proposal.ID, models.DimensionTime); err != nil || found {
		t.Fatalf("config survived deletion (found=%v, err=%v)", found, err)
	}
	options, err := testStore.ListDecisionOptions(proposal.ID, models.DimensionTime)
	if err != nil || len(options) != 0 {
		t.Fatalf("options survived deletion (%d, err=%v)", len(options), err)
	}
	votes, err := testStore.ListDecisionVotes(proposal.ID, models.DimensionTime)
	if err != nil || len(votes) != 0 {
		t.Fatalf("votes survived deletion (%d, err=%v)", len(votes), err)
	}
	confirmations, err := testStore.ListDecisionConfirmations(proposal.ID, models.DimensionTime)
	if err != nil || len(confirmations) != 0 {
		t.Fatalf("confirmations survived deletion (%d, err=%v)", len(confirmations), err)
	}
	comments, err := testStore.ListProposalComments(proposal.ID)
	if err != nil || len(comments) != 0 {
		t.Fatalf("comments survived deletion (%d, err=%v)", len(comments), err)
	}
}

func TestDeleteDecisionOptionStripsReferences(t *testing.T) {
	testStore := newTestStore(t)
	proposal := seedProposal(t, testStore)

	keep := models.DecisionOption{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionPlace, Label: "Park", CreatedBy: "alice", CreatedAt: time.Now()}
	doomed := models.DecisionOption{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionPlace, Label: "Bar", CreatedBy: "alice", CreatedAt: time.Now()}
	for _, option := range []*models.DecisionOption{&keep, &doomed} {
		if err := testStore.CreateDecisionOption(option); err != nil {
			t.Fatalf("create option: %v", err)
		}
	}

	vote := models.DecisionVote{
		ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionPlace, UserID: "bob",
		RankedOptionIDs:   []string{doomed.ID, keep.ID},
		SelectedOptionIDs: []string{doomed.ID},
		UpdatedAt:         time.Now(),
	}
	if err := testStore.UpsertDecisionVote(&vote); err != nil {
		t.Fatalf("upsert vote: %v", err)
	}
	confirmation := models.DecisionConfirmation{
		ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionPlace,
		OptionIDs: []string{doomed.ID, keep.ID}, ConfirmedBy: "alice", ConfirmedAt: time.Now(),
	}
	if err := testStore.AppendDecisionConfirmation(&confirmation); err != nil {
		t.Fatalf("append confirmation: %v", err)
	}

	if err := testStore.DeleteDecisionOption(doomed.ID); err != nil {
		t.Fatalf("delete option: %v", err)
	}

	votes, err := testStore.ListDecisionVotes(proposal.ID, models.DimensionPlace)
	if err != nil {
		t.Fatalf("list votes: %v", err)
	}
	if !reflect.DeepEqual(votes[0].RankedOptionIDs, []string{keep.ID}) {
		t.Fatalf("deleted option left in ranked list: %v", votes[0].RankedOptionIDs)
	}
	if len(votes[0].SelectedOptionIDs) != 0 {
		t.Fatalf("deleted option left in selected list: %v", votes[0].SelectedOptionIDs)
	}

	confirmations, err := testStore.ListDecisionConfirmations(proposal.ID, models.DimensionPlace)
	if err != nil {
		t.Fatalf("list confirmations: %v", err)
	}
	if !reflect.DeepEqual(confirmations[0].OptionIDs, []string{keep.ID}) {
		t.Fatalf("deleted option left in confirmation: %v", confirmations[0].OptionIDs)
	}

	if _, err := testStore.FindDecisionOption(doomed.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted option, got %v", err)
	}
}

func TestUpsertDecisionConfigKeepsOneRow(t *testing.T) {
	testStore := newTestStore(t)
	proposal := seedProposal(t, testStore)

	first := models.DecisionConfig{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, Mode: models.ModeSingle, Status: models.DecisionOpen, UpdatedAt: time.Now()}
	if err := testStore.UpsertDecisionConfig(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := models.DecisionConfig{ID: uuid.NewString(), ProposalID: proposal.ID, Dimension: models.DimensionTime, Mode: models.ModeRanked, Status: models.DecisionOpen, UpdatedAt: time.Now()}
	if err := testStore.UpsertDecisionConfig(&second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert must reuse the existing row, got %s and %s", first.ID, second.ID)
	}

	config, found, err := testStore.FindDecisionConfig(proposal.ID, models.DimensionTime)
	if err != nil || !found {
		t.Fatalf("find config (found=%v): %v", found, err)
	}
	if config.Mode != models.ModeRanked {
		t.Fatalf("expected ranked mode after upsert, got %s", config.Mode)
	}
}
