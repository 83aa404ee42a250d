package services

import (
	"reflect"
	"testing"
)

func TestSetDatesNormalizesInput(t *testing.T) {
	testStore := newTestStore(t)
	service := NewAvailabilityService(testStore)
	proposal := createTestProposal(t, testStore, "alice")

	availability, err := service.SetDates("alice", proposal.ID, []string{"2026-05-02", "2026-05-01", "2026-05-02", "junk"}, []string{"evening", "evening", "morning"})
	if err != nil {
		t.Fatalf("SetDates: %v", err)
	}
	if !reflect.DeepEqual(availability.Dates, []string{"2026-05-01", "2026-05-02"}) {
		t.Fatalf("unexpected dates: %v", availability.Dates)
	}
	if !reflect.DeepEqual(availability.TimeSlots, []string{"evening", "morning"}) {
		t.Fatalf("unexpected time slots: %v", availability.TimeSlots)
	}
}

func TestSetDatesKeepsOneRecordPerUser(t *testing.T) {
	testStore := newTestStore(t)
	service := NewAvailabilityService(testStore)
	proposal := createTestProposal(t, testStore, "alice")

	first, err := service.SetDates("alice", proposal.ID, []string{"2026-05-01"}, nil)
	if err != nil {
		t.Fatalf("first SetDates: %v", err)
	}
	second, err := service.SetDates("alice", proposal.ID, []string{"2026-05-03"}, nil)
	if err != nil {
		t.Fatalf("second SetDates: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("rewrite must keep the record id, got %s then %s", first.ID, second.ID)
	}

	availabilities, err := testStore.ListProposalAvailabilities(proposal.ID)
	if err != nil {
		t.Fatalf("list availabilities: %v", err)
	}
	if len(availabilities) != 1 {
		t.Fatalf("expected one record, got %d", len(availabilities))
	}
	if !reflect.DeepEqual(availabilities[0].Dates, []string{"2026-05-03"}) {
		t.Fatalf("last write must win, got %v", availabilities[0].Dates)
	}
}

func TestSetDatesEmptySetDeletesRecord(t *testing.T) {
	testStore := newTestStore(t)
	service := NewAvailabilityService(testStore)
	proposal := createTestProposal(t, testStore, "alice")

	if _, err := service.SetDates("alice", proposal.ID, []string{"2026-05-01"}, nil); err != nil {
		t.Fatalf("SetDates: %v", err)
	}
	if _, err := service.SetDates("alice", proposal.ID, nil, nil); err != nil {
		t.Fatalf("clearing SetDates: %v", err)
	}

	_, found, err := testStore.FindAvailability("alice", proposal.ID)
	if err != nil {
		t.Fatalf("find availability: %v", err)
	}
	if found {
		t.Fatalf("empty date set must delete the record")
	}

	// clearing an absent record is a no-op
	if _, err := service.SetDates("alice", proposal.ID, []string{"junk-only"}, nil); err != nil {
		t.Fatalf("SetDates with unparseable dates: %v", err)
	}
}
