package api

import (
	"net/http"
	"testing"

	"github.com/pverlaine/convene/internal/models"
)

func decisionPath(proposalID string, dimension string, suffix string) string {
	return "/api/proposals/" + proposalID + "/decisions/" + dimension + suffix
}

func TestDecisionSummaryCreatesConfig(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "Alice")
	proposal := createTestProposal(t, app, cookie, "Picnic", models.ActivityEvent)
	proposalID := proposal["id"].(string)

	summary := map[string]any{}
	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, models.DimensionRequirement, ""), nil, cookie), http.StatusOK, &summary)

	config := summary["config"].(map[string]any)
	if config["mode"] != models.ModeMulti {
		t.Fatalf("requirement dimension must default to multi, got %v", config["mode"])
	}
	if config["status"] != models.DecisionOpen {
		t.Fatalf("expected open status, got %v", config["status"])
	}
	if summary["can_confirm"] != true {
		t.Fatalf("creator must be able to confirm")
	}

	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, "mood", ""), nil, cookie), http.StatusBadRequest, nil)
}

func TestDecisionVotingFlow(t *testing.T) {
	app, _ := newTestApp(t)
	aliceCookie := registerTestUser(t, app, "Alice")
	bobCookie := registerTestUser(t, app, "Bob")
	proposal := createTestProposal(t, app, aliceCookie, "Picnic", models.ActivityEvent)
	proposalID := proposal["id"].(string)

	park := map[string]any{}
	req := jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/options"), map[string]any{"label": "Park"}, aliceCookie)
	doJSON(t, app, req, http.StatusCreated, &park)
	bar := map[string]any{}
	req = jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/options"), map[string]any{"label": "Bar"}, bobCookie)
	doJSON(t, app, req, http.StatusCreated, &bar)

	parkID := park["id"].(string)
	barID := bar["id"].(string)

	vote := jsonRequest(t, http.MethodPut, decisionPath(proposalID, models.DimensionPlace, "/vote"), map[string]any{"option_ids": []string{parkID}}, aliceCookie)
	doJSON(t, app, vote, http.StatusOK, nil)
	vote = jsonRequest(t, http.MethodPut, decisionPath(proposalID, models.DimensionPlace, "/vote"), map[string]any{"option_ids": []string{parkID}}, bobCookie)
	doJSON(t, app, vote, http.StatusOK, nil)

	summary := map[string]any{}
	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, models.DimensionPlace, ""), nil, aliceCookie), http.StatusOK, &summary)
	if summary["vote_count"].(float64) != 2 {
		t.Fatalf("expected 2 votes, got %v", summary["vote_count"])
	}
	options := summary["options"].([]any)
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	for _, raw := range options {
		entry := raw.(map[string]any)
		option := entry["option"].(map[string]any)
		switch option["id"] {
		case parkID:
			if entry["support"].(float64) != 2 || entry["support_percent"].(float64) != 100 {
				t.Fatalf("unexpected park support: %v", entry)
			}
		case barID:
			if entry["support"].(float64) != 0 {
				t.Fatalf("unexpected bar support: %v", entry)
			}
		}
	}

	// vote for a deleted option id
	vote = jsonRequest(t, http.MethodPut, decisionPath(proposalID, models.DimensionPlace, "/vote"), map[string]any{"option_ids": []string{"ghost"}}, bobCookie)
	doJSON(t, app, vote, http.StatusBadRequest, nil)

	doJSON(t, app, jsonRequest(t, http.MethodDelete, decisionPath(proposalID, models.DimensionPlace, "/vote"), nil, bobCookie), http.StatusOK, nil)
	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, models.DimensionPlace, ""), nil, aliceCookie), http.StatusOK, &summary)
	if summary["vote_count"].(float64) != 1 {
		t.Fatalf("expected 1 vote after retraction, got %v", summary["vote_count"])
	}
}

func TestDecisionModeUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerTestUser(t, app, "Alice")
	proposal := createTestProposal(t, app, cookie, "Picnic", models.ActivityEvent)
	proposalID := proposal["id"].(string)

	config := map[string]any{}
	req := jsonRequest(t, http.MethodPatch, decisionPath(proposalID, models.DimensionPlace, "/mode"), map[string]any{"mode": models.ModeRanked}, cookie)
	doJSON(t, app, req, http.StatusOK, &config)
	if config["mode"] != models.ModeRanked {
		t.Fatalf("expected ranked mode, got %v", config["mode"])
	}

	req = jsonRequest(t, http.MethodPatch, decisionPath(proposalID, models.DimensionPlace, "/mode"), map[string]any{"mode": "approval"}, cookie)
	doJSON(t, app, req, http.StatusBadRequest, nil)
}

func TestConfirmDecisionPermissionsAndEffects(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "Alice")
	creatorCookie := registerTestUser(t, app, "Bob")
	otherCookie := registerTestUser(t, app, "Carol")

	proposal := createTestProposal(t, app, creatorCookie, "Picnic", models.ActivityEvent)
	proposalID := proposal["id"].(string)

	option := map[string]any{}
	req := jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/options"), map[string]any{"label": "Park"}, creatorCookie)
	doJSON(t, app, req, http.StatusCreated, &option)
	optionID := option["id"].(string)

	confirm := jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/confirm"), map[string]any{"option_ids": []string{optionID}}, otherCookie)
	doJSON(t, app, confirm, http.StatusForbidden, nil)

	confirm = jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/confirm"), map[string]any{"option_ids": []string{}}, creatorCookie)
	doJSON(t, app, confirm, http.StatusBadRequest, nil)

	confirm = jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/confirm"), map[string]any{"option_ids": []string{optionID}}, creatorCookie)
	doJSON(t, app, confirm, http.StatusCreated, nil)

	updated := map[string]any{}
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/proposals/"+proposalID, nil, creatorCookie), http.StatusOK, &updated)
	if updated["status"] != models.StatusConfirmed {
		t.Fatalf("expected confirmed proposal, got %v", updated["status"])
	}
	specifics := updated["specifics"].(map[string]any)
	if specifics["location"] != "Park" {
		t.Fatalf("expected location Park, got %v", specifics["location"])
	}

	summary := map[string]any{}
	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, models.DimensionPlace, ""), nil, creatorCookie), http.StatusOK, &summary)
	latest := summary["latest_confirmation"].(map[string]any)
	if latest["confirmed_by"] == "" {
		t.Fatalf("missing confirmation record: %v", summary)
	}

	reopen := jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/reopen"), nil, creatorCookie)
	config := map[string]any{}
	doJSON(t, app, reopen, http.StatusOK, &config)
	if config["status"] != models.DecisionOpen {
		t.Fatalf("expected reopened dimension, got %v", config["status"])
	}
}

func TestOptionDeletePermissionsAndVoteCleanup(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestUser(t, app, "Alice")
	authorCookie := registerTestUser(t, app, "Bob")
	otherCookie := registerTestUser(t, app, "Carol")

	proposal := createTestProposal(t, app, authorCookie, "Picnic", models.ActivityEvent)
	proposalID := proposal["id"].(string)

	option := map[string]any{}
	req := jsonRequest(t, http.MethodPost, decisionPath(proposalID, models.DimensionPlace, "/options"), map[string]any{"label": "Park"}, authorCookie)
	doJSON(t, app, req, http.StatusCreated, &option)
	optionID := option["id"].(string)

	vote := jsonRequest(t, http.MethodPut, decisionPath(proposalID, models.DimensionPlace, "/vote"), map[string]any{"option_ids": []string{optionID}}, otherCookie)
	doJSON(t, app, vote, http.StatusOK, nil)

	doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/options/"+optionID, nil, otherCookie), http.StatusForbidden, nil)
	doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/options/"+optionID, nil, authorCookie), http.StatusOK, nil)

	summary := map[string]any{}
	doJSON(t, app, jsonRequest(t, http.MethodGet, decisionPath(proposalID, models.DimensionPlace, ""), nil, authorCookie), http.StatusOK, &summary)
	if len(summary["options"].([]any)) != 0 {
		t.Fatalf("option survived deletion: %v", summary["options"])
	}
}

func TestOverlapOptionGeneration(t *testing.T) {
	app, _ := newTestApp(t)
	aliceCookie := registerTestUser(t, app, "Alice")
	bobCookie := registerTestUser(t, app, "Bob")

	proposal := createTestProposal(t, app, aliceCookie, "Cabin weekend", models.ActivitySejour)
	proposalID := proposal["id"].(string)

	put := jsonRequest(t, http.MethodPut, "/api/proposals/"+proposalID+"/availability", map[string]any{
		"dates": []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04"},
	}, aliceCookie)
	doJSON(t, app, put, http.StatusOK, nil)
	put = jsonRequest(t, http.MethodPut, "/api/proposals/"+proposalID+"/availability", map[string]any{
		"dates": []string{"2026-01-02", "2026-01-03", "2026-01-04", "2026-01-05"},
	}, bobCookie)
	doJSON(t, app, put, http.StatusOK, nil)

	result := map[string]any{}
	generate := jsonRequest(t, http.MethodPost, "/api/proposals/"+proposalID+"/overlap-options", nil, aliceCookie)
	doJSON(t, app, generate, http.StatusCreated, &result)
	if result["created_count"].(float64) != 1 {
		t.Fatalf("expected 1 created option, got %v", result["created_count"])
	}
	created := result["options"].([]any)
	option := created[0].(map[string]any)
	if option["label"] != "Jan 2 - Jan 4 (2 nights, 2 persons)" {
		t.Fatalf("unexpected label: %v", option["label"])
	}

	regenerate := jsonRequest(t, http.MethodPost, "/api/proposals/"+proposalID+"/overlap-options", nil, aliceCookie)
	doJSON(t, app, regenerate, http.StatusCreated, &result)
	if result["created_count"].(float64) != 0 {
		t.Fatalf("regeneration must be idempotent, got %v", result["created_count"])
	}
}
