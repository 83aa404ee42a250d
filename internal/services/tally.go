package services

import (
	"math"
	"sort"

	"github.com/pverlaine/convene/internal/models"
)

// Vote tallying is pure and never fails: votes referencing deleted options,
// or carrying no list for the mode being read, simply contribute nothing.

// ComputeFirstChoiceCounts counts, per option, the votes whose top ranked
// entry is that option. Every option id passed in gets an entry, zero counts
// included.
func ComputeFirstChoiceCounts(options []models.DecisionOption, votes []models.DecisionVote) map[string]int {
	counts := make(map[string]int, len(options))
	for _, option := range options {
		counts[option.ID] = 0
	}

	for _, vote := range votes {
		if len(vote.RankedOptionIDs) == 0 {
			continue
		}
		firstChoice := vote.RankedOptionIDs[0]
		if _, known := counts[firstChoice]; !known {
			continue
		}
		counts[firstChoice]++
	}

	return counts
}

// ComputeRankedScores accumulates Borda-style points: in a ranking of length
// L, position i (0-indexed) earns L-i points. Options missing from a voter's
// list earn nothing from that voter; ids not in the current option set are
// skipped.
func ComputeRankedScores(options []models.DecisionOption, votes []models.DecisionVote) map[string]int {
	scores := make(map[string]int, len(options))
	for _, option := range options {
		scores[option.ID] = 0
	}

	for _, vote := range votes {
		total := len(vote.RankedOptionIDs)
		for index, optionID := range vote.RankedOptionIDs {
			if _, known := scores[optionID]; !known {
				continue
			}
			scores[optionID] += total - index
		}
	}

	return scores
}

type RankedCandidate struct {
	Option           models.DecisionOption `json:"option"`
	Score            int                   `json:"score"`
	FirstChoiceCount int                   `json:"first_choice_count"`
}

// TopCandidates orders options by score descending, breaking ties by
// first-choice count descending; remaining ties keep the incoming option
// order. The result is truncated to limit.
func TopCandidates(options []models.DecisionOption, rankedScores map[string]int, firstChoiceCounts map[string]int, limit int) []RankedCandidate {
	candidates := make([]RankedCandidate, 0, len(options))
	for _, option := range options {
		candidates = append(candidates, RankedCandidate{
			Option:           option,
			Score:            rankedScores[option.ID],
			FirstChoiceCount: firstChoiceCounts[option.ID],
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].FirstChoiceCount > candidates[j].FirstChoiceCount
	})

	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// OptionSupport counts the votes backing an option: membership in the
// selected set for multi mode, top ranked entry for single and ranked modes.
func OptionSupport(mode string, optionID string, votes []models.DecisionVote) int {
	support := 0
	for _, vote := range votes {
		if mode == models.ModeMulti {
			if containsString(vote.SelectedOptionIDs, optionID) {
				support++
			}
			continue
		}
		if len(vote.RankedOptionIDs) > 0 && vote.RankedOptionIDs[0] == optionID {
			support++
		}
	}
	return support
}

// OptionSupportPercent is round(support / vote count * 100), 0 when no
// votes exist.
func OptionSupportPercent(mode string, optionID string, votes []models.DecisionVote) int {
	if len(votes) == 0 {
		return 0
	}
	support := OptionSupport(mode, optionID, votes)
	return int(math.Round(float64(support) / float64(len(votes)) * 100))
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
