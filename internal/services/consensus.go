package services

import (
	"math"
	"sort"

	"github.com/pverlaine/convene/internal/models"
)

// BestDatesLimit caps the number of dates surfaced as best picks.
const BestDatesLimit = 5

// bestDateThreshold is the share of the group that must be available on a
// date before it counts as a best pick.
const bestDateThreshold = 0.6

// DateAvailabilityCounts maps each marked ISO date to how many users of one
// proposal are available on it.
func DateAvailabilityCounts(availabilities []models.Availability, proposalID string) map[string]int {
	counts := make(map[string]int)
	for date, users := range BuildDateUserIndex(availabilities, proposalID) {
		counts[date] = len(users)
	}
	return counts
}

// DateConsensusPercent is round(available / total * 100) for one date,
// 0 when the group is empty.
func DateConsensusPercent(availableCount int, totalUsers int) int {
	if totalUsers <= 0 {
		return 0
	}
	return int(math.Round(float64(availableCount) / float64(totalUsers) * 100))
}

// ProposalConsensus is the strongest single-date consensus across every
// marked date of a proposal.
func ProposalConsensus(availabilities []models.Availability, proposalID string, totalUsers int) int {
	best := 0
	for _, count := range DateAvailabilityCounts(availabilities, proposalID) {
		if percent := DateConsensusPercent(count, totalUsers); percent > best {
			best = percent
		}
	}
	return best
}

// DateConsensus pairs a date with its availability count and percentage.
type DateConsensus struct {
	Date           string `json:"date"`
	AvailableCount int    `json:"available_count"`
	Percent        int    `json:"percent"`
}

// BestDates returns up to BestDatesLimit dates on which at least 60% of the
// group is available, strongest first, ties broken by earlier date.
func BestDates(availabilities []models.Availability, proposalID string, totalUsers int) []DateConsensus {
	if totalUsers <= 0 {
		return []DateConsensus{}
	}
	required := int(math.Ceil(float64(totalUsers) * bestDateThreshold))

	candidates := make([]DateConsensus, 0)
	for date, count := range DateAvailabilityCounts(availabilities, proposalID) {
		if count < required {
			continue
		}
		candidates = append(candidates, DateConsensus{
			Date:           date,
			AvailableCount: count,
			Percent:        DateConsensusPercent(count, totalUsers),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AvailableCount != candidates[j].AvailableCount {
			return candidates[i].AvailableCount > candidates[j].AvailableCount
		}
		return candidates[i].Date < candidates[j].Date
	})

	if len(candidates) > BestDatesLimit {
		candidates = candidates[:BestDatesLimit]
	}
	return candidates
}
