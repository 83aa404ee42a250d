package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pverlaine/convene/internal/models"
)

// OverlapParams constrain the sejour window search. Zero values fall back
// to the defaults below.
type OverlapParams struct {
	MinNights       int
	MinParticipants int
	MaxWindows      int
}

const (
	DefaultMinNights       = 2
	DefaultMinParticipants = 2
	DefaultMaxWindows      = 8
)

func (params OverlapParams) withDefaults() OverlapParams {
	if params.MinNights <= 0 {
		params.MinNights = DefaultMinNights
	}
	if params.MinParticipants <= 0 {
		params.MinParticipants = DefaultMinParticipants
	}
	if params.MaxWindows <= 0 {
		params.MaxWindows = DefaultMaxWindows
	}
	return params
}

// OverlapWindow is a run of consecutive calendar dates on which the same
// participants are all available.
type OverlapWindow struct {
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Nights             int      `json:"nights"`
	ParticipantCount   int      `json:"participant_count"`
	ParticipantUserIDs []string `json:"participant_user_ids"`
	Label              string   `json:"label"`
}

// Key uniquely identifies a window within one computation and doubles as
// the dedup key carried on synthesized options.
func (window OverlapWindow) Key() string {
	return window.StartDate + "|" + window.EndDate + "|" + strings.Join(window.ParticipantUserIDs, ",")
}

type DateRange struct {
	StartDate string
	EndDate   string
	Dates     []string
}

// ContiguousDateRanges splits a date set into maximal runs of consecutive
// calendar days.
func ContiguousDateRanges(dates []string) []DateRange {
	sortedUnique := NormalizeDates(dates)
	if len(sortedUnique) == 0 {
		return []DateRange{}
	}

	ranges := make([]DateRange, 0)
	start := sortedUnique[0]
	currentDates := []string{sortedUnique[0]}

	for index := 1; index < len(sortedUnique); index++ {
		current := sortedUnique[index]
		previous := sortedUnique[index-1]

		if ConsecutiveDays(previous, current) {
			currentDates = append(currentDates, current)
			continue
		}

		ranges = append(ranges, DateRange{
			StartDate: start,
			EndDate:   currentDates[len(currentDates)-1],
			Dates:     currentDates,
		})
		start = current
		currentDates = []string{current}
	}

	ranges = append(ranges, DateRange{
		StartDate: start,
		EndDate:   currentDates[len(currentDates)-1],
		Dates:     currentDates,
	})

	return ranges
}

// BuildDateUserIndex maps each marked ISO date to the set of users available
// on it, restricted to one proposal's availability records.
func BuildDateUserIndex(availabilities []models.Availability, proposalID string) map[string]map[string]bool {
	dateToUsers := make(map[string]map[string]bool)
	for _, availability := range availabilities {
		if availability.ProposalID != proposalID {
			continue
		}
		for _, date := range NormalizeDates(availability.Dates) {
			if dateToUsers[date] == nil {
				dateToUsers[date] = make(map[string]bool)
			}
			dateToUsers[date][availability.UserID] = true
		}
	}
	return dateToUsers
}

// ComputeOverlapWindows finds every run of consecutive marked dates where at
// least MinParticipants users are simultaneously available for at least
// MinNights nights. Extending a window only ever shrinks its participant
// set, so each start index terminates as soon as the set drops below the
// minimum or a calendar gap appears. Results are ordered by participant
// count, then nights, then start date, and capped at MaxWindows.
func ComputeOverlapWindows(availabilities []models.Availability, proposalID string, params OverlapParams) []OverlapWindow {
	params = params.withDefaults()

	dateToUsers := BuildDateUserIndex(availabilities, proposalID)
	sortedDates := make([]string, 0, len(dateToUsers))
	for date := range dateToUsers {
		sortedDates = append(sortedDates, date)
	}
	sort.Strings(sortedDates)

	windows := make([]OverlapWindow, 0)
	seenKeys := make(map[string]bool)

	for startIndex := 0; startIndex < len(sortedDates); startIndex++ {
		startDate := sortedDates[startIndex]
		activeParticipants := copyUserSet(dateToUsers[startDate])
		if len(activeParticipants) < params.MinParticipants {
			continue
		}

		for endIndex := startIndex; endIndex < len(sortedDates); endIndex++ {
			endDate := sortedDates[endIndex]

			if endIndex > startIndex && !ConsecutiveDays(sortedDates[endIndex-1], endDate) {
				break
			}

			if endIndex > startIndex {
				activeParticipants = intersectUserSets(activeParticipants, dateToUsers[endDate])
			}
			if len(activeParticipants) < params.MinParticipants {
				break
			}

			nights := NightsBetween(startDate, endDate)
			if nights < params.MinNights {
				continue
			}

			participantUserIDs := sortedUserIDs(activeParticipants)
			window := OverlapWindow{
				StartDate:          startDate,
				EndDate:            endDate,
				Nights:             nights,
				ParticipantCount:   len(participantUserIDs),
				ParticipantUserIDs: participantUserIDs,
			}
			window.Label = windowLabel(window)

			if seenKeys[window.Key()] {
				continue
			}
			seenKeys[window.Key()] = true
			windows = append(windows, window)
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].ParticipantCount != windows[j].ParticipantCount {
			return windows[i].ParticipantCount > windows[j].ParticipantCount
		}
		if windows[i].Nights != windows[j].Nights {
			return windows[i].Nights > windows[j].Nights
		}
		return windows[i].StartDate < windows[j].StartDate
	})

	if len(windows) > params.MaxWindows {
		windows = windows[:params.MaxWindows]
	}
	return windows
}

// BuildOverlapOptions turns windows into time-dimension options, skipping
// windows whose dedup key already exists among the current options.
func BuildOverlapOptions(windows []OverlapWindow, existingOptions []models.DecisionOption, proposalID string, createdBy string, now time.Time) []models.DecisionOption {
	existingKeys := make(map[string]bool)
	for _, option := range existingOptions {
		if windowKey := option.Metadata[models.OptionMetaWindowKey]; windowKey != "" {
			existingKeys[windowKey] = true
		}
	}

	synthesized := make([]models.DecisionOption, 0, len(windows))
	for _, window := range windows {
		windowKey := window.Key()
		if existingKeys[windowKey] {
			continue
		}

		synthesized = append(synthesized, models.DecisionOption{
			ProposalID: proposalID,
			Dimension:  models.DimensionTime,
			Label:      window.Label,
			CreatedBy:  createdBy,
			CreatedAt:  now,
			Metadata: map[string]string{
				models.OptionMetaWindowKey:        windowKey,
				models.OptionMetaStartDate:        window.StartDate,
				models.OptionMetaEndDate:          window.EndDate,
				models.OptionMetaNights:           fmt.Sprintf("%d", window.Nights),
				models.OptionMetaParticipantCount: fmt.Sprintf("%d", window.ParticipantCount),
				models.OptionMetaParticipantIDs:   strings.Join(window.ParticipantUserIDs, ","),
				models.OptionMetaSource:           models.OptionSourceOverlap,
			},
		})
	}
	return synthesized
}

func windowLabel(window OverlapWindow) string {
	start, startErr := ParseDay(window.StartDate)
	end, endErr := ParseDay(window.EndDate)
	if startErr != nil || endErr != nil {
		return window.StartDate + " - " + window.EndDate
	}

	return fmt.Sprintf("%s - %s (%d %s, %d %s)",
		start.Format("Jan 2"),
		end.Format("Jan 2"),
		window.Nights,
		pluralize("night", window.Nights),
		window.ParticipantCount,
		pluralize("person", window.ParticipantCount),
	)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

func copyUserSet(users map[string]bool) map[string]bool {
	copied := make(map[string]bool, len(users))
	for userID := range users {
		copied[userID] = true
	}
	return copied
}

func intersectUserSets(left map[string]bool, right map[string]bool) map[string]bool {
	intersection := make(map[string]bool, len(left))
	for userID := range left {
		if right[userID] {
			intersection[userID] = true
		}
	}
	return intersection
}

func sortedUserIDs(users map[string]bool) []string {
	userIDs := make([]string, 0, len(users))
	for userID := range users {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	return userIDs
}
