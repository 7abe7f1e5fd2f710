package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

type TieBreakMethod string

const (
	TieBreakCreationDate     TieBreakMethod = "creation_date"
	TieBreakDurationShortest TieBreakMethod = "duration_shortest"
	TieBreakDurationLongest  TieBreakMethod = "duration_longest"
	TieBreakAlphabetical     TieBreakMethod = "alphabetical"
)

const (
	// Average productive hours assumed per workday when converting item
	// duration into days of work for slack computation.
	productiveHoursPerDay = 7.0

	maxDeadlinePressure = 1000.0

	hardDeadlineFactor = 10.0
	softDeadlineFactor = 5.0

	// Pressure contributions above neutral are multiplied by this before
	// entering the adjusted score, so that zero-slack items (pressure 1000)
	// always outrank any importance×urgency combination.
	pressureWeight = 100.0
)

// Scorer computes priority scores for one run. Now is the reference time for
// all deadline arithmetic.
type Scorer struct {
	Now      time.Time
	TieBreak TieBreakMethod
}

// Score computes a PriorityScore per item and returns them sorted descending
// by adjusted score, ties broken by the configured method, with FinalRank
// recorded post-sort (rank 1 is scheduled first).
func (s Scorer) Score(items []Item, graph map[string][]string) []PriorityScore {
	dependents := dependentsOf(items, graph)
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	scores := make([]PriorityScore, 0, len(items))
	for _, it := range items {
		raw := float64(it.Importance * it.Urgency)
		pressure := s.deadlinePressure(it)
		fanOut := math.Log(float64(len(dependents[it.ID]))+1) * 2
		asyncBonus := s.asyncUrgencyBonus(it, byID, dependents)

		adjusted := raw + fanOut + asyncBonus
		if pressure > 1 {
			adjusted += pressure * pressureWeight
		}

		scores = append(scores, PriorityScore{
			ItemID:        it.ID,
			RawScore:      raw,
			AdjustedScore: adjusted,
			TieBreakValue: s.tieBreakValue(it),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.AdjustedScore != b.AdjustedScore {
			return a.AdjustedScore > b.AdjustedScore
		}
		if s.TieBreak == TieBreakAlphabetical {
			return byID[a.ItemID].Name < byID[b.ItemID].Name
		}
		return a.TieBreakValue < b.TieBreakValue
	})
	for i := range scores {
		scores[i].FinalRank = i + 1
	}

	return scores
}

// deadlinePressure maps slack (days until deadline minus days of work still
// required) to a multiplier in [1.0, 1000]. No deadline is neutral (1.0);
// zero or negative slack saturates at the maximum.
func (s Scorer) deadlinePressure(it Item) float64 {
	if it.Deadline == nil {
		return 1.0
	}

	workDaysNeeded := float64(it.DurationMinutes) / 60.0 / productiveHoursPerDay
	daysUntil := it.Deadline.Sub(s.Now).Hours() / 24.0
	slackDays := daysUntil - workDaysNeeded

	if slackDays <= 0 {
		return maxDeadlinePressure
	}

	factor := softDeadlineFactor
	if it.DeadlineKind == model.DeadlineHard {
		factor = hardDeadlineFactor
	}
	pressure := factor / math.Pow(slackDays+0.4, 1.1)

	// Items with loose deadlines still rank marginally above deadline-free
	// items of equal importance/urgency.
	basePressure := 1.0
	if slackDays > 5 {
		basePressure = 1.1
	}
	if pressure < basePressure {
		return basePressure
	}
	if pressure > maxDeadlinePressure {
		return maxDeadlinePressure
	}
	return pressure
}

// asyncUrgencyBonus pulls forward items that start a long external wait. The
// bonus scales with how tightly the trigger's duration, wait, and downstream
// work compress against the earliest deadline in the dependent chain.
func (s Scorer) asyncUrgencyBonus(it Item, byID map[string]Item, dependents map[string][]string) float64 {
	if !it.IsAsyncTrigger || it.AsyncWaitMinutes <= 0 {
		return 0
	}

	chain := transitiveDependents(it.ID, dependents)
	if len(chain) == 0 {
		return 0
	}

	var earliest *time.Time
	dependentMinutes := 0
	for _, id := range chain {
		dep := byID[id]
		dependentMinutes += dep.DurationMinutes
		if dep.Deadline != nil && (earliest == nil || dep.Deadline.Before(*earliest)) {
			earliest = dep.Deadline
		}
	}
	if earliest == nil {
		return 0
	}

	timeAvailable := earliest.Sub(s.Now).Minutes()
	if timeAvailable <= 0 {
		return 50
	}

	totalTimeNeeded := float64(it.DurationMinutes + it.AsyncWaitMinutes + dependentMinutes)
	ratio := totalTimeNeeded / timeAvailable
	switch {
	case ratio >= 1.0:
		return 30
	case ratio >= 0.8:
		return 20
	case ratio >= 0.6:
		return 10
	default:
		return 5
	}
}

func (s Scorer) tieBreakValue(it Item) float64 {
	switch s.TieBreak {
	case TieBreakDurationShortest:
		return float64(it.DurationMinutes)
	case TieBreakDurationLongest:
		return -float64(it.DurationMinutes)
	case TieBreakAlphabetical:
		return 0 // compared by name in the sort
	default: // creation_date: earlier created first
		return float64(it.CreatedAt.UnixNano())
	}
}
