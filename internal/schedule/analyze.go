package schedule

import (
	"fmt"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

// Analyze aggregates totals, the completion projection, and diagnostic
// warnings over an assignment outcome. A run is successful if anything was
// placed, or if there was nothing to place at all.
func Analyze(scheduled []ScheduledItem, unscheduled []Item, now time.Time) Result {
	res := Result{
		ScheduledItems:      scheduled,
		UnscheduledItems:    unscheduled,
		ProjectedCompletion: now,
	}

	var focusedMinutes, adminMinutes int
	days := make(map[string]bool)
	for _, si := range scheduled {
		if si.WorkType == model.WorkTypeAdmin {
			adminMinutes += si.DurationMinutes
		} else {
			focusedMinutes += si.DurationMinutes
		}
		days[si.ScheduledDate.Format("2006-01-02")] = true
		if si.ScheduledEnd.After(res.ProjectedCompletion) {
			res.ProjectedCompletion = si.ScheduledEnd
		}
	}

	res.TotalFocusedHours = float64(focusedMinutes) / 60.0
	res.TotalAdminHours = float64(adminMinutes) / 60.0
	res.TotalWorkDays = len(days)
	res.Success = len(scheduled) > 0 || len(unscheduled) == 0

	if len(unscheduled) > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d item(s) could not be scheduled within the planning horizon", len(unscheduled)))
		res.Suggestions = append(res.Suggestions,
			"extend the planning horizon, raise daily capacity, or reduce scope to fit the remaining items")
	}

	return res
}
