// Package calendar builds weekly work-day templates for the scheduling
// engine.
package calendar

import "github.com/msageha/dayplan/internal/model"

// DefaultWeek returns the standard template: Monday through Friday
// 09:00–17:00 with a fixed lunch break and 240/180-minute focused/admin
// caps; weekends carry no capacity.
func DefaultWeek() []model.WorkDayTemplate {
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	templates := make([]model.WorkDayTemplate, 0, 7)
	for _, d := range weekdays {
		templates = append(templates, model.WorkDayTemplate{
			DayOfWeek:         d,
			IsWorkingDay:      true,
			WindowStart:       "09:00",
			WindowEnd:         "17:00",
			Breaks:            []model.TimeRange{{Start: "12:00", End: "13:00"}},
			MaxFocusedMinutes: 240,
			MaxAdminMinutes:   180,
		})
	}
	templates = append(templates,
		model.WorkDayTemplate{DayOfWeek: "saturday"},
		model.WorkDayTemplate{DayOfWeek: "sunday"},
	)
	return templates
}

// Resolve returns the configured calendar, falling back to DefaultWeek when
// the config carries none.
func Resolve(cfg model.Config) []model.WorkDayTemplate {
	if len(cfg.Calendar) > 0 {
		return cfg.Calendar
	}
	return DefaultWeek()
}
