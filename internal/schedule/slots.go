package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

const (
	// DefaultHorizonDays is the planning horizon when no end date is given.
	DefaultHorizonDays = 30

	// defaultFocusedShare is the portion of available minutes offered to the
	// focused pool when the template does not set an explicit share.
	defaultFocusedShare = 0.57
)

// GenerateSlots expands the weekly template into one capacity slot per
// working day over [start, end]. A zero end defaults to DefaultHorizonDays
// after start. Break and meeting minutes inside the window are subtracted
// before the focused/admin split. When enforceLimits is false the per-day
// focused/admin caps are ignored and the full window is offered.
func GenerateSlots(templates []model.WorkDayTemplate, start, end time.Time, enforceLimits bool) ([]TimeSlot, error) {
	if end.IsZero() {
		end = start.AddDate(0, 0, DefaultHorizonDays)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid date range: end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	byWeekday := make(map[time.Weekday]model.WorkDayTemplate, len(templates))
	for _, tpl := range templates {
		wd, err := parseWeekday(tpl.DayOfWeek)
		if err != nil {
			return nil, err
		}
		byWeekday[wd] = tpl
	}

	loc := start.Location()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	var slots []TimeSlot
	for !day.After(last) {
		tpl, ok := byWeekday[day.Weekday()]
		if !ok || !tpl.IsWorkingDay {
			day = day.AddDate(0, 0, 1)
			continue
		}

		slot, err := buildDaySlot(day, tpl, enforceLimits)
		if err != nil {
			return nil, fmt.Errorf("slot for %s: %w", day.Format("2006-01-02"), err)
		}
		slots = append(slots, slot)
		day = day.AddDate(0, 0, 1)
	}

	return slots, nil
}

func buildDaySlot(day time.Time, tpl model.WorkDayTemplate, enforceLimits bool) (TimeSlot, error) {
	startMin, err := parseClock(tpl.WindowStart)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("window_start: %w", err)
	}
	endMin, err := parseClock(tpl.WindowEnd)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("window_end: %w", err)
	}
	if endMin <= startMin {
		return TimeSlot{}, fmt.Errorf("window_end %s not after window_start %s", tpl.WindowEnd, tpl.WindowStart)
	}

	available := endMin - startMin
	for _, r := range tpl.Breaks {
		m, err := rangeOverlap(r, startMin, endMin)
		if err != nil {
			return TimeSlot{}, fmt.Errorf("break: %w", err)
		}
		available -= m
	}
	for _, r := range tpl.Meetings {
		m, err := rangeOverlap(r, startMin, endMin)
		if err != nil {
			return TimeSlot{}, fmt.Errorf("meeting: %w", err)
		}
		available -= m
	}
	if available < 0 {
		available = 0
	}

	share := tpl.FocusedShare
	if share <= 0 || share >= 1 {
		share = defaultFocusedShare
	}
	focused := int(float64(available) * share)
	if enforceLimits && tpl.MaxFocusedMinutes > 0 && focused > tpl.MaxFocusedMinutes {
		focused = tpl.MaxFocusedMinutes
	}
	admin := available - focused
	if enforceLimits && tpl.MaxAdminMinutes > 0 && admin > tpl.MaxAdminMinutes {
		admin = tpl.MaxAdminMinutes
	}

	return TimeSlot{
		ID:               "slot_" + day.Format("2006-01-02"),
		Date:             day,
		WindowStart:      day.Add(time.Duration(startMin) * time.Minute),
		WindowEnd:        day.Add(time.Duration(endMin) * time.Minute),
		IsWorkingDay:     true,
		FocusedCapacity:  focused,
		AdminCapacity:    admin,
		RemainingFocused: focused,
		RemainingAdmin:   admin,
	}, nil
}

// rangeOverlap returns the minutes of r that fall inside [winStart, winEnd).
func rangeOverlap(r model.TimeRange, winStart, winEnd int) (int, error) {
	s, err := parseClock(r.Start)
	if err != nil {
		return 0, err
	}
	e, err := parseClock(r.End)
	if err != nil {
		return 0, err
	}
	if s > winStart {
		winStart = s
	}
	if e < winEnd {
		winEnd = e
	}
	if winEnd <= winStart {
		return 0, nil
	}
	return winEnd - winStart, nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("unknown day_of_week %q", s)
}
