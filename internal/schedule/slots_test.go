package schedule

import (
	"testing"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

func weekdayTemplates() []model.WorkDayTemplate {
	days := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	templates := make([]model.WorkDayTemplate, 0, 7)
	for _, d := range days {
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

func TestGenerateSlots_WeekShape(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday
	end := start.AddDate(0, 0, 6)                        // through Sunday

	slots, err := GenerateSlots(weekdayTemplates(), start, end, true)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) != 5 {
		t.Fatalf("expected 5 working-day slots, got %d", len(slots))
	}
	for _, s := range slots {
		if !s.IsWorkingDay {
			t.Errorf("slot %s not marked working day", s.ID)
		}
		if s.Date.Weekday() == time.Saturday || s.Date.Weekday() == time.Sunday {
			t.Errorf("weekend slot generated: %s", s.ID)
		}
	}
	if slots[0].ID != "slot_2026-03-02" {
		t.Errorf("unexpected first slot ID %q", slots[0].ID)
	}
}

func TestGenerateSlots_CapacitySplit(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := GenerateSlots(weekdayTemplates(), start, start, true)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}

	// 08:00 window minus 60min lunch = 420 available.
	// focused = min(240, 420*0.57=239) = 239; admin = min(180, 420-239) = 180.
	s := slots[0]
	if s.FocusedCapacity != 239 {
		t.Errorf("expected focused capacity 239, got %d", s.FocusedCapacity)
	}
	if s.AdminCapacity != 180 {
		t.Errorf("expected admin capacity 180, got %d", s.AdminCapacity)
	}
	if s.RemainingFocused != s.FocusedCapacity || s.RemainingAdmin != s.AdminCapacity {
		t.Error("remaining capacity must start at initial capacity")
	}
	if want := start.Add(9 * time.Hour); !s.WindowStart.Equal(want) {
		t.Errorf("expected window start %v, got %v", want, s.WindowStart)
	}
}

func TestGenerateSlots_ExplicitFocusedShare(t *testing.T) {
	tpl := weekdayTemplates()
	for i := range tpl {
		tpl[i].FocusedShare = 0.5
		tpl[i].MaxFocusedMinutes = 0
		tpl[i].MaxAdminMinutes = 0
	}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(tpl, start, start, true)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if slots[0].FocusedCapacity != 210 || slots[0].AdminCapacity != 210 {
		t.Errorf("expected even 210/210 split, got %d/%d", slots[0].FocusedCapacity, slots[0].AdminCapacity)
	}
}

func TestGenerateSlots_MeetingsClippedToWindow(t *testing.T) {
	tpl := weekdayTemplates()
	for i := range tpl {
		// One meeting inside the window, one mostly before it.
		tpl[i].Meetings = []model.TimeRange{
			{Start: "14:00", End: "15:00"},
			{Start: "08:00", End: "09:30"},
		}
	}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(tpl, start, start, true)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	// 480 - 60 lunch - 60 meeting - 30 clipped overlap = 330 available.
	// focused = min(240, 330*0.57=188) = 188; admin = min(180, 330-188=142) = 142.
	s := slots[0]
	if s.FocusedCapacity != 188 {
		t.Errorf("expected focused 188, got %d", s.FocusedCapacity)
	}
	if s.AdminCapacity != 142 {
		t.Errorf("expected admin 142, got %d", s.AdminCapacity)
	}
}

func TestGenerateSlots_NoLimits(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := GenerateSlots(weekdayTemplates(), start, start, false)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	s := slots[0]
	if s.FocusedCapacity != 239 || s.AdminCapacity != 181 {
		t.Errorf("expected uncapped 239/181, got %d/%d", s.FocusedCapacity, s.AdminCapacity)
	}
}

func TestGenerateSlots_DefaultHorizon(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := GenerateSlots(weekdayTemplates(), start, time.Time{}, true)
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	// 31 calendar days (inclusive) starting on a Monday: 23 weekdays.
	if len(slots) != 23 {
		t.Errorf("expected 23 slots over the default horizon, got %d", len(slots))
	}
}

func TestGenerateSlots_InvalidRange(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, err := GenerateSlots(weekdayTemplates(), start, start.AddDate(0, 0, -1), true); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestParseClock(t *testing.T) {
	if m, err := parseClock("09:30"); err != nil || m != 570 {
		t.Errorf("expected 570, got %d (%v)", m, err)
	}
	if _, err := parseClock("9am"); err == nil {
		t.Error("expected error for invalid clock string")
	}
}
