package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

func fixedEngine() *Engine {
	e := NewEngine()
	e.SetClock(func() time.Time { return scoreNow })
	return e
}

func plainTask(id string, minutes int) model.Task {
	return model.Task{
		ID:              id,
		Name:            id,
		DurationMinutes: minutes,
		WorkType:        model.WorkTypeFocused,
		Importance:      5,
		Urgency:         5,
		CreatedAt:       scoreNow.Add(-24 * time.Hour),
	}
}

func TestSchedule_CycleFailsWholeRun(t *testing.T) {
	a := plainTask("a", 60)
	a.Dependencies = []string{"b"}
	b := plainTask("b", 60)
	b.Dependencies = []string{"a"}

	res := fixedEngine().Schedule([]model.Task{a, b}, nil, weekdayTemplates(), DefaultConstraints())

	if res.Success {
		t.Error("expected success=false for cyclic input")
	}
	if len(res.ScheduledItems) != 0 {
		t.Errorf("expected empty schedule, got %d items", len(res.ScheduledItems))
	}
	if len(res.UnscheduledItems) != 2 {
		t.Errorf("expected all input items unscheduled, got %d", len(res.UnscheduledItems))
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Kind != ConflictDependencyCycle {
		t.Fatalf("expected one dependency_cycle conflict, got %+v", res.Conflicts)
	}
	ids := strings.Join(res.Conflicts[0].ItemIDs, ",")
	if !strings.Contains(ids, "task_a") || !strings.Contains(ids, "task_b") {
		t.Errorf("conflict must name the cycle members, got %q", ids)
	}
	if res.Conflicts[0].Suggestion == "" {
		t.Error("cycle conflict must carry a suggested resolution")
	}
}

func TestSchedule_AcyclicHasNoCycleConflict(t *testing.T) {
	a := plainTask("a", 60)
	b := plainTask("b", 60)
	b.Dependencies = []string{"a"}

	res := fixedEngine().Schedule([]model.Task{a, b}, nil, weekdayTemplates(), DefaultConstraints())
	for _, c := range res.Conflicts {
		if c.Kind == ConflictDependencyCycle {
			t.Errorf("unexpected cycle conflict: %+v", c)
		}
	}
}

func TestSchedule_EndToEndDeadlineOrdering(t *testing.T) {
	// Two independent 120-minute focused tasks, one due tomorrow 17:00
	// (hard), one due a week out (hard). Both must be scheduled; the
	// near-deadline one starts on day 1, before the far one.
	near := plainTask("near", 120)
	nearDeadline := time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC)
	near.Deadline = &nearDeadline
	near.DeadlineKind = model.DeadlineHard

	far := plainTask("far", 120)
	farDeadline := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)
	far.Deadline = &farDeadline
	far.DeadlineKind = model.DeadlineHard

	tpl := weekdayTemplates()
	for i := range tpl {
		tpl[i].WindowEnd = "18:00"
	}

	c := DefaultConstraints()
	c.EarliestStart = scoreNow
	res := fixedEngine().Schedule([]model.Task{far, near}, nil, tpl, c)

	if !res.Success {
		t.Fatalf("expected success, got conflicts %+v", res.Conflicts)
	}
	if len(res.ScheduledItems) != 2 {
		t.Fatalf("expected both items scheduled, got %d", len(res.ScheduledItems))
	}

	var nearItem, farItem ScheduledItem
	for _, si := range res.ScheduledItems {
		switch si.ID {
		case "task_near":
			nearItem = si
		case "task_far":
			farItem = si
		}
	}
	if !nearItem.ScheduledDate.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("near-deadline item must land on day 1, got %v", nearItem.ScheduledDate)
	}
	if !nearItem.ScheduledStart.Before(farItem.ScheduledStart) {
		t.Errorf("near-deadline item must start before the far one: %v vs %v",
			nearItem.ScheduledStart, farItem.ScheduledStart)
	}
}

func TestSchedule_ImpossibleDeadlineBestEffort(t *testing.T) {
	// 600-minute task due in 6 hours: unmeetable, but it must still be
	// placed if any slot has the capacity, never failing the run.
	doomed := plainTask("doomed", 600)
	deadline := scoreNow.Add(6 * time.Hour)
	doomed.Deadline = &deadline
	doomed.DeadlineKind = model.DeadlineHard

	// Caps below 600: the task cannot be placed anywhere.
	res := fixedEngine().Schedule([]model.Task{doomed}, nil, weekdayTemplates(), DefaultConstraints())
	if len(res.ScheduledItems) != 0 {
		t.Errorf("expected no placement under 240-minute caps, got %v", res.ScheduledItems)
	}
	if len(res.UnscheduledItems) != 1 {
		t.Errorf("expected task in unscheduled, got %d", len(res.UnscheduledItems))
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the unscheduled item")
	}

	// Lift caps and widen the focused share: now a slot can hold 600
	// minutes of focused work (12h window - 1h lunch = 660 available,
	// 0.95 share = 627 focused).
	tpl := weekdayTemplates()
	for i := range tpl {
		tpl[i].WindowStart = "08:00"
		tpl[i].WindowEnd = "20:00"
		tpl[i].MaxFocusedMinutes = 660
		tpl[i].FocusedShare = 0.95
	}
	res = fixedEngine().Schedule([]model.Task{doomed}, nil, tpl, DefaultConstraints())
	if len(res.ScheduledItems) != 1 {
		t.Fatalf("expected best-effort placement, got unscheduled %v", res.UnscheduledItems)
	}
	if !res.Success {
		t.Error("best-effort placement must report success")
	}
}

func TestSchedule_EmptyInputSucceeds(t *testing.T) {
	res := fixedEngine().Schedule(nil, nil, weekdayTemplates(), DefaultConstraints())
	if !res.Success {
		t.Error("empty input must report success")
	}
	if !res.ProjectedCompletion.Equal(scoreNow) {
		t.Errorf("expected projected completion at reference time, got %v", res.ProjectedCompletion)
	}
}

func TestSchedule_MalformedInputIsContained(t *testing.T) {
	bad := plainTask("bad", -5)

	res := fixedEngine().Schedule([]model.Task{bad}, nil, weekdayTemplates(), DefaultConstraints())
	if res.Success {
		t.Error("expected success=false for malformed input")
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Kind != ConflictCapacityExceeded {
		t.Fatalf("expected one capacity_exceeded conflict, got %+v", res.Conflicts)
	}
	if !strings.Contains(res.Conflicts[0].Message, "duration_minutes") {
		t.Errorf("conflict must carry the underlying message, got %q", res.Conflicts[0].Message)
	}
	if len(res.UnscheduledItems) != 1 {
		t.Errorf("expected input items listed unscheduled, got %d", len(res.UnscheduledItems))
	}
}

func TestSchedule_WorkflowEndToEnd(t *testing.T) {
	deadline := time.Date(2026, 3, 6, 17, 0, 0, 0, time.UTC)
	wf := model.Workflow{
		ID:           "ship",
		Name:         "ship feature",
		Importance:   7,
		Urgency:      6,
		Deadline:     &deadline,
		DeadlineKind: model.DeadlineHard,
		CreatedAt:    scoreNow.Add(-48 * time.Hour),
		Steps: []model.WorkflowStep{
			{ID: "build", Name: "build", DurationMinutes: 120, WorkType: model.WorkTypeFocused},
			{ID: "test", Name: "test", DurationMinutes: 90, WorkType: model.WorkTypeFocused, DependsOn: []string{"build"}},
			{ID: "announce", Name: "announce", DurationMinutes: 30, WorkType: model.WorkTypeAdmin, DependsOn: []string{"test"}},
		},
	}

	res := fixedEngine().Schedule(nil, []model.Workflow{wf}, weekdayTemplates(), DefaultConstraints())
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Conflicts)
	}
	if len(res.ScheduledItems) != 3 {
		t.Fatalf("expected 3 steps scheduled, got %d", len(res.ScheduledItems))
	}

	byID := make(map[string]ScheduledItem)
	for _, si := range res.ScheduledItems {
		byID[si.ID] = si
	}
	build := byID["workflow_ship_step_build"]
	testStep := byID["workflow_ship_step_test"]
	announce := byID["workflow_ship_step_announce"]
	if build.ScheduledEnd.After(testStep.ScheduledStart) {
		t.Error("build must finish before test starts")
	}
	if testStep.ScheduledEnd.After(announce.ScheduledStart) {
		t.Error("test must finish before announce starts")
	}

	if res.TotalFocusedHours != 3.5 {
		t.Errorf("expected 3.5 focused hours, got %v", res.TotalFocusedHours)
	}
	if res.TotalAdminHours != 0.5 {
		t.Errorf("expected 0.5 admin hours, got %v", res.TotalAdminHours)
	}
	if !res.ProjectedCompletion.Equal(announce.ScheduledEnd) && !res.ProjectedCompletion.After(announce.ScheduledStart) {
		t.Errorf("projected completion must cover the last scheduled end, got %v", res.ProjectedCompletion)
	}
}

func TestSchedule_ReusableEngine(t *testing.T) {
	e := fixedEngine()
	tasks := []model.Task{plainTask("a", 60), plainTask("b", 60)}

	first := e.Schedule(tasks, nil, weekdayTemplates(), DefaultConstraints())
	second := e.Schedule(tasks, nil, weekdayTemplates(), DefaultConstraints())

	if len(first.ScheduledItems) != len(second.ScheduledItems) {
		t.Fatalf("engine reuse changed the outcome: %d vs %d",
			len(first.ScheduledItems), len(second.ScheduledItems))
	}
	for i := range first.ScheduledItems {
		if !first.ScheduledItems[i].ScheduledStart.Equal(second.ScheduledItems[i].ScheduledStart) {
			t.Error("engine reuse must be deterministic with a fixed clock")
		}
	}
}
