// Package schedule implements the scheduling engine: normalization of tasks
// and workflows into schedulable items, dependency-graph construction and
// cycle detection, priority scoring, calendar slot generation, and the
// dependency-respecting greedy assignment of items to slots.
package schedule

import (
	"time"

	"github.com/msageha/dayplan/internal/model"
)

// Item is the uniform unit of work the engine operates on, produced by
// NormalizeItems. The ID is the namespaced external form; Ref carries the
// same identity as structured data.
type Item struct {
	ID               string
	Ref              model.ItemRef
	Name             string
	DurationMinutes  int
	WorkType         model.WorkType
	Importance       int
	Urgency          int
	DependsOn        []string // namespaced item IDs
	AsyncWaitMinutes int
	IsAsyncTrigger   bool
	Deadline         *time.Time
	DeadlineKind     model.DeadlineKind
	Status           model.Status
	CreatedAt        time.Time
	StepIndex        int // position within the owning workflow; -1 for tasks
}

// PriorityScore is computed once per run from a stable snapshot of items and
// not mutated afterward.
type PriorityScore struct {
	ItemID        string
	RawScore      float64
	AdjustedScore float64
	TieBreakValue float64
	FinalRank     int
}

// TimeSlot is one working day's capacity window. Remaining capacity is
// decremented destructively during assignment, so a generated slot set must
// never be shared between two runs.
type TimeSlot struct {
	ID               string
	Date             time.Time
	WindowStart      time.Time
	WindowEnd        time.Time
	IsWorkingDay     bool
	FocusedCapacity  int // initial
	AdminCapacity    int // initial
	RemainingFocused int
	RemainingAdmin   int
	AssignedItems    []string
}

// ScheduledItem is an Item augmented with its placement. Immutable once
// produced.
type ScheduledItem struct {
	Item
	ScheduledDate  time.Time
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	SlotID         string
}

type ConflictKind string

const (
	ConflictDependencyCycle  ConflictKind = "dependency_cycle"
	ConflictCapacityExceeded ConflictKind = "capacity_exceeded"
)

// Conflict is a structured diagnostic attached to a failed or degraded run.
type Conflict struct {
	Kind       ConflictKind
	Message    string
	ItemIDs    []string
	Suggestion string
}

// Result is the sole output contract of the engine.
type Result struct {
	Success             bool
	ScheduledItems      []ScheduledItem
	UnscheduledItems    []Item
	Scores              []PriorityScore
	Slots               []TimeSlot
	TotalFocusedHours   float64
	TotalAdminHours     float64
	TotalWorkDays       int
	ProjectedCompletion time.Time
	Conflicts           []Conflict
	Warnings            []string
	Suggestions         []string
}
