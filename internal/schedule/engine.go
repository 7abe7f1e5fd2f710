package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/msageha/dayplan/internal/model"
)

// Constraints parameterize one scheduling run. AllowOverflow and
// StrictDependencies are carried for config compatibility with callers; the
// engine's placement rules do not currently branch on them.
type Constraints struct {
	TieBreak           TieBreakMethod
	AllowOverflow      bool
	EarliestStart      time.Time
	LatestEnd          time.Time
	StrictDependencies bool
	EnforceDailyLimits bool
}

func DefaultConstraints() Constraints {
	return Constraints{
		TieBreak:           TieBreakCreationDate,
		StrictDependencies: true,
		EnforceDailyLimits: true,
	}
}

// Engine runs the scheduling pipeline. It holds no per-run state, so a single
// instance may be reused across invocations as long as each run generates its
// own slot set (Schedule does).
type Engine struct {
	now       func() time.Time
	optimizer WaitOptimizer
}

func NewEngine() *Engine {
	return &Engine{
		now:       time.Now,
		optimizer: noopWaitOptimizer{},
	}
}

// SetClock replaces the reference-time source. Deadline pressure and the
// default horizon are computed against this clock.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetOptimizer replaces the post-assignment wait optimizer.
func (e *Engine) SetOptimizer(opt WaitOptimizer) {
	e.optimizer = opt
}

// Schedule runs the full pipeline: normalize → validate → graph → cycle
// check → score → slots → assign → optimize → analyze. It never returns an
// error or propagates a panic; every failure mode is folded into the Result
// per the three outcome classes (cycle, partial, internal).
func (e *Engine) Schedule(tasks []model.Task, workflows []model.Workflow, templates []model.WorkDayTemplate, c Constraints) (res Result) {
	var items []Item

	defer func() {
		if r := recover(); r != nil {
			res = internalFailure(items, fmt.Sprintf("internal error: %v", r))
		}
	}()

	now := e.now()
	items = NormalizeItems(tasks, workflows)

	if err := ValidateItems(items); err != nil {
		return internalFailure(items, err.Error())
	}

	graph := BuildDependencyGraph(items)

	if cycle := FindCycle(items, graph); cycle != nil {
		res := Result{Success: false, UnscheduledItems: items, ProjectedCompletion: now}
		res.Conflicts = append(res.Conflicts, Conflict{
			Kind:       ConflictDependencyCycle,
			Message:    fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
			ItemIDs:    cycleMembers(cycle),
			Suggestion: "remove one of the listed dependencies to break the cycle",
		})
		return res
	}

	scorer := Scorer{Now: now, TieBreak: c.TieBreak}
	scores := scorer.Score(items, graph)

	start := c.EarliestStart
	if start.IsZero() {
		start = now
	}
	slots, err := GenerateSlots(templates, start, c.LatestEnd, c.EnforceDailyLimits)
	if err != nil {
		return internalFailure(items, fmt.Sprintf("generate slots: %v", err))
	}

	scheduled, unscheduled := AssignItems(items, graph, scores, slots)

	res = Analyze(scheduled, unscheduled, now)
	res.Scores = scores
	res.Slots = slots

	e.optimizer.Optimize(&res, slots)

	return res
}

// internalFailure is outcome class 3: the run is abandoned and the cause is
// reported as a single capacity_exceeded conflict carrying the message.
func internalFailure(items []Item, msg string) Result {
	return Result{
		Success:          false,
		UnscheduledItems: items,
		Conflicts: []Conflict{{
			Kind:    ConflictCapacityExceeded,
			Message: msg,
		}},
	}
}

// cycleMembers strips the repeated entry node from a cycle path.
func cycleMembers(cycle []string) []string {
	if len(cycle) > 1 && cycle[0] == cycle[len(cycle)-1] {
		return cycle[:len(cycle)-1]
	}
	return cycle
}
