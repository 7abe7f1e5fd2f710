// Package service wires the store, calendar, and scheduling engine into the
// operations the CLI and watcher call.
package service

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/msageha/dayplan/internal/calendar"
	"github.com/msageha/dayplan/internal/events"
	"github.com/msageha/dayplan/internal/model"
	"github.com/msageha/dayplan/internal/schedule"
	"github.com/msageha/dayplan/internal/store"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

const runLogName = "runs.jsonl"

// Planner runs the scheduling pipeline against the on-disk plan. Concurrent
// Reschedule calls are collapsed into one run via singleflight, so a burst of
// file events produces a single recomputation.
type Planner struct {
	store    *store.Store
	engine   *schedule.Engine
	runlog   *events.RunLogger
	logger   *log.Logger
	logLevel LogLevel
	now      func() time.Time

	group singleflight.Group
}

func NewPlanner(st *store.Store, logger *log.Logger, logLevel LogLevel) (*Planner, error) {
	runlog, err := events.NewRunLogger(filepath.Join(st.Dir(), "logs", runLogName), 0)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}

	return &Planner{
		store:    st,
		engine:   schedule.NewEngine(),
		runlog:   runlog,
		logger:   logger,
		logLevel: logLevel,
		now:      time.Now,
	}, nil
}

// SetClock replaces the reference-time source for both the planner and the
// underlying engine.
func (p *Planner) SetClock(now func() time.Time) {
	p.now = now
	p.engine.SetClock(now)
}

func (p *Planner) Close() error {
	return p.runlog.Close()
}

// Reschedule loads the plan and config, runs the engine, and appends a run
// record. The trigger string (cli or watch) is recorded for diagnostics.
func (p *Planner) Reschedule(trigger string) (schedule.Result, error) {
	v, err, shared := p.group.Do("reschedule", func() (any, error) {
		return p.reschedule(trigger)
	})
	if err != nil {
		return schedule.Result{}, err
	}
	if shared {
		p.log(LogLevelDebug, "reschedule coalesced trigger=%s", trigger)
	}
	return v.(schedule.Result), nil
}

func (p *Planner) reschedule(trigger string) (schedule.Result, error) {
	plan, err := p.store.LoadPlan()
	if err != nil {
		return schedule.Result{}, err
	}
	cfg, err := p.store.LoadConfig()
	if err != nil {
		return schedule.Result{}, err
	}

	templates := calendar.Resolve(cfg)
	c := p.constraintsFrom(cfg)

	p.log(LogLevelDebug, "scheduling tasks=%d workflows=%d trigger=%s",
		len(plan.Tasks), len(plan.Workflows), trigger)

	res := p.engine.Schedule(plan.Tasks, plan.Workflows, templates, c)

	if err := p.runlog.Record(runRecordFrom(trigger, res)); err != nil {
		p.log(LogLevelWarn, "record run: %v", err)
	}
	p.log(LogLevelInfo, "scheduled=%d unscheduled=%d conflicts=%d success=%v",
		len(res.ScheduledItems), len(res.UnscheduledItems), len(res.Conflicts), res.Success)

	return res, nil
}

func (p *Planner) constraintsFrom(cfg model.Config) schedule.Constraints {
	c := schedule.DefaultConstraints()
	c.AllowOverflow = cfg.Scheduling.AllowOverflow
	c.StrictDependencies = cfg.Scheduling.StrictDependencies
	c.EnforceDailyLimits = cfg.Scheduling.EnforceDailyLimits

	switch m := schedule.TieBreakMethod(cfg.Scheduling.TieBreaking); m {
	case schedule.TieBreakCreationDate, schedule.TieBreakDurationShortest,
		schedule.TieBreakDurationLongest, schedule.TieBreakAlphabetical:
		c.TieBreak = m
	case "":
		// keep default
	default:
		p.log(LogLevelWarn, "unknown tie_breaking %q, using %s", m, c.TieBreak)
	}

	if cfg.Scheduling.HorizonDays > 0 {
		c.LatestEnd = p.now().AddDate(0, 0, cfg.Scheduling.HorizonDays)
	}
	return c
}

func runRecordFrom(trigger string, res schedule.Result) events.RunRecord {
	return events.RunRecord{
		Trigger:             trigger,
		Success:             res.Success,
		ScheduledCount:      len(res.ScheduledItems),
		UnscheduledCount:    len(res.UnscheduledItems),
		ConflictCount:       len(res.Conflicts),
		TotalFocusedHours:   res.TotalFocusedHours,
		TotalAdminHours:     res.TotalAdminHours,
		TotalWorkDays:       res.TotalWorkDays,
		ProjectedCompletion: res.ProjectedCompletion,
		Warnings:            res.Warnings,
	}
}

// NextItem returns the scheduled item with the earliest start, or nil when
// nothing is scheduled.
func NextItem(res schedule.Result) *schedule.ScheduledItem {
	var next *schedule.ScheduledItem
	for i := range res.ScheduledItems {
		it := &res.ScheduledItems[i]
		if next == nil || it.ScheduledStart.Before(next.ScheduledStart) {
			next = it
		}
	}
	return next
}

// Utilization is the fraction of generated working capacity consumed by
// scheduled items, in [0, 1].
func Utilization(res schedule.Result) float64 {
	capacity := 0
	for _, slot := range res.Slots {
		capacity += slot.FocusedCapacity + slot.AdminCapacity
	}
	if capacity == 0 {
		return 0
	}
	used := 0
	for _, it := range res.ScheduledItems {
		used += it.DurationMinutes
	}
	return float64(used) / float64(capacity)
}

// Recommendations derives actionable hints from a run result.
func Recommendations(res schedule.Result) []string {
	recs := append([]string(nil), res.Suggestions...)

	if n := len(res.UnscheduledItems); n > 0 && len(res.Conflicts) == 0 {
		recs = append(recs, fmt.Sprintf("%d item(s) did not fit; raise horizon_days or daily capacity", n))
	}
	if u := Utilization(res); u > 0.9 {
		recs = append(recs, fmt.Sprintf("calendar is %.0f%% full; new work will likely slip past its deadline", u*100))
	}
	return recs
}

func (p *Planner) log(level LogLevel, format string, args ...any) {
	if level < p.logLevel || p.logger == nil {
		return
	}
	levelStr := "INFO"
	switch level {
	case LogLevelDebug:
		levelStr = "DEBUG"
	case LogLevelWarn:
		levelStr = "WARN"
	case LogLevelError:
		levelStr = "ERROR"
	}
	msg := fmt.Sprintf(format, args...)
	p.logger.Printf("%s %s planner: %s", time.Now().Format(time.RFC3339), levelStr, msg)
}
