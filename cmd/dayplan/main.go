package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msageha/dayplan/internal/schedule"
	"github.com/msageha/dayplan/internal/service"
	"github.com/msageha/dayplan/internal/store"
	"github.com/msageha/dayplan/internal/watch"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(os.Args[2:])
	case "schedule":
		runSchedule(os.Args[2:])
	case "next":
		runNext(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "version":
		fmt.Printf("dayplan %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runInit(args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	dir, err := store.Init(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("initialized %s\n", dir)
	fmt.Println("edit plan.yaml to add your tasks, then run 'dayplan schedule'")
}

func runSchedule(args []string) {
	jsonOutput := false
	var from time.Time
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			jsonOutput = true
		case "--from":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--from requires a YYYY-MM-DD value")
				os.Exit(1)
			}
			i++
			t, err := time.ParseInLocation("2006-01-02", args[i], time.Local)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid --from date: %v\n", err)
				os.Exit(1)
			}
			from = t
		default:
			fmt.Fprintf(os.Stderr, "unknown flag: %s\nusage: dayplan schedule [--json] [--from YYYY-MM-DD]\n", args[i])
			os.Exit(1)
		}
	}

	p := mustPlanner()
	defer p.Close()

	if !from.IsZero() {
		p.SetClock(func() time.Time { return from })
	}

	res, err := p.Reschedule("cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "schedule: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printResult(res)
	if !res.Success && len(res.Conflicts) > 0 {
		os.Exit(1)
	}
}

func runNext(args []string) {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "usage: dayplan next")
		os.Exit(1)
	}

	p := mustPlanner()
	defer p.Close()

	res, err := p.Reschedule("cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "next: %v\n", err)
		os.Exit(1)
	}

	next := service.NextItem(res)
	if next == nil {
		fmt.Println("nothing scheduled")
		return
	}
	fmt.Printf("%s  %s-%s  [%s] %s (%dm)\n",
		next.ScheduledDate.Format("Mon 2006-01-02"),
		next.ScheduledStart.Format("15:04"),
		next.ScheduledEnd.Format("15:04"),
		next.WorkType, next.Name, next.DurationMinutes)
}

func runWatch(args []string) {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "usage: dayplan watch")
		os.Exit(1)
	}

	dir := mustFindDir()
	st := store.New(dir)
	cfg, err := st.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", 0)
	p, err := service.NewPlanner(st, logger, service.ParseLogLevel(cfg.Logging.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	onChange := func() {
		res, err := p.Reschedule("watch")
		if err != nil {
			fmt.Fprintf(os.Stderr, "reschedule: %v\n", err)
			return
		}
		printResult(res)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("watching %s (ctrl-c to stop)\n", dir)
	onChange()

	w := watch.New(dir, cfg.Watcher, onChange, logger)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		os.Exit(1)
	}
}

// printResult renders the schedule grouped by day.
func printResult(res schedule.Result) {
	if len(res.ScheduledItems) == 0 {
		fmt.Println("nothing scheduled")
	}

	var lastDay string
	for _, it := range res.ScheduledItems {
		day := it.ScheduledDate.Format("Mon 2006-01-02")
		if day != lastDay {
			fmt.Printf("\n%s\n", day)
			lastDay = day
		}
		fmt.Printf("  %s-%s  [%s] %s (%dm)\n",
			it.ScheduledStart.Format("15:04"),
			it.ScheduledEnd.Format("15:04"),
			it.WorkType, it.Name, it.DurationMinutes)
	}

	if len(res.ScheduledItems) > 0 {
		fmt.Printf("\n%d item(s), %.1fh focused, %.1fh admin, done by %s\n",
			len(res.ScheduledItems), res.TotalFocusedHours, res.TotalAdminHours,
			res.ProjectedCompletion.Format("2006-01-02"))
		fmt.Printf("utilization: %.0f%%\n", service.Utilization(res)*100)
	}

	for _, c := range res.Conflicts {
		fmt.Fprintf(os.Stderr, "conflict (%s): %s\n", c.Kind, c.Message)
		if c.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  suggestion: %s\n", c.Suggestion)
		}
	}
	for _, it := range res.UnscheduledItems {
		fmt.Fprintf(os.Stderr, "unscheduled: %s\n", it.Name)
	}
	for _, r := range service.Recommendations(res) {
		fmt.Printf("hint: %s\n", r)
	}
}

func mustFindDir() string {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	dir := store.FindDir(wd)
	if dir == "" {
		fmt.Fprintln(os.Stderr, "error: .dayplan/ directory not found. Run 'dayplan init' first.")
		os.Exit(1)
	}
	return dir
}

func mustPlanner() *service.Planner {
	dir := mustFindDir()
	st := store.New(dir)
	cfg, err := st.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", 0)
	p, err := service.NewPlanner(st, logger, service.ParseLogLevel(cfg.Logging.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return p
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dayplan %s — Deadline-aware daily scheduler

Usage: dayplan <command> [options]

Commands:
  init [dir]                          Initialize .dayplan/ directory
  schedule [--json] [--from DATE]     Compute and print the schedule
  next                                Show the next scheduled item
  watch                               Reschedule on plan/config changes
  version                             Show version
  help                                Show this help

`, version)
}
