// Package model defines the data structures for dayplan's tasks, workflows,
// calendar configuration, and scheduling constraints.
package model

import "time"

type WorkType string

const (
	WorkTypeFocused WorkType = "focused"
	WorkTypeAdmin   WorkType = "admin"
)

type DeadlineKind string

const (
	DeadlineHard DeadlineKind = "hard"
	DeadlineSoft DeadlineKind = "soft"
)

// Task is a standalone unit of work supplied by the plan file.
type Task struct {
	ID               string       `yaml:"id"`
	Name             string       `yaml:"name"`
	DurationMinutes  int          `yaml:"duration_minutes"`
	WorkType         WorkType     `yaml:"work_type"`
	Importance       int          `yaml:"importance"`
	Urgency          int          `yaml:"urgency"`
	Dependencies     []string     `yaml:"dependencies,omitempty"` // task IDs
	Deadline         *time.Time   `yaml:"deadline,omitempty"`
	DeadlineKind     DeadlineKind `yaml:"deadline_kind,omitempty"`
	AsyncWaitMinutes int          `yaml:"async_wait_minutes,omitempty"`
	IsAsyncTrigger   bool         `yaml:"is_async_trigger,omitempty"`
	Completed        bool         `yaml:"completed,omitempty"`
	CreatedAt        time.Time    `yaml:"created_at"`
}

// Workflow is an ordered set of steps with shared importance/urgency defaults
// and a single workflow-level deadline.
type Workflow struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Importance   int            `yaml:"importance"`
	Urgency      int            `yaml:"urgency"`
	Deadline     *time.Time     `yaml:"deadline,omitempty"`
	DeadlineKind DeadlineKind   `yaml:"deadline_kind,omitempty"`
	CreatedAt    time.Time      `yaml:"created_at"`
	Steps        []WorkflowStep `yaml:"steps"`
}

// WorkflowStep carries per-step fields. Importance/Urgency of zero mean
// "inherit from the parent workflow". Steps never carry their own deadline.
type WorkflowStep struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	DurationMinutes  int      `yaml:"duration_minutes"`
	WorkType         WorkType `yaml:"work_type"`
	Importance       int      `yaml:"importance,omitempty"`
	Urgency          int      `yaml:"urgency,omitempty"`
	DependsOn        []string `yaml:"depends_on,omitempty"` // step IDs within the same workflow
	AsyncWaitMinutes int      `yaml:"async_wait_minutes,omitempty"`
	IsAsyncTrigger   bool     `yaml:"is_async_trigger,omitempty"`
	Completed        bool     `yaml:"completed,omitempty"`
}
