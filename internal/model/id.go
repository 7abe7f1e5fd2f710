package model

import (
	"fmt"
	"regexp"
)

// RefKind discriminates where a schedulable item came from.
type RefKind string

const (
	RefTask         RefKind = "task"
	RefWorkflowStep RefKind = "workflow_step"
)

// ItemRef identifies an item's source record without string parsing.
// The namespaced scheduling ID derived from it exists only as the external
// output contract; all internal identity goes through this struct.
type ItemRef struct {
	Kind       RefKind
	TaskID     string
	WorkflowID string
	StepID     string
}

func TaskRef(taskID string) ItemRef {
	return ItemRef{Kind: RefTask, TaskID: taskID}
}

func StepRef(workflowID, stepID string) ItemRef {
	return ItemRef{Kind: RefWorkflowStep, WorkflowID: workflowID, StepID: stepID}
}

// SchedulingID renders the namespaced ID used in scheduling results:
// task_<taskId> or workflow_<workflowId>_step_<stepId>.
func (r ItemRef) SchedulingID() string {
	if r.Kind == RefTask {
		return fmt.Sprintf("task_%s", r.TaskID)
	}
	return fmt.Sprintf("workflow_%s_step_%s", r.WorkflowID, r.StepID)
}

var (
	taskIDRegex = regexp.MustCompile(`^task_(.+)$`)
	stepIDRegex = regexp.MustCompile(`^workflow_(.+)_step_([^_]+)$`)
)

// ParseSchedulingID recovers an ItemRef from a namespaced scheduling ID.
// Provided for callers that only hold the string form of a result.
func ParseSchedulingID(id string) (ItemRef, error) {
	if m := stepIDRegex.FindStringSubmatch(id); m != nil {
		return StepRef(m[1], m[2]), nil
	}
	if m := taskIDRegex.FindStringSubmatch(id); m != nil {
		return TaskRef(m[1]), nil
	}
	return ItemRef{}, fmt.Errorf("invalid scheduling ID: %s", id)
}
