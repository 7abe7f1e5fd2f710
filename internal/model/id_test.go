package model

import "testing"

func TestSchedulingID_Task(t *testing.T) {
	ref := TaskRef("t1")
	if got := ref.SchedulingID(); got != "task_t1" {
		t.Errorf("expected task_t1, got %q", got)
	}
}

func TestSchedulingID_WorkflowStep(t *testing.T) {
	ref := StepRef("release", "draft")
	if got := ref.SchedulingID(); got != "workflow_release_step_draft" {
		t.Errorf("expected workflow_release_step_draft, got %q", got)
	}
}

func TestParseSchedulingID_RoundTrip(t *testing.T) {
	refs := []ItemRef{
		TaskRef("t1"),
		TaskRef("with_underscores"),
		StepRef("wf1", "s2"),
	}
	for _, ref := range refs {
		parsed, err := ParseSchedulingID(ref.SchedulingID())
		if err != nil {
			t.Fatalf("parse %q: %v", ref.SchedulingID(), err)
		}
		if parsed != ref {
			t.Errorf("round-trip mismatch: %+v != %+v", parsed, ref)
		}
	}
}

func TestParseSchedulingID_Invalid(t *testing.T) {
	for _, id := range []string{"", "foo", "task_", "workflow_x"} {
		if _, err := ParseSchedulingID(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}
