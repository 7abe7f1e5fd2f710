package schedule

import (
	"github.com/msageha/dayplan/internal/model"
)

// NormalizeItems flattens tasks and workflows into a single uniform item
// list. Workflow steps inherit importance/urgency from the parent workflow
// unless they carry an explicit override, and always inherit the workflow's
// deadline. Dependency references are rewritten into the owning namespace.
// Items already completed upstream are preserved so they can satisfy
// dependents without being scheduled.
func NormalizeItems(tasks []model.Task, workflows []model.Workflow) []Item {
	items := make([]Item, 0, len(tasks))

	for _, t := range tasks {
		ref := model.TaskRef(t.ID)
		deps := make([]string, 0, len(t.Dependencies))
		for _, d := range t.Dependencies {
			deps = append(deps, model.TaskRef(d).SchedulingID())
		}
		items = append(items, Item{
			ID:               ref.SchedulingID(),
			Ref:              ref,
			Name:             t.Name,
			DurationMinutes:  t.DurationMinutes,
			WorkType:         t.WorkType,
			Importance:       t.Importance,
			Urgency:          t.Urgency,
			DependsOn:        deps,
			AsyncWaitMinutes: t.AsyncWaitMinutes,
			IsAsyncTrigger:   t.IsAsyncTrigger,
			Deadline:         t.Deadline,
			DeadlineKind:     t.DeadlineKind,
			Status:           taskStatus(t.Completed),
			CreatedAt:        t.CreatedAt,
			StepIndex:        -1,
		})
	}

	for _, wf := range workflows {
		for i, step := range wf.Steps {
			ref := model.StepRef(wf.ID, step.ID)
			deps := make([]string, 0, len(step.DependsOn))
			for _, d := range step.DependsOn {
				deps = append(deps, model.StepRef(wf.ID, d).SchedulingID())
			}

			importance := wf.Importance
			if step.Importance > 0 {
				importance = step.Importance
			}
			urgency := wf.Urgency
			if step.Urgency > 0 {
				urgency = step.Urgency
			}

			items = append(items, Item{
				ID:               ref.SchedulingID(),
				Ref:              ref,
				Name:             step.Name,
				DurationMinutes:  step.DurationMinutes,
				WorkType:         step.WorkType,
				Importance:       importance,
				Urgency:          urgency,
				DependsOn:        deps,
				AsyncWaitMinutes: step.AsyncWaitMinutes,
				IsAsyncTrigger:   step.IsAsyncTrigger,
				Deadline:         wf.Deadline,
				DeadlineKind:     wf.DeadlineKind,
				Status:           taskStatus(step.Completed),
				CreatedAt:        wf.CreatedAt,
				StepIndex:        i,
			})
		}
	}

	return items
}

func taskStatus(completed bool) model.Status {
	if completed {
		return model.StatusCompleted
	}
	return model.StatusPending
}
