package schedule

import (
	"fmt"
	"strings"

	"github.com/msageha/dayplan/internal/model"
)

type ValidationError struct {
	FieldPath string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.FieldPath, e.Message)
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (ve *ValidationErrors) Add(fieldPath, message string) {
	ve.Errors = append(ve.Errors, ValidationError{FieldPath: fieldPath, Message: message})
}

func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateItems checks structural validity of the normalized item set.
// Unknown dependency references are not validation errors; they surface as
// unschedulable items during assignment.
func ValidateItems(items []Item) error {
	errs := &ValidationErrors{}
	seen := make(map[string]bool, len(items))

	for _, it := range items {
		if seen[it.ID] {
			errs.Add(it.ID, "duplicate item ID")
		}
		seen[it.ID] = true

		// Completed items are never assigned, so only identity is checked.
		if it.Status == model.StatusCompleted {
			continue
		}

		if it.DurationMinutes <= 0 {
			errs.Add(fmt.Sprintf("%s.duration_minutes", it.ID), "must be positive")
		}
		if it.Importance < 1 || it.Importance > 10 {
			errs.Add(fmt.Sprintf("%s.importance", it.ID), "must be in 1..10")
		}
		if it.Urgency < 1 || it.Urgency > 10 {
			errs.Add(fmt.Sprintf("%s.urgency", it.ID), "must be in 1..10")
		}
		if it.WorkType != model.WorkTypeFocused && it.WorkType != model.WorkTypeAdmin {
			errs.Add(fmt.Sprintf("%s.work_type", it.ID), fmt.Sprintf("unknown work type %q", it.WorkType))
		}
		if it.AsyncWaitMinutes < 0 {
			errs.Add(fmt.Sprintf("%s.async_wait_minutes", it.ID), "must not be negative")
		}
		// Self-references are cycles; the cycle detector reports them.
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
