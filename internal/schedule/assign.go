package schedule

import (
	"time"

	"github.com/msageha/dayplan/internal/model"
)

// AssignItems walks the items in priority order, respecting dependencies, and
// places each ready item into the first chronological slot with enough
// remaining capacity of its work type (first-fit, not best-fit). Slots are
// mutated: remaining capacity is decremented and assigned IDs recorded.
//
// This is a priority-ordered variant of Kahn's topological sort: in-degree is
// the count of unsatisfied dependencies, the ready queue is a slice kept
// sorted by final rank (insertion sort is fine at planner scale), and
// completing an item re-enqueues any dependents it unblocks.
func AssignItems(items []Item, graph map[string][]string, scores []PriorityScore, slots []TimeSlot) ([]ScheduledItem, []Item) {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	rank := make(map[string]int, len(scores))
	for _, sc := range scores {
		rank[sc.ItemID] = sc.FinalRank
	}

	// Completed items satisfy dependents but are never assigned.
	completed := make(map[string]bool)
	for _, it := range items {
		if it.Status == model.StatusCompleted {
			completed[it.ID] = true
		}
	}

	dependents := dependentsOf(items, graph)

	// In-degree counts dependencies not yet satisfied. References to unknown
	// IDs are counted and never decremented, so such items stay blocked and
	// end up unscheduled.
	inDegree := make(map[string]int, len(items))
	for _, it := range items {
		if completed[it.ID] {
			continue
		}
		n := 0
		for _, dep := range graph[it.ID] {
			if !completed[dep] {
				n++
			}
		}
		inDegree[it.ID] = n
	}

	var ready []string
	insert := func(id string) {
		pos := len(ready)
		for i, other := range ready {
			if rank[id] < rank[other] {
				pos = i
				break
			}
		}
		ready = append(ready, "")
		copy(ready[pos+1:], ready[pos:])
		ready[pos] = id
	}

	for _, it := range items {
		if !completed[it.ID] && inDegree[it.ID] == 0 {
			insert(it.ID)
		}
	}

	var scheduled []ScheduledItem
	var unscheduled []Item
	placed := make(map[string]bool)
	dropped := make(map[string]bool)
	endByID := make(map[string]time.Time)

	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		it := byID[id]

		// Defensive re-check; in-degree bookkeeping should make this
		// unreachable.
		if !depsSatisfied(it, completed) {
			unscheduled = append(unscheduled, it)
			dropped[id] = true
			continue
		}

		// A dependent must not start before its prerequisites end. Within a
		// day the focused and admin timelines advance independently, so a
		// cross-type dependent could otherwise land before its prerequisite.
		var earliestStart time.Time
		for _, dep := range graph[id] {
			if end, ok := endByID[dep]; ok && end.After(earliestStart) {
				earliestStart = end
			}
		}

		si, ok := placeFirstFit(it, slots, earliestStart)
		if !ok {
			unscheduled = append(unscheduled, it)
			dropped[id] = true
			continue
		}
		scheduled = append(scheduled, si)
		placed[id] = true
		endByID[id] = si.ScheduledEnd

		completed[id] = true
		for _, dep := range dependents[id] {
			if completed[dep] || dropped[dep] {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				insert(dep)
			}
		}
	}

	// Anything still blocked (cycle-free by precondition, so this means an
	// unknown reference or an unscheduled prerequisite upstream).
	for _, it := range items {
		if completed[it.ID] || placed[it.ID] || dropped[it.ID] {
			continue
		}
		if it.Status == model.StatusCompleted {
			continue
		}
		unscheduled = append(unscheduled, it)
	}

	return scheduled, unscheduled
}

func depsSatisfied(it Item, completed map[string]bool) bool {
	for _, dep := range it.DependsOn {
		if !completed[dep] {
			return false
		}
	}
	return true
}

// placeFirstFit scans slots in chronological order and consumes capacity in
// the first slot that can hold the item. The scheduled start is the slot's
// window start offset by the capacity of the same type already consumed; a
// slot is skipped when that start would precede earliestStart.
func placeFirstFit(it Item, slots []TimeSlot, earliestStart time.Time) (ScheduledItem, bool) {
	for i := range slots {
		slot := &slots[i]

		var remaining *int
		var capacity int
		if it.WorkType == model.WorkTypeAdmin {
			remaining = &slot.RemainingAdmin
			capacity = slot.AdminCapacity
		} else {
			remaining = &slot.RemainingFocused
			capacity = slot.FocusedCapacity
		}

		if *remaining < it.DurationMinutes {
			continue
		}

		consumed := capacity - *remaining
		start := slot.WindowStart.Add(time.Duration(consumed) * time.Minute)
		if start.Before(earliestStart) {
			continue
		}
		end := start.Add(time.Duration(it.DurationMinutes) * time.Minute)

		*remaining -= it.DurationMinutes
		slot.AssignedItems = append(slot.AssignedItems, it.ID)

		return ScheduledItem{
			Item:           it,
			ScheduledDate:  slot.Date,
			ScheduledStart: start,
			ScheduledEnd:   end,
			SlotID:         slot.ID,
		}, true
	}
	return ScheduledItem{}, false
}
