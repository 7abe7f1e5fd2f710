package schedule

// WaitOptimizer is an extension point run after assignment. The intended use
// is backfilling the idle window that follows a scheduled async trigger with
// other ready work. The default implementation is a pass-through; async wait
// time influences priority scoring only.
type WaitOptimizer interface {
	Optimize(res *Result, slots []TimeSlot)
}

type noopWaitOptimizer struct{}

func (noopWaitOptimizer) Optimize(*Result, []TimeSlot) {}
