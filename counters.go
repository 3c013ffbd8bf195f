package peel

// Counters holds the six per-iteration instrumentation sequences a run
// accumulates, indexed by se_iteration (index 0 is the zero pushed before
// the first pass). Each entry starts at zero when its iteration is pushed
// and is only ever incremented afterwards; a later entry may be smaller
// than an earlier one.
type Counters struct {
	// DetermineBorderComparisons counts neighbor predicate evaluations in
	// DetectBorder.
	DetermineBorderComparisons []int
	// InsertComparisons counts neighbor evaluations performed while
	// looking for new candidates to insert or while enrolling the initial
	// candidate set.
	InsertComparisons []int
	// InsertMemoryAccesses counts memory accesses charged to enqueue and
	// link operations performed while inserting new candidates.
	InsertMemoryAccesses []int
	// RemoveComparisons counts comparisons performed while removing
	// candidates from the queue or link lists.
	RemoveComparisons []int
	// RemoveMemoryAccesses counts memory accesses charged to dequeue and
	// unlink operations.
	RemoveMemoryAccesses []int
	// BorderElements counts border_count, the number of pixels flipped,
	// per iteration.
	BorderElements []int
}

// NewCounters returns a Counters with all six sequences empty.
func NewCounters() *Counters {
	return &Counters{}
}

// PushIteration appends one zero to every sequence, as required at the
// start of preparation and at the start of every main-loop iteration.
func (c *Counters) PushIteration() {
	c.DetermineBorderComparisons = append(c.DetermineBorderComparisons, 0)
	c.InsertComparisons = append(c.InsertComparisons, 0)
	c.InsertMemoryAccesses = append(c.InsertMemoryAccesses, 0)
	c.RemoveComparisons = append(c.RemoveComparisons, 0)
	c.RemoveMemoryAccesses = append(c.RemoveMemoryAccesses, 0)
	c.BorderElements = append(c.BorderElements, 0)
}

// AddDetermineBorder adds n to the current iteration's determinate-border
// comparison count.
func (c *Counters) AddDetermineBorder(iter, n int) { c.DetermineBorderComparisons[iter] += n }

// AddInsertComparisons adds n to the current iteration's insert-candidate
// comparison count.
func (c *Counters) AddInsertComparisons(iter, n int) { c.InsertComparisons[iter] += n }

// AddInsertMemory adds n to the current iteration's insert-candidate
// memory access count.
func (c *Counters) AddInsertMemory(iter, n int) { c.InsertMemoryAccesses[iter] += n }

// AddRemoveComparisons adds n to the current iteration's remove-candidate
// comparison count.
func (c *Counters) AddRemoveComparisons(iter, n int) { c.RemoveComparisons[iter] += n }

// AddRemoveMemory adds n to the current iteration's remove-candidate
// memory access count.
func (c *Counters) AddRemoveMemory(iter, n int) { c.RemoveMemoryAccesses[iter] += n }

// AddBorderElements adds n to the current iteration's border element
// count.
func (c *Counters) AddBorderElements(iter, n int) { c.BorderElements[iter] += n }
