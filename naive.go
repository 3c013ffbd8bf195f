package peel

import "github.com/imgmorph/peel/internal/candidate"

// naiveVariant implements the Naive algorithm (spec §4.4.1): no auxiliary
// structure, every candidate is enqueued unconditionally, and every
// structuring-element application rescans the whole queue.
type naiveVariant struct{}

func (naiveVariant) customInitialize(ev *evolver) error { return nil }

func (naiveVariant) initialCandidatePositionFound(ev *evolver, id candidate.ID, p Position) error {
	if err := ev.arena.Enqueue(id); err != nil {
		return err
	}
	ev.counters.AddInsertMemory(ev.seIteration, 5)
	return nil
}

func (naiveVariant) detectBorder(ev *evolver, seIdx int, elementOrder []int) ([]candidate.ID, error) {
	return detectBorderLinear(ev, seIdx, elementOrder)
}

func (naiveVariant) insertNewCandidateFromBorder(ev *evolver, borderIDs []candidate.ID) error {
	return nil
}

func (naiveVariant) regularRemoval() bool { return true }
