package peel

import "github.com/imgmorph/peel/internal/candidate"

// borderVariant implements the Border algorithm (spec §4.4.2): an
// N-D position -> candidate id lookup grid (candidate_matrix) lets
// InsertNewCandidateFromBorder find an already-allocated candidate by
// position instead of rescanning the whole image, and initial enrollment
// only enqueues a candidate that already has at least one opposing-phase
// neighbor among the full offset family.
type borderVariant struct{}

func (borderVariant) customInitialize(ev *evolver) error {
	ev.candidateMatrix = NewIntImage(ev.size, int(candidate.HEADER))
	return nil
}

func (borderVariant) initialCandidatePositionFound(ev *evolver, id candidate.ID, p Position) error {
	for _, offset := range ev.uElements {
		q, err := detectionNeighbor(ev.mode, p, offset)
		if err != nil {
			return err
		}
		ev.counters.AddInsertComparisons(ev.seIteration, 1)

		trigger, err := ev.triggersBorder(q)
		if err != nil {
			return err
		}
		if trigger {
			if err := ev.arena.Enqueue(id); err != nil {
				return err
			}
			ev.counters.AddInsertMemory(ev.seIteration, 5)
			return nil
		}
	}
	return nil
}

func (borderVariant) detectBorder(ev *evolver, seIdx int, elementOrder []int) ([]candidate.ID, error) {
	return detectBorderLinear(ev, seIdx, elementOrder)
}

func (borderVariant) insertNewCandidateFromBorder(ev *evolver, borderIDs []candidate.ID) error {
	for _, bid := range borderIDs {
		p := NewPosition(ev.arena.Position(bid)...)

		for _, offset := range ev.uElements {
			q, err := insertionNeighbor(ev.mode, p, offset)
			if err != nil {
				return err
			}
			ev.counters.AddInsertComparisons(ev.seIteration, 1)

			qualifies, err := ev.insertionQualifies(q)
			if err != nil {
				return err
			}
			if !qualifies {
				continue
			}

			raw, err := ev.candidateMatrix.Get(q)
			if err != nil {
				return err
			}
			id := candidate.ID(raw)
			if id == candidate.HEADER {
				continue
			}
			if err := ev.arena.Enqueue(id); err != nil {
				return err
			}
			ev.counters.AddInsertMemory(ev.seIteration, 5)
		}
	}
	return nil
}

func (borderVariant) regularRemoval() bool { return true }
