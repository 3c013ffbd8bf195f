package peel

import (
	"github.com/imgmorph/peel/internal/candidate"
	"github.com/imgmorph/peel/internal/linklist"
)

// matrixVariant implements the Matrix algorithm (spec §4.4.3): alongside
// Border's candidate_matrix, it maintains one doubly linked list per offset
// index k holding every candidate whose border predicate currently fails
// for that offset. DetectBorder drains the lists for the current SE's own
// offsets directly instead of rescanning the queue, so it runs in time
// proportional to the border it finds rather than to the queue's size.
type matrixVariant struct {
	lists *linklist.Lists
}

func (mv *matrixVariant) customInitialize(ev *evolver) error {
	ev.candidateMatrix = NewIntImage(ev.size, int(candidate.HEADER))
	mv.lists = linklist.NewLists(len(ev.uElements), ev.candidateCapacity)
	return nil
}

// linkAgainstFamily links id to every offset k in u_elements whose
// neighbor is currently a border trigger. It is used both for initial
// enrollment (scanning every offset) and is mirrored, offset-at-a-time, by
// insertNewCandidateFromBorder.
func (mv *matrixVariant) linkAgainstFamily(ev *evolver, id candidate.ID, p Position) error {
	linkedAny := false
	for k, offset := range ev.uElements {
		q, err := detectionNeighbor(ev.mode, p, offset)
		if err != nil {
			return err
		}
		ev.counters.AddInsertComparisons(ev.seIteration, 1)

		trigger, err := ev.triggersBorder(q)
		if err != nil {
			return err
		}
		if !trigger {
			continue
		}
		mv.lists.Link(id, k)
		ev.counters.AddInsertMemory(ev.seIteration, 6)
		linkedAny = true
	}
	if linkedAny {
		return ev.arena.Enqueue(id)
	}
	return nil
}

func (mv *matrixVariant) initialCandidatePositionFound(ev *evolver, id candidate.ID, p Position) error {
	return mv.linkAgainstFamily(ev, id, p)
}

func (mv *matrixVariant) detectBorder(ev *evolver, seIdx int, elementOrder []int) ([]candidate.ID, error) {
	se := ev.seElements[seIdx]
	n := 0

	for _, idx := range elementOrder {
		k := se[idx]
		for {
			id := mv.lists.Head(k)
			if id == candidate.HEADER {
				break
			}
			removed := mv.lists.UnlinkAll(id)
			ev.counters.AddRemoveMemory(ev.seIteration, 2*removed)
			ev.counters.AddRemoveComparisons(ev.seIteration, removed)

			if err := ev.arena.Remove(id); err != nil {
				return nil, err
			}
			ev.counters.AddRemoveMemory(ev.seIteration, 4)

			ev.borderScratch[n] = uint32(id)
			n++
		}
	}

	return idsFromScratch(ev.borderScratch, n), nil
}

// insertNewCandidateFromBorder mirrors Border's traversal to find each
// newly-exposed candidate q, but rather than enqueuing q outright it links
// q to the single offset k that exposed it: since q = p -/+ u[k] under the
// insertion sign convention, u[k] under the detection convention points
// from q back to p, so (id(q), k) is exactly the new link the flip of p
// introduced.
func (mv *matrixVariant) insertNewCandidateFromBorder(ev *evolver, borderIDs []candidate.ID) error {
	for _, bid := range borderIDs {
		p := NewPosition(ev.arena.Position(bid)...)

		for k, offset := range ev.uElements {
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
			mv.lists.Link(id, k)
			ev.counters.AddInsertMemory(ev.seIteration, 6)
			if err := ev.arena.Enqueue(id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (mv *matrixVariant) regularRemoval() bool { return false }
