package peel

import (
	"github.com/imgmorph/peel/internal/bufpool"
	"github.com/imgmorph/peel/internal/candidate"
	"github.com/imgmorph/peel/internal/rng"
)

// variant supplies the four hooks and the regularRemoval flag that
// distinguish Naive, Border, and Matrix (spec §4.4): everything else lives
// in evolver's shared loop.
type variant interface {
	// customInitialize runs once, after the working image and residues are
	// built and before initial candidates are enrolled. It is where
	// Border/Matrix allocate their auxiliary structures.
	customInitialize(ev *evolver) error

	// initialCandidatePositionFound is invoked once per allocated initial
	// candidate id, in enrollment order.
	initialCandidatePositionFound(ev *evolver, id candidate.ID, p Position) error

	// detectBorder applies structuring element seIdx (its offsets visited
	// in the order given by elementOrder, a permutation of
	// [0, len(seElements[seIdx]))) and returns the candidates newly found
	// on the border.
	detectBorder(ev *evolver, seIdx int, elementOrder []int) ([]candidate.ID, error)

	// insertNewCandidateFromBorder runs once per structuring-element
	// application, after the border ids found this pass have had Y and R
	// updated.
	insertNewCandidateFromBorder(ev *evolver, borderIDs []candidate.ID) error

	// regularRemoval reports whether the shared loop itself must remove a
	// border id from the queue (true for Naive/Border; false for Matrix,
	// whose detectBorder already removes as it drains the link lists).
	regularRemoval() bool
}

// evolver is the shared iterative engine (spec §4.4's BoundaryEvolver): SE
// vectorization, candidate enrollment, the shuffled main loop, and counter
// bookkeeping are all here; the three variants differ only through the
// variant interface above.
type evolver struct {
	mode Mode
	ses  []*StructuringElement

	uElements  []Position
	seElements [][]int

	size Size
	x    *BinaryImage
	y    *BinaryImage
	r    *GrayscaleImage

	candidateCapacity int
	arena             *candidate.Arena
	candidateMatrix   *IntImage // nil for Naive

	counters      *Counters
	seIteration   int
	rngSrc        *rng.Source
	borderScratch []uint32 // pooled scratch reused across every SE application this run

	v variant
}

// release returns the evolver's pooled scratch buffer. Callers must not
// use ev again afterwards.
func (ev *evolver) release() {
	bufpool.Put(ev.borderScratch)
	ev.borderScratch = nil
}

// vectorize validates every SE's origin and computes the shared offset
// family u_elements together with each SE's membership indices into it
// (spec §4.4 step 1-2).
func vectorize(ses []*StructuringElement) ([]Position, [][]int, error) {
	for _, se := range ses {
		if err := se.ValidateOrigin(); err != nil {
			return nil, nil, err
		}
	}

	unionBox := ses[0].Box()
	for _, se := range ses[1:] {
		var err error
		unionBox, err = unionBox.Union(se.Box())
		if err != nil {
			return nil, nil, err
		}
	}

	u, err := NewStructuringElement(unionBox)
	if err != nil {
		return nil, nil, err
	}
	for _, se := range ses {
		offsets, err := se.ForegroundOffsets()
		if err != nil {
			return nil, nil, err
		}
		for _, off := range offsets {
			if err := u.SetAbsolute(off, true); err != nil {
				return nil, nil, err
			}
		}
	}

	uElements, err := u.ForegroundOffsets()
	if err != nil {
		return nil, nil, err
	}

	seElements := make([][]int, len(ses))
	for i, se := range ses {
		var ks []int
		for k, off := range uElements {
			present, err := se.GetAbsolute(off)
			if err != nil {
				return nil, nil, err
			}
			if present {
				ks = append(ks, k)
			}
		}
		seElements[i] = ks
	}

	return uElements, seElements, nil
}

// newEvolver prepares the engine state: vectorization, the working image,
// residues, the variant's auxiliary structures, and initial candidate
// enrollment (spec §4.4 steps 1-7).
func newEvolver(mode Mode, v variant, x *BinaryImage, ses []*StructuringElement, seed int64) (*evolver, error) {
	uElements, seElements, err := vectorize(ses)
	if err != nil {
		return nil, err
	}

	counters := NewCounters()
	counters.PushIteration() // iteration 0: preparation

	y := x.Clone()
	r, err := NewResidues(x)
	if err != nil {
		return nil, err
	}

	ev := &evolver{
		mode:       mode,
		ses:        ses,
		uElements:  uElements,
		seElements: seElements,
		size:       x.Size(),
		x:          x,
		y:          y,
		r:          r,
		counters:   counters,
		rngSrc:     rng.New(seed),
		v:          v,
	}

	candidatePhase := mode == Erosion
	it := NewPositionIterator(ev.size.Box())
	capacity := 0
	for it.Next() {
		v, err := ev.y.Get(it.Current())
		if err != nil {
			return nil, err
		}
		if v == candidatePhase {
			capacity++
		}
	}
	ev.candidateCapacity = capacity
	ev.arena = candidate.NewArena(capacity)
	ev.borderScratch = bufpool.Get(capacity + 1)

	if err := ev.v.customInitialize(ev); err != nil {
		return nil, err
	}

	it = NewPositionIterator(ev.size.Box())
	for it.Next() {
		p := it.Current()
		val, err := ev.y.Get(p)
		if err != nil {
			return nil, err
		}
		if val != candidatePhase {
			continue
		}
		id := ev.arena.Allocate(p.Coords())
		if ev.candidateMatrix != nil {
			if err := ev.candidateMatrix.Set(p, int(id)); err != nil {
				return nil, err
			}
		}
		if err := ev.v.initialCandidatePositionFound(ev, id, p); err != nil {
			return nil, err
		}
	}

	return ev, nil
}

// run executes the main loop (spec §4.4 step 8) until the candidate queue
// is empty or m consecutive structuring-element applications contribute no
// border pixels, then returns the residues.
func (ev *evolver) run() (*GrayscaleImage, *Counters, error) {
	m := len(ev.ses)
	notDone := 0

	for !ev.arena.Empty() && notDone < m {
		ev.counters.PushIteration()
		ev.seIteration++
		notDone = 0

		seOrder := ev.rngSrc.Permutation(m)
		for _, sIdx := range seOrder {
			elementOrder := ev.rngSrc.Permutation(len(ev.seElements[sIdx]))

			borderIDs, err := ev.v.detectBorder(ev, sIdx, elementOrder)
			if err != nil {
				return nil, nil, err
			}

			for _, id := range borderIDs {
				p := NewPosition(ev.arena.Position(id)...)
				if err := ev.y.Set(p, ev.mode == Dilation); err != nil {
					return nil, nil, err
				}
				if ev.v.regularRemoval() {
					if err := ev.arena.Remove(id); err != nil {
						return nil, nil, err
					}
					ev.counters.AddRemoveMemory(ev.seIteration, 4)
				}
				if err := ev.r.Set(p, ev.seIteration); err != nil {
					return nil, nil, err
				}
			}

			if err := ev.v.insertNewCandidateFromBorder(ev, borderIDs); err != nil {
				return nil, nil, err
			}

			ev.counters.AddBorderElements(ev.seIteration, len(borderIDs))
			if len(borderIDs) == 0 {
				notDone++
			} else {
				notDone = 0
			}
		}
	}

	ev.release()
	return ev.r, ev.counters, nil
}

// detectBorderLinear is the DetectBorder logic shared by Naive and Border
// (spec §4.4.1, §4.4.2): scan the whole candidate queue, and for each
// candidate evaluate every offset of the current SE's own elements. Every
// offset is evaluated even after a trigger is found, so the determinate
// border comparison count for a pass is exactly
// (candidates currently queued) x (|elements of this SE|), independent of
// shuffle order (spec §8 S6).
func detectBorderLinear(ev *evolver, seIdx int, elementOrder []int) ([]candidate.ID, error) {
	se := ev.seElements[seIdx]
	n := 0

	for cur := ev.arena.Next(candidate.HEADER); cur != candidate.HEADER; cur = ev.arena.Next(cur) {
		p := NewPosition(ev.arena.Position(cur)...)
		onBorder := false

		for _, idx := range elementOrder {
			k := se[idx]
			q, err := detectionNeighbor(ev.mode, p, ev.uElements[k])
			if err != nil {
				return nil, err
			}
			ev.counters.AddDetermineBorder(ev.seIteration, 1)

			trigger, err := ev.triggersBorder(q)
			if err != nil {
				return nil, err
			}
			if trigger {
				onBorder = true
			}
		}

		if onBorder {
			ev.borderScratch[n] = uint32(cur)
			n++
		}
	}

	return idsFromScratch(ev.borderScratch, n), nil
}

// idsFromScratch copies the first n entries of a pooled uint32 scratch
// buffer into a freshly allocated candidate id slice sized to exactly
// what this pass found.
func idsFromScratch(scratch []uint32, n int) []candidate.ID {
	if n == 0 {
		return nil
	}
	ids := make([]candidate.ID, n)
	for i := 0; i < n; i++ {
		ids[i] = candidate.ID(scratch[i])
	}
	return ids
}

