package peel

// detectionNeighbor returns the neighbor position DetectBorder and the
// initial/link-list predicates check: p+offset for erosion, p-offset for
// dilation.
func detectionNeighbor(mode Mode, p, offset Position) (Position, error) {
	if mode == Erosion {
		return p.Add(offset)
	}
	return p.Sub(offset)
}

// insertionNeighbor returns the neighbor position InsertNewCandidateFromBorder
// checks, which uses the opposite sign convention from detectionNeighbor:
// p-offset for erosion, p+offset for dilation.
func insertionNeighbor(mode Mode, p, offset Position) (Position, error) {
	if mode == Erosion {
		return p.Sub(offset)
	}
	return p.Add(offset)
}

// triggersBorder evaluates the shared border predicate used by DetectBorder,
// the initial-candidate check, and Matrix's link-list maintenance: q is a
// border trigger if it is outside the image (erosion only) or if it is
// inside and in the opposing phase from the candidate's own phase.
func (ev *evolver) triggersBorder(q Position) (bool, error) {
	if !ev.size.Contains(q) {
		return ev.mode == Erosion, nil
	}
	yq, err := ev.y.Get(q)
	if err != nil {
		return false, err
	}
	samePhase := yq == (ev.mode == Erosion)
	return !samePhase, nil
}

// insertionQualifies evaluates the predicate InsertNewCandidateFromBorder
// uses to decide whether q is a previously-untouched candidate-phase pixel
// worth (re-)enrolling: q must be inside the image, in the original
// candidate phase (foreground for erosion, background for dilation), and
// never yet removed (R[q] <= 0 for erosion, R[q] <= -1 for dilation).
func (ev *evolver) insertionQualifies(q Position) (bool, error) {
	if !ev.size.Contains(q) {
		return false, nil
	}
	yq, err := ev.y.Get(q)
	if err != nil {
		return false, err
	}
	wantPhase := ev.mode == Erosion
	if yq != wantPhase {
		return false, nil
	}
	rq, err := ev.r.Get(q)
	if err != nil {
		return false, err
	}
	threshold := 0
	if ev.mode == Dilation {
		threshold = -1
	}
	return rq <= threshold, nil
}
