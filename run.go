package peel

import (
	"errors"
	"time"

	"github.com/imgmorph/peel/internal/candidate"
)

// Result holds everything a run produces: the residues (R[p] == 0 means p
// was foreground from the start and never changed phase, -1 means p was
// never foreground; a positive value is the se_iteration at which p
// changed phase, removed under erosion or added under dilation), the
// final instrumentation counters, and wall-clock timing.
type Result struct {
	Residues *GrayscaleImage
	Counters *Counters
	Started  time.Time
	Elapsed  time.Duration
}

// Run applies mode (erosion or dilation) to x using the structuring
// element family ses, via the chosen algorithm variant, and returns the
// residues and instrumentation counters.
//
// All three variants are required to produce identical Residues for the
// same x, ses, mode, and seed (spec §8, property 1); they differ only in
// the shape of the work that produces that answer, which the Counters
// make observable. A negative seed (the CLI's positional seed of -1)
// draws from the wall clock; any non-negative value reproduces the same
// structuring-element and offset shuffle order on every run.
//
// This replaces the source's (bool success, out-parameters) calling
// convention with a single (*Result, error) return: a non-nil error is
// always an [*Error] and always fatal (an invariant or membership
// violation). Reaching a fixed point is
// success, not an error, even though the taxonomy names it
// [ConvergenceStall].
func Run(mode Mode, sel Variant, x *BinaryImage, ses []*StructuringElement, seed int64) (*Result, error) {
	if x == nil {
		return nil, invariantf("Run", "x must not be nil")
	}
	if len(ses) == 0 {
		return nil, invariantf("Run", "at least one structuring element is required")
	}

	started := time.Now()

	var impl variant
	switch sel {
	case Naive:
		impl = naiveVariant{}
	case Border:
		impl = borderVariant{}
	case Matrix:
		impl = &matrixVariant{}
	default:
		return nil, invariantf("Run", "unknown variant %d", int(sel))
	}

	ev, err := newEvolver(mode, impl, x, ses, seed)
	var residues *GrayscaleImage
	var counters *Counters
	if err == nil {
		residues, counters, err = ev.run()
	}
	if err != nil {
		var me *candidate.MembershipError
		if errors.As(err, &me) {
			return nil, membershipf(me.Op, "%s", me.Message)
		}
		return nil, err
	}

	return &Result{
		Residues: residues,
		Counters: counters,
		Started:  started,
		Elapsed:  time.Since(started),
	}, nil
}
