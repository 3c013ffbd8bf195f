package peel

// BoundingBox is an ordered pair (Lower, Upper) of Positions with
// lower[i] <= upper[i] for every axis i. The invariant is maintained on
// construction and on every Lower/Upper mutation by silently widening
// whichever bound would otherwise be violated.
type BoundingBox struct {
	lower Position
	upper Position
}

// NewBoundingBox builds a BoundingBox from two Positions of equal
// dimension, widening whichever bound is needed so lower[i] <= upper[i]
// holds on every axis.
func NewBoundingBox(lower, upper Position) (BoundingBox, error) {
	if lower.Dim() != upper.Dim() {
		return BoundingBox{}, invariantf("NewBoundingBox", "dimension mismatch: %d vs %d", lower.Dim(), upper.Dim())
	}
	lo := lower.Clone()
	hi := upper.Clone()
	fixOrder(&lo, &hi)
	return BoundingBox{lower: lo, upper: hi}, nil
}

func fixOrder(lo, hi *Position) {
	for i := 0; i < lo.Dim(); i++ {
		if lo.coords[i] > hi.coords[i] {
			lo.coords[i], hi.coords[i] = hi.coords[i], lo.coords[i]
		}
	}
}

// Dim returns the dimension N of the box.
func (b BoundingBox) Dim() int { return b.lower.Dim() }

// Lower returns the lower corner.
func (b BoundingBox) Lower() Position { return b.lower }

// Upper returns the upper corner.
func (b BoundingBox) Upper() Position { return b.upper }

// SetLower returns a copy of b with its lower corner replaced, widening
// Upper on any axis where the new Lower would exceed it.
func (b BoundingBox) SetLower(lower Position) (BoundingBox, error) {
	if lower.Dim() != b.Dim() {
		return BoundingBox{}, invariantf("BoundingBox.SetLower", "dimension mismatch: %d vs %d", lower.Dim(), b.Dim())
	}
	hi := b.upper.Clone()
	for i := 0; i < hi.Dim(); i++ {
		hi.coords[i] = max(hi.coords[i], lower.At(i))
	}
	return BoundingBox{lower: lower.Clone(), upper: hi}, nil
}

// SetUpper returns a copy of b with its upper corner replaced, widening
// Lower on any axis where the new Upper would fall below it.
func (b BoundingBox) SetUpper(upper Position) (BoundingBox, error) {
	if upper.Dim() != b.Dim() {
		return BoundingBox{}, invariantf("BoundingBox.SetUpper", "dimension mismatch: %d vs %d", upper.Dim(), b.Dim())
	}
	lo := b.lower.Clone()
	for i := 0; i < lo.Dim(); i++ {
		lo.coords[i] = min(lo.coords[i], upper.At(i))
	}
	return BoundingBox{lower: lo, upper: upper.Clone()}, nil
}

// Length returns upper[axis] - lower[axis] + 1.
func (b BoundingBox) Length(axis int) int {
	return b.upper.At(axis) - b.lower.At(axis) + 1
}

// Capacity returns the product of the per-axis lengths: the number of
// integer points inside the box.
func (b BoundingBox) Capacity() int {
	c := 1
	for i := 0; i < b.Dim(); i++ {
		c *= b.Length(i)
	}
	return c
}

// Contains reports whether p lies within the box on every axis.
func (b BoundingBox) Contains(p Position) bool {
	if p.Dim() != b.Dim() {
		return false
	}
	for i := 0; i < b.Dim(); i++ {
		if p.At(i) < b.lower.At(i) || p.At(i) > b.upper.At(i) {
			return false
		}
	}
	return true
}

// Union returns the smallest BoundingBox containing both b and other:
// the axis-wise min of the lower corners and max of the upper corners.
func (b BoundingBox) Union(other BoundingBox) (BoundingBox, error) {
	if b.Dim() != other.Dim() {
		return BoundingBox{}, invariantf("BoundingBox.Union", "dimension mismatch: %d vs %d", b.Dim(), other.Dim())
	}
	lo := make([]int, b.Dim())
	hi := make([]int, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = min(b.lower.At(i), other.lower.At(i))
		hi[i] = max(b.upper.At(i), other.upper.At(i))
	}
	return BoundingBox{lower: NewPosition(lo...), upper: NewPosition(hi...)}, nil
}

// Intersection returns (true, zero-box) if b and other are disjoint on any
// axis, and (false, box) otherwise, where box is the axis-wise max of the
// lower corners and min of the upper corners.
func (b BoundingBox) Intersection(other BoundingBox) (empty bool, box BoundingBox, err error) {
	if b.Dim() != other.Dim() {
		return false, BoundingBox{}, invariantf("BoundingBox.Intersection", "dimension mismatch: %d vs %d", b.Dim(), other.Dim())
	}
	lo := make([]int, b.Dim())
	hi := make([]int, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = max(b.lower.At(i), other.lower.At(i))
		hi[i] = min(b.upper.At(i), other.upper.At(i))
		if lo[i] > hi[i] {
			return true, BoundingBox{}, nil
		}
	}
	return false, BoundingBox{lower: NewPosition(lo...), upper: NewPosition(hi...)}, nil
}

// ReflectByOrigin returns the box reflected through the true coordinate
// origin: new_lower[i] = -upper[i], new_upper[i] = -lower[i].
func (b BoundingBox) ReflectByOrigin() BoundingBox {
	lo := make([]int, b.Dim())
	hi := make([]int, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = -b.upper.At(i)
		hi[i] = -b.lower.At(i)
	}
	return BoundingBox{lower: NewPosition(lo...), upper: NewPosition(hi...)}
}

// ExpandPoint grows the box, if needed, so it contains p.
func (b BoundingBox) ExpandPoint(p Position) (BoundingBox, error) {
	if p.Dim() != b.Dim() {
		return BoundingBox{}, invariantf("BoundingBox.ExpandPoint", "dimension mismatch: %d vs %d", p.Dim(), b.Dim())
	}
	lo := make([]int, b.Dim())
	hi := make([]int, b.Dim())
	for i := 0; i < b.Dim(); i++ {
		lo[i] = min(b.lower.At(i), p.At(i))
		hi[i] = max(b.upper.At(i), p.At(i))
	}
	return BoundingBox{lower: NewPosition(lo...), upper: NewPosition(hi...)}, nil
}

// ExpandBox is Union by another name, matching the source's distinction
// between expanding by a point and expanding by a box.
func (b BoundingBox) ExpandBox(other BoundingBox) (BoundingBox, error) {
	return b.Union(other)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
