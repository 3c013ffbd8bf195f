package peel

// StructuringElement is a BoundingBox paired with a BitImage over its own
// size: the binary mask of which offsets from the origin belong to the
// element. The bounding box need not be origin-centered, but it MUST
// contain the origin, and the origin MUST be foreground; this is checked
// by ValidateOrigin, which the engine calls during vectorization and which
// rejects the whole run on failure.
type StructuringElement struct {
	box  BoundingBox
	mask *BitImage
}

// sizeOfBox returns the Size with the same per-axis lengths as box,
// pinned at the origin: the local coordinate system the mask is stored in.
func sizeOfBox(box BoundingBox) (Size, error) {
	lengths := make([]int, box.Dim())
	for i := range lengths {
		lengths[i] = box.Length(i)
	}
	return NewSize(lengths...)
}

// NewStructuringElement allocates an all-background element over box.
func NewStructuringElement(box BoundingBox) (*StructuringElement, error) {
	sz, err := sizeOfBox(box)
	if err != nil {
		return nil, err
	}
	return &StructuringElement{box: box, mask: NewBitImage(sz)}, nil
}

// Box returns the element's bounding box.
func (se *StructuringElement) Box() BoundingBox { return se.box }

// toLocal translates an absolute Position (relative to the true origin)
// into the mask's local coordinate system by subtracting box.Lower.
func (se *StructuringElement) toLocal(p Position) (Position, error) {
	return p.Sub(se.box.Lower())
}

// GetAbsolute returns the mask value at absolute position p, or false
// (with no error) when p lies outside the element's bounding box.
func (se *StructuringElement) GetAbsolute(p Position) (bool, error) {
	if !se.box.Contains(p) {
		return false, nil
	}
	local, err := se.toLocal(p)
	if err != nil {
		return false, err
	}
	return se.mask.Get(local)
}

// SetAbsolute sets the mask value at absolute position p, which must lie
// inside the element's bounding box.
func (se *StructuringElement) SetAbsolute(p Position, v bool) error {
	local, err := se.toLocal(p)
	if err != nil {
		return err
	}
	return se.mask.Set(local, v)
}

// ValidateOrigin fails unless the origin is inside the box and foreground.
func (se *StructuringElement) ValidateOrigin() error {
	origin := NewPosition(make([]int, se.box.Dim())...)
	if !se.box.Contains(origin) {
		return invariantf("StructuringElement.ValidateOrigin", "bounding box does not contain the origin")
	}
	v, err := se.GetAbsolute(origin)
	if err != nil {
		return err
	}
	if !v {
		return invariantf("StructuringElement.ValidateOrigin", "origin is not foreground")
	}
	return nil
}

// ForegroundOffsets returns every foreground absolute Position in iterator
// order, excluding the origin. This is the "vectorization" step of
// BoundaryEvolver's preparation (spec step 1): the ordered sequence of
// non-origin offsets that define the element's shape.
func (se *StructuringElement) ForegroundOffsets() ([]Position, error) {
	var offsets []Position
	origin := NewPosition(make([]int, se.box.Dim())...)
	it := NewPositionIterator(se.box)
	for it.Next() {
		p := it.Current()
		v, err := se.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		if v && !p.Equal(origin) {
			offsets = append(offsets, p)
		}
	}
	return offsets, nil
}

// ReflectByOrigin returns a new element reflected through the true
// coordinate origin: the box is reflected and the value at p is copied to
// -p. This is distinct from BinaryImage.ReflectByOrigin, which reflects
// about the center of the image's Size rather than the true origin.
func (se *StructuringElement) ReflectByOrigin() (*StructuringElement, error) {
	newBox := se.box.ReflectByOrigin()
	out, err := NewStructuringElement(newBox)
	if err != nil {
		return nil, err
	}
	it := NewPositionIterator(se.box)
	for it.Next() {
		p := it.Current()
		v, err := se.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		if v {
			if err := out.SetAbsolute(p.Negate(), true); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Union returns an element whose box is the union of the two boxes and
// whose mask is the pointwise OR.
func (se *StructuringElement) Union(other *StructuringElement) (*StructuringElement, error) {
	box, err := se.box.Union(other.box)
	if err != nil {
		return nil, err
	}
	out, err := NewStructuringElement(box)
	if err != nil {
		return nil, err
	}
	it := NewPositionIterator(box)
	for it.Next() {
		p := it.Current()
		a, err := se.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		b, err := other.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		if a || b {
			if err := out.SetAbsolute(p, true); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Intersection returns an element whose box is the intersection of the two
// boxes and whose mask is the pointwise AND. If the boxes are disjoint the
// result is an InvariantViolation: an intersection of disjoint elements
// has no well-formed bounding box to place it in.
func (se *StructuringElement) Intersection(other *StructuringElement) (*StructuringElement, error) {
	empty, box, err := se.box.Intersection(other.box)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, invariantf("StructuringElement.Intersection", "bounding boxes are disjoint")
	}
	out, err := NewStructuringElement(box)
	if err != nil {
		return nil, err
	}
	it := NewPositionIterator(box)
	for it.Next() {
		p := it.Current()
		a, err := se.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		b, err := other.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		if a && b {
			if err := out.SetAbsolute(p, true); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// SetMinus returns se \ other: the box is the intersection of the two
// boxes (matching the source's box-algebra, which groups set-minus with
// intersection rather than reusing se's own box), and the mask is true
// wherever se is foreground and other is not.
func (se *StructuringElement) SetMinus(other *StructuringElement) (*StructuringElement, error) {
	empty, box, err := se.box.Intersection(other.box)
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, invariantf("StructuringElement.SetMinus", "bounding boxes are disjoint")
	}
	out, err := NewStructuringElement(box)
	if err != nil {
		return nil, err
	}
	it := NewPositionIterator(box)
	for it.Next() {
		p := it.Current()
		a, err := se.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		b, err := other.GetAbsolute(p)
		if err != nil {
			return nil, err
		}
		if a && !b {
			if err := out.SetAbsolute(p, true); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// DelimitedComplement negates every cell inside se's own bounding box, in
// place. The box itself is unchanged.
func (se *StructuringElement) DelimitedComplement() {
	se.mask.Complement()
}
