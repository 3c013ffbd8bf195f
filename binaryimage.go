package peel

// BinaryImage is a StructuringElement whose bounding box's lower corner is
// the origin: a Size-based mask. It is used both as the input image X and
// as the working image Y that the engine mutates in place during a run.
type BinaryImage struct {
	size Size
	bits *BitImage
}

// NewBinaryImage allocates an all-background BinaryImage over size.
func NewBinaryImage(size Size) *BinaryImage {
	return &BinaryImage{size: size, bits: NewBitImage(size)}
}

// Size returns the image's index domain.
func (b *BinaryImage) Size() Size { return b.size }

// Get returns the value at p.
func (b *BinaryImage) Get(p Position) (bool, error) { return b.bits.Get(p) }

// Set stores v at p.
func (b *BinaryImage) Set(p Position, v bool) error { return b.bits.Set(p, v) }

// Clone returns an independent deep copy.
func (b *BinaryImage) Clone() *BinaryImage {
	return &BinaryImage{size: b.size, bits: b.bits.Clone()}
}

// Count returns the number of foreground cells.
func (b *BinaryImage) Count() int { return b.bits.Count() }

// AsStructuringElement wraps the image as a StructuringElement whose box
// is [0, size-1] on every axis, sharing no storage with b. The origin must
// be foreground in b for the result to be usable as an actual SE; callers
// that need that guarantee should call ValidateOrigin themselves.
func (b *BinaryImage) AsStructuringElement() (*StructuringElement, error) {
	se, err := NewStructuringElement(b.size.Box())
	if err != nil {
		return nil, err
	}
	it := NewPositionIterator(b.size.Box())
	for it.Next() {
		p := it.Current()
		v, err := b.Get(p)
		if err != nil {
			return nil, err
		}
		if v {
			if err := se.SetAbsolute(p, true); err != nil {
				return nil, err
			}
		}
	}
	return se, nil
}

// ReflectByOrigin returns b reflected about the center of its own Size,
// NOT about the true coordinate origin. This differs deliberately from
// StructuringElement.ReflectByOrigin: because a BinaryImage's box is
// always anchored at the origin, reflecting through the true origin would
// move every foreground pixel to negative coordinates and produce an
// empty image; reflecting about the box's center keeps the result inside
// the same Size.
func (b *BinaryImage) ReflectByOrigin() (*BinaryImage, error) {
	out := NewBinaryImage(b.size)
	upper := b.size.Box().Upper()
	it := NewPositionIterator(b.size.Box())
	for it.Next() {
		p := it.Current()
		v, err := b.Get(p)
		if err != nil {
			return nil, err
		}
		if !v {
			continue
		}
		coords := make([]int, b.size.Dim())
		for axis := 0; axis < b.size.Dim(); axis++ {
			coords[axis] = upper.At(axis) - p.At(axis)
		}
		if err := out.Set(NewPosition(coords...), true); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GrayscaleImage is the residues output R: one signed integer per pixel
// recording the iteration at which that pixel changed phase, or -1 if it
// was never in the foreground under erosion semantics (see NewResidues).
type GrayscaleImage struct {
	*IntImage
}

// NewResidues builds the residues image per spec step 5: every pixel where
// x is foreground gets 0, every other pixel gets -1.
func NewResidues(x *BinaryImage) (*GrayscaleImage, error) {
	r := NewIntImage(x.Size(), -1)
	it := NewPositionIterator(x.Size().Box())
	for it.Next() {
		p := it.Current()
		v, err := x.Get(p)
		if err != nil {
			return nil, err
		}
		if v {
			if err := r.Set(p, 0); err != nil {
				return nil, err
			}
		}
	}
	return &GrayscaleImage{IntImage: r}, nil
}
