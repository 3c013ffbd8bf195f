package peel

import "github.com/bits-and-blooms/bitset"

// BitImage is a dense N-D packed-bit matrix addressed by Position. Storage
// is delegated to bitset.BitSet (word-packed []uint64 underneath); the
// only thing BitImage commits to observably is that its capacity equals
// size.Capacity() cells.
type BitImage struct {
	size Size
	bits *bitset.BitSet
}

// NewBitImage allocates a BitImage over size, all cells false.
func NewBitImage(size Size) *BitImage {
	return &BitImage{size: size, bits: bitset.New(uint(size.Capacity()))}
}

// Size returns the image's index domain.
func (img *BitImage) Size() Size { return img.size }

// Get returns the value at p.
func (img *BitImage) Get(p Position) (bool, error) {
	i, err := index(img.size, p, "BitImage.Get")
	if err != nil {
		return false, err
	}
	return img.bits.Test(uint(i)), nil
}

// Set stores v at p.
func (img *BitImage) Set(p Position, v bool) error {
	i, err := index(img.size, p, "BitImage.Set")
	if err != nil {
		return err
	}
	if v {
		img.bits.Set(uint(i))
	} else {
		img.bits.Clear(uint(i))
	}
	return nil
}

// Clone returns an independent deep copy.
func (img *BitImage) Clone() *BitImage {
	return &BitImage{size: img.size, bits: img.bits.Clone()}
}

// Count returns the number of set cells.
func (img *BitImage) Count() int {
	return int(img.bits.Count())
}

// Fill sets every cell to v.
func (img *BitImage) Fill(v bool) {
	if v {
		for i := 0; i < img.size.Capacity(); i++ {
			img.bits.Set(uint(i))
		}
		return
	}
	img.bits.ClearAll()
}

// Union sets img's cells to img OR other, in place. Sizes must match
// capacity (the caller is responsible for aligning coordinate systems,
// e.g. via StructuringElement.Union which handles the bounding-box
// translation).
func (img *BitImage) Union(other *BitImage) {
	img.bits.InPlaceUnion(other.bits)
}

// Intersect sets img's cells to img AND other, in place.
func (img *BitImage) Intersect(other *BitImage) {
	img.bits.InPlaceIntersection(other.bits)
}

// SetMinus clears every cell in img that is set in other.
func (img *BitImage) SetMinus(other *BitImage) {
	img.bits.InPlaceDifference(other.bits)
}

// Complement flips every cell in img, within its own capacity (bits beyond
// size.Capacity() that the underlying word-packed storage may carry as
// padding are never flipped or observed).
func (img *BitImage) Complement() {
	flipped := bitset.New(uint(img.size.Capacity()))
	for i := 0; i < img.size.Capacity(); i++ {
		if !img.bits.Test(uint(i)) {
			flipped.Set(uint(i))
		}
	}
	img.bits = flipped
}
