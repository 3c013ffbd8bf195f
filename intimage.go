package peel

// IntImage is a dense N-D matrix of signed integers, row-major addressed
// exactly like BitImage. It backs the residues output and the Border
// variant's candidate-id lookup grid.
type IntImage struct {
	size Size
	data []int
}

// NewIntImage allocates an IntImage over size with every cell set to fill.
func NewIntImage(size Size, fill int) *IntImage {
	data := make([]int, size.Capacity())
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &IntImage{size: size, data: data}
}

// Size returns the image's index domain.
func (img *IntImage) Size() Size { return img.size }

// Get returns the value at p.
func (img *IntImage) Get(p Position) (int, error) {
	i, err := index(img.size, p, "IntImage.Get")
	if err != nil {
		return 0, err
	}
	return img.data[i], nil
}

// Set stores v at p.
func (img *IntImage) Set(p Position, v int) error {
	i, err := index(img.size, p, "IntImage.Set")
	if err != nil {
		return err
	}
	img.data[i] = v
	return nil
}

// Raw returns the underlying row-major backing slice. Callers must not
// retain it past the IntImage's lifetime or resize it.
func (img *IntImage) Raw() []int { return img.data }
