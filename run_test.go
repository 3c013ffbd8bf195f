package peel

import "testing"

func square(n int, fill bool) *BinaryImage {
	size, err := NewSize(n, n)
	if err != nil {
		panic(err)
	}
	img := NewBinaryImage(size)
	if fill {
		it := NewPositionIterator(size.Box())
		for it.Next() {
			if err := img.Set(it.Current(), true); err != nil {
				panic(err)
			}
		}
	}
	return img
}

// seFromImage builds an SE with img's mask whose box is centered on the
// origin (every image passed here has odd lengths), so a 3x3 image gives
// the 3x3 neighborhood around the origin.
func seFromImage(img *BinaryImage) *StructuringElement {
	size := img.Size()
	lo := make([]int, size.Dim())
	hi := make([]int, size.Dim())
	for i := range lo {
		lo[i] = -(size.Length(i) / 2)
		hi[i] = lo[i] + size.Length(i) - 1
	}
	box, err := NewBoundingBox(NewPosition(lo...), NewPosition(hi...))
	if err != nil {
		panic(err)
	}
	se, err := NewStructuringElement(box)
	if err != nil {
		panic(err)
	}
	it := NewPositionIterator(size.Box())
	for it.Next() {
		p := it.Current()
		v, err := img.Get(p)
		if err != nil {
			panic(err)
		}
		if !v {
			continue
		}
		q, err := p.Add(box.Lower())
		if err != nil {
			panic(err)
		}
		if err := se.SetAbsolute(q, true); err != nil {
			panic(err)
		}
	}
	return se
}

func residueAt(t *testing.T, r *GrayscaleImage, x, y int) int {
	t.Helper()
	v, err := r.Get(NewPosition(x, y))
	if err != nil {
		t.Fatalf("Get(%d,%d): %v", x, y, err)
	}
	return v
}

// S1: 3x3 all-true erosion by a 3x3 all-true SE peels the boundary in
// iteration 1 and the center in iteration 2.
func TestErosionS1(t *testing.T) {
	x := square(3, true)
	se := seFromImage(square(3, true))

	want := [3][3]int{
		{1, 1, 1},
		{1, 2, 1},
		{1, 1, 1},
	}

	for _, variant := range []Variant{Naive, Border, Matrix} {
		res, err := Run(Erosion, variant, x, []*StructuringElement{se}, 1)
		if err != nil {
			t.Fatalf("%s: Run: %v", variant, err)
		}
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				got := residueAt(t, res.Residues, col, row)
				if got != want[row][col] {
					t.Errorf("%s: R[%d][%d] = %d, want %d", variant, row, col, got, want[row][col])
				}
			}
		}
	}
}

// S3: eroding/dilating an empty image terminates immediately with R all -1.
func TestDilationEmptyImageS3(t *testing.T) {
	x := square(3, false)

	// An all-background image has no foreground origin to derive an SE
	// from, so build a single-point SE directly.
	size, err := NewSize(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	point, err := NewStructuringElement(size.Box())
	if err != nil {
		t.Fatal(err)
	}
	if err := point.SetAbsolute(NewPosition(0, 0), true); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Dilation, Naive, x, []*StructuringElement{point}, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	it := NewPositionIterator(x.Size().Box())
	for it.Next() {
		p := it.Current()
		v, err := res.Residues.Get(p)
		if err != nil {
			t.Fatal(err)
		}
		if v != -1 {
			t.Errorf("R%v = %d, want -1", p, v)
		}
	}
}

// S6: Naive's determinate border comparison count for S1's first iteration
// is exactly 9 candidates x 8 offsets, independent of shuffle order.
func TestCounterScenarioS6(t *testing.T) {
	x := square(3, true)
	se := seFromImage(square(3, true))

	res, err := Run(Erosion, Naive, x, []*StructuringElement{se}, 99)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Counters.DetermineBorderComparisons) < 2 {
		t.Fatalf("expected at least 2 counter entries, got %d", len(res.Counters.DetermineBorderComparisons))
	}
	if got := res.Counters.DetermineBorderComparisons[1]; got != 72 {
		t.Errorf("determinate border comparisons[1] = %d, want 72", got)
	}
}

// S4: dilating a single pixel by a 3x3 SE fills outward ring by ring.
func TestDilationS4(t *testing.T) {
	size, err := NewSize(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	x := NewBinaryImage(size)
	if err := x.Set(NewPosition(2, 2), true); err != nil {
		t.Fatal(err)
	}
	se := seFromImage(square(3, true))

	for _, variant := range []Variant{Naive, Border, Matrix} {
		res, err := Run(Dilation, variant, x, []*StructuringElement{se}, 7)
		if err != nil {
			t.Fatalf("%s: Run: %v", variant, err)
		}
		if got := residueAt(t, res.Residues, 2, 2); got != 0 {
			t.Errorf("%s: R[center] = %d, want 0", variant, got)
		}
		for _, p := range []Position{NewPosition(1, 1), NewPosition(3, 3), NewPosition(1, 3), NewPosition(3, 1)} {
			v, err := res.Residues.Get(p)
			if err != nil {
				t.Fatal(err)
			}
			if v != 1 {
				t.Errorf("%s: R%v = %d, want 1 (3x3 ring)", variant, p, v)
			}
		}
		for _, p := range []Position{NewPosition(0, 0), NewPosition(4, 4), NewPosition(0, 4), NewPosition(4, 0)} {
			v, err := res.Residues.Get(p)
			if err != nil {
				t.Fatal(err)
			}
			if v != 2 {
				t.Errorf("%s: R%v = %d, want 2 (5x5 ring)", variant, p, v)
			}
		}
	}
}

// Property 1: all three variants agree on R for a multi-SE family (S5).
func TestVariantEquivalenceTwoSEFamily(t *testing.T) {
	size, err := NewSize(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	x := NewBinaryImage(size)
	// L-shape.
	for _, p := range []Position{
		NewPosition(1, 1), NewPosition(2, 1), NewPosition(3, 1),
		NewPosition(1, 2), NewPosition(1, 3),
	} {
		if err := x.Set(p, true); err != nil {
			t.Fatal(err)
		}
	}

	hBox, err := NewBoundingBox(NewPosition(-1, 0), NewPosition(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	horizontal, err := NewStructuringElement(hBox)
	if err != nil {
		t.Fatal(err)
	}
	for _, off := range []Position{NewPosition(-1, 0), NewPosition(0, 0), NewPosition(1, 0)} {
		if err := horizontal.SetAbsolute(off, true); err != nil {
			t.Fatal(err)
		}
	}

	vBox, err := NewBoundingBox(NewPosition(0, -1), NewPosition(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	vertical, err := NewStructuringElement(vBox)
	if err != nil {
		t.Fatal(err)
	}
	for _, off := range []Position{NewPosition(0, -1), NewPosition(0, 0), NewPosition(0, 1)} {
		if err := vertical.SetAbsolute(off, true); err != nil {
			t.Fatal(err)
		}
	}

	ses := []*StructuringElement{horizontal, vertical}

	var reference *GrayscaleImage
	for _, variant := range []Variant{Naive, Border, Matrix} {
		res, err := Run(Erosion, variant, x, ses, 123)
		if err != nil {
			t.Fatalf("%s: Run: %v", variant, err)
		}
		if reference == nil {
			reference = res.Residues
			continue
		}
		it := NewPositionIterator(size.Box())
		for it.Next() {
			p := it.Current()
			want, err := reference.Get(p)
			if err != nil {
				t.Fatal(err)
			}
			got, err := res.Residues.Get(p)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("%s: R%v = %d, want %d (matching Naive)", variant, p, got, want)
			}
		}
	}
}

func TestRunRejectsNilImage(t *testing.T) {
	se := seFromImage(square(1, true))
	if _, err := Run(Erosion, Naive, nil, []*StructuringElement{se}, 1); err == nil {
		t.Fatal("expected an error for a nil image")
	}
}

func TestRunRejectsEmptySEFamily(t *testing.T) {
	x := square(3, true)
	if _, err := Run(Erosion, Naive, x, nil, 1); err == nil {
		t.Fatal("expected an error for an empty SE family")
	}
}
