package main

import (
	"testing"

	"github.com/imgmorph/peel"
)

func TestBuildFamilyForcesOrigin(t *testing.T) {
	ses := buildFamily(3, 2, 0)
	if len(ses) != 2 {
		t.Fatalf("len(ses) = %d, want 2", len(ses))
	}
	for i, se := range ses {
		if err := se.ValidateOrigin(); err != nil {
			t.Errorf("ses[%d]: ValidateOrigin: %v", i, err)
		}
	}
}

func TestBuildFamilySameContentSeedIsReproducible(t *testing.T) {
	a := buildFamily(5, 1, 0)
	b := buildFamily(5, 1, 0)
	box, err := peel.NewBoundingBox(peel.NewPosition(-2, -2), peel.NewPosition(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	it := peel.NewPositionIterator(box)
	for it.Next() {
		p := it.Current()
		va, err := a[0].GetAbsolute(p)
		if err != nil {
			t.Fatal(err)
		}
		vb, err := b[0].GetAbsolute(p)
		if err != nil {
			t.Fatal(err)
		}
		if va != vb {
			t.Fatalf("content differs at %v with the same contentSeed", p)
		}
	}
}

func TestAgreeEmptyAndSingletonGroupsTrivial(t *testing.T) {
	if !agree(nil) {
		t.Error("agree(nil) = false, want true")
	}
	x := peel.NewBinaryImage(mustSize(t, 2, 2))
	se := mustOriginSE(t)
	res, err := peel.Run(peel.Erosion, peel.Naive, x, []*peel.StructuringElement{se}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !agree([]algorithmRun{{result: res}}) {
		t.Error("agree of a single run should always be true")
	}
}

func TestResidueCountsPartitionsEveryPixel(t *testing.T) {
	x := peel.NewBinaryImage(mustSize(t, 3, 3))
	if err := x.Set(peel.NewPosition(1, 1), true); err != nil {
		t.Fatal(err)
	}
	se := mustOriginSE(t)
	res, err := peel.Run(peel.Erosion, peel.Naive, x, []*peel.StructuringElement{se}, 1)
	if err != nil {
		t.Fatal(err)
	}
	fg, bg := residueCounts(res.Residues)
	if fg+bg != 9 {
		t.Errorf("fg+bg = %d, want 9", fg+bg)
	}
	if fg != 1 {
		t.Errorf("fg = %d, want 1 (only the center pixel was ever foreground)", fg)
	}
}

func mustSize(t *testing.T, lengths ...int) peel.Size {
	t.Helper()
	size, err := peel.NewSize(lengths...)
	if err != nil {
		t.Fatal(err)
	}
	return size
}

func mustOriginSE(t *testing.T) *peel.StructuringElement {
	t.Helper()
	size, err := peel.NewSize(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	se, err := peel.NewStructuringElement(size.Box())
	if err != nil {
		t.Fatal(err)
	}
	if err := se.SetAbsolute(peel.NewPosition(0, 0), true); err != nil {
		t.Fatal(err)
	}
	return se
}
