package rng

import "testing"

func TestPermutationIsPermutation(t *testing.T) {
	s := New(42)
	p := s.Permutation(10)
	seen := make([]bool, 10)
	for _, v := range p {
		if v < 0 || v >= 10 || seen[v] {
			t.Fatalf("Permutation(10) = %v is not a valid permutation", p)
		}
		seen[v] = true
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := New(7).Permutation(20)
	b := New(7).Permutation(20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different permutations at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestNegativeSeedUsesTimeAndStillPermutes(t *testing.T) {
	s := New(-1)
	p := s.Permutation(5)
	seen := make([]bool, 5)
	for _, v := range p {
		if v < 0 || v >= 5 || seen[v] {
			t.Fatalf("Permutation(5) = %v is not a valid permutation", p)
		}
		seen[v] = true
	}
}

func TestShuffleTrivialLengths(t *testing.T) {
	s := New(1)
	s.Shuffle(0, func(i, j int) { t.Fatal("swap should not be called for n=0") })
	s.Shuffle(1, func(i, j int) { t.Fatal("swap should not be called for n=1") })
}
