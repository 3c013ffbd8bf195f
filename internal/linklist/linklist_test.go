package linklist

import (
	"testing"

	"github.com/imgmorph/peel/internal/candidate"
)

func TestLinkHeadAndUnlink(t *testing.T) {
	l := NewLists(3, 4)
	id1, id2 := candidate.ID(1), candidate.ID(2)

	l.Link(id1, 0)
	l.Link(id2, 0)
	if got := l.Head(0); got != id1 {
		t.Fatalf("Head(0) = %d, want %d (first linked)", got, id1)
	}

	n := l.UnlinkAll(id1)
	if n != 1 {
		t.Fatalf("UnlinkAll(id1) removed from %d lists, want 1", n)
	}
	if got := l.Head(0); got != id2 {
		t.Fatalf("Head(0) after unlinking id1 = %d, want %d", got, id2)
	}
	if l.Linked(id1) {
		t.Fatal("id1 should no longer be linked to anything")
	}
}

func TestMultiListChainRemoval(t *testing.T) {
	l := NewLists(4, 2)
	id := candidate.ID(1)

	l.Link(id, 0)
	l.Link(id, 2)
	l.Link(id, 3)

	if !l.Linked(id) {
		t.Fatal("id should be linked after three Link calls")
	}
	n := l.UnlinkAll(id)
	if n != 3 {
		t.Fatalf("UnlinkAll removed from %d lists, want 3", n)
	}
	for _, k := range []int{0, 2, 3} {
		if l.Head(k) != candidate.HEADER {
			t.Errorf("list %d should be empty after UnlinkAll, head = %d", k, l.Head(k))
		}
	}
	if l.Linked(id) {
		t.Fatal("id should not be linked after UnlinkAll")
	}
}

func TestHeadEmptyListIsHeader(t *testing.T) {
	l := NewLists(2, 2)
	if got := l.Head(0); got != candidate.HEADER {
		t.Fatalf("Head of empty list = %d, want HEADER", got)
	}
}

func TestIndependentListsPerK(t *testing.T) {
	l := NewLists(2, 3)
	id1, id2, id3 := candidate.ID(1), candidate.ID(2), candidate.ID(3)
	l.Link(id1, 0)
	l.Link(id2, 1)
	l.Link(id3, 1)

	if l.Head(0) != id1 {
		t.Errorf("list 0 head = %d, want %d", l.Head(0), id1)
	}
	if l.Head(1) != id2 {
		t.Errorf("list 1 head = %d, want %d", l.Head(1), id2)
	}
	l.UnlinkAll(id2)
	if l.Head(1) != id3 {
		t.Errorf("list 1 head after removing id2 = %d, want %d", l.Head(1), id3)
	}
}
