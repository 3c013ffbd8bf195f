// Package linklist implements the Matrix variant's structuring-element
// indexed sparse doubly linked lists: for each offset index k into
// u_elements, a doubly linked list of candidate ids whose border predicate
// currently fails for that offset, plus a per-candidate singly linked
// chain (threaded through the per-list "next-link" arrays) enumerating
// which k's currently link a given candidate. The chain is what makes
// RemoveCandidateNode (unlinking a candidate from every list it is on)
// O(1) amortized instead of O(numK).
package linklist

import "github.com/imgmorph/peel/internal/candidate"

// noK is the chain-termination sentinel: "no k links this candidate" or
// "end of chain".
const noK = -1

// Lists holds the numK parallel doubly linked lists plus the per-candidate
// chain threading them together.
type Lists struct {
	numK int
	next [][]candidate.ID // next[k][id]
	prev [][]candidate.ID // prev[k][id]

	chainNext []int // chainNext[k][id] flattened: next k in id's chain (see index)
	head      []int // head[id]: first k in id's chain, or noK
}

// NewLists allocates lists for numK offsets over numCandidates ids (plus
// the shared HEADER at index 0).
func NewLists(numK, numCandidates int) *Lists {
	n := numCandidates + 1
	l := &Lists{
		numK:      numK,
		next:      make([][]candidate.ID, numK),
		prev:      make([][]candidate.ID, numK),
		chainNext: make([]int, numK*n),
		head:      make([]int, n),
	}
	for k := 0; k < numK; k++ {
		l.next[k] = make([]candidate.ID, n)
		l.prev[k] = make([]candidate.ID, n)
	}
	for i := range l.head {
		l.head[i] = noK
	}
	for i := range l.chainNext {
		l.chainNext[i] = noK
	}
	return l
}

func (l *Lists) chainIdx(k int, id candidate.ID) int { return k*len(l.head) + int(id) }

// Link splices id onto the tail of list k and prepends k onto id's chain.
// Callers must not call Link(id, k) twice without an intervening Unlink;
// the engine's invariant (spec §4.4.3) is that Link is only ever called
// when the border predicate newly fails for (id, k).
func (l *Lists) Link(id candidate.ID, k int) {
	tail := l.prev[k][candidate.HEADER]
	l.next[k][tail] = id
	l.prev[k][id] = tail
	l.next[k][id] = candidate.HEADER
	l.prev[k][candidate.HEADER] = id

	l.chainNext[l.chainIdx(k, id)] = l.head[id]
	l.head[id] = k
}

// unlink splices id out of list k only; it does not touch the chain.
func (l *Lists) unlink(id candidate.ID, k int) {
	p := l.prev[k][id]
	n := l.next[k][id]
	l.next[k][p] = n
	l.prev[k][n] = p
}

// UnlinkAll removes id from every list it currently belongs to, walking
// its chain, and returns the number of lists it was removed from (used by
// the engine to charge the +2-per-list remove-memory-access counter). The
// chain itself is cleared.
func (l *Lists) UnlinkAll(id candidate.ID) int {
	count := 0
	for k := l.head[id]; k != noK; {
		nextK := l.chainNext[l.chainIdx(k, id)]
		l.unlink(id, k)
		count++
		k = nextK
	}
	l.head[id] = noK
	return count
}

// Head returns the first candidate id in list k, or candidate.HEADER if
// the list is empty.
func (l *Lists) Head(k int) candidate.ID {
	return l.next[k][candidate.HEADER]
}

// Linked reports whether id currently appears in any list (its chain is
// non-empty).
func (l *Lists) Linked(id candidate.ID) bool {
	return l.head[id] != noK
}
