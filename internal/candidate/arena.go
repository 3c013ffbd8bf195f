// Package candidate implements the intrusive doubly linked candidate
// queue over a fixed-capacity id arena described in the specification's
// data model: a HEADER sentinel at id 0, append-at-tail enqueue, splice
// remove with a self-loop tombstone, and enumeration that snapshots the
// successor before the engine may remove the current node.
//
// The arena stores each candidate's pixel position as a plain []int
// rather than any higher-level coordinate type, so this package has no
// dependency on the geometry types the engine builds on top of it; it is
// a narrow, typed replacement for the source's pointer-in-array lists,
// not a general-purpose linked list.
package candidate

// ID identifies a candidate record. ID 0 is the HEADER sentinel reserved
// at construction; it is never a valid application candidate.
type ID uint32

// HEADER is the sentinel id. The queue at HEADER is circular, so an empty
// queue has next[HEADER] == prev[HEADER] == HEADER.
const HEADER ID = 0

type record struct {
	position    []int
	next        ID
	prev        ID
	initialized bool
}

// Arena is a fixed-capacity arena of candidate records plus the intrusive
// queue threaded through them. Allocate grows the arena by one record at
// a time; the capacity given at construction presizes storage but is not
// enforced as a limit. Enqueue and Remove never allocate.
type Arena struct {
	records []record // records[0] is the HEADER sentinel
}

// NewArena reserves storage for capacity candidates plus the sentinel.
func NewArena(capacity int) *Arena {
	a := &Arena{records: make([]record, 1, capacity+1)}
	a.records[HEADER] = record{next: HEADER, prev: HEADER, initialized: true}
	return a
}

// Allocate appends a new candidate at position pos and returns its id.
// The candidate is not enqueued; callers enqueue explicitly.
func (a *Arena) Allocate(pos []int) ID {
	id := ID(len(a.records))
	p := make([]int, len(pos))
	copy(p, pos)
	a.records = append(a.records, record{position: p, next: id, prev: id})
	return id
}

// Len returns the number of allocated candidates, excluding HEADER.
func (a *Arena) Len() int { return len(a.records) - 1 }

// Position returns the position recorded for id.
func (a *Arena) Position(id ID) []int { return a.records[id].position }

// Initialized reports whether id has ever been enqueued.
func (a *Arena) Initialized(id ID) bool { return a.records[id].initialized }

// Removed reports whether id was enqueued and then removed: a tombstoned
// node self-loops its next pointer.
func (a *Arena) Removed(id ID) bool {
	r := &a.records[id]
	return r.initialized && r.next == id
}

// Enqueue appends id at the tail of the queue. It is idempotent: calling
// Enqueue on an already-initialized id (whether currently in the queue or
// already removed) is a documented no-op, per the source's reliance on
// EnqueueCandidateNode silently accepting re-enqueues (spec §9, open
// question 2).
func (a *Arena) Enqueue(id ID) error {
	if id == HEADER {
		return errMembership("Arena.Enqueue", "cannot enqueue HEADER")
	}
	if a.records[id].initialized {
		return nil
	}
	tail := a.records[HEADER].prev
	a.records[tail].next = id
	a.records[id].prev = tail
	a.records[id].next = HEADER
	a.records[HEADER].prev = id
	a.records[id].initialized = true
	return nil
}

// Remove splices id out of the queue and self-loops its links, tombstoning
// it so it cannot re-enter the queue within the same run.
func (a *Arena) Remove(id ID) error {
	if id == HEADER {
		return errMembership("Arena.Remove", "cannot remove HEADER")
	}
	if !a.records[id].initialized {
		return errMembership("Arena.Remove", "candidate %d was never enqueued", id)
	}
	if a.records[id].next == id {
		return errMembership("Arena.Remove", "candidate %d already removed", id)
	}
	r := &a.records[id]
	a.records[r.prev].next = r.next
	a.records[r.next].prev = r.prev
	r.next = id
	r.prev = id
	return nil
}

// Next returns the id following cur in the queue. Passing HEADER starts
// (or continues) a walk from the head. The walk is robust to the current
// node being removed mid-pass because the caller is expected to capture
// Next(cur) before calling Remove(cur), matching the source's "snapshot
// next before removing" discipline.
func (a *Arena) Next(cur ID) ID { return a.records[cur].next }

// Empty reports whether the queue currently holds no candidates.
func (a *Arena) Empty() bool { return a.records[HEADER].next == HEADER }
