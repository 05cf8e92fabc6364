// SPDX-License-Identifier: MIT

package arena

import (
	"log/slog"
	"math"
	"sync/atomic"
)

// arenaIDs hands out arena ids; 0 is never issued.
var arenaIDs atomic.Uint32

// Arena owns every node appended to it, for exactly the node's lifetime.
// Zero value is not usable; construct with New.
type Arena[T Resource] struct {
	head, tail *node[T]
	length     int

	slots []*node[T] // slot -> live node (nil when free)
	gens  []uint32   // slot -> last generation issued
	free  []uint32   // reusable slots, LIFO

	outstanding int // raw allocations: nodes + tracked buffers
	peak        int
	appended    int
	removed     int
	reissued    int

	id      uint32
	tearing bool
	log     *slog.Logger
}

// New returns an empty Arena.
func New[T Resource](opts ...Option) *Arena[T] {
	o := gatherOptions(opts...)

	return &Arena[T]{id: arenaIDs.Add(1), log: o.logger}
}

// Append links v at the tail and returns its Handle.
// The node itself counts as one raw allocation.
// Complexity: O(1) amortized.
func (a *Arena[T]) Append(v T) Handle {
	var slot uint32
	if k := len(a.free); k > 0 {
		slot = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		slot = uint32(len(a.slots))
		a.slots = append(a.slots, nil)
		a.gens = append(a.gens, 0)
	}
	gen := nextGen(a.gens[slot])
	a.gens[slot] = gen

	n := &node[T]{value: v, owner: a, slot: slot, gen: gen}
	a.slots[slot] = n
	a.link(n)

	a.outstanding++
	a.appended++
	if a.length > a.peak {
		a.peak = a.length
	}

	return Handle{owner: a.id, slot: slot, gen: gen}
}

// link appends n after the current tail.
func (a *Arena[T]) link(n *node[T]) {
	if a.length == 0 {
		a.head, a.tail = n, n
		n.prev, n.next = nil, nil
	} else {
		if a.tail.next != nil {
			panic(panicBrokenList)
		}
		a.tail.next = n
		n.prev = a.tail
		a.tail = n
	}
	a.length++
}

// lookup resolves h to its live node.
func (a *Arena[T]) lookup(h Handle) (*node[T], error) {
	if h.IsZero() {
		return nil, ErrStaleHandle
	}
	if h.owner != a.id {
		return nil, ErrForeignHandle
	}
	if int(h.slot) >= len(a.slots) {
		return nil, ErrStaleHandle
	}
	n := a.slots[h.slot]
	if n == nil || n.gen != h.gen {
		return nil, ErrStaleHandle
	}

	return n, nil
}

// Get returns the resource addressed by h.
func (a *Arena[T]) Get(h Handle) (T, error) {
	n, err := a.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}

	return n.value, nil
}

// Remove unlinks the node addressed by h and frees it immediately.
// Removing the zero Handle is a no-op. A Handle issued by another Arena
// is rejected with ErrForeignHandle and nothing is removed.
func (a *Arena[T]) Remove(h Handle) error {
	if h.IsZero() {
		return nil
	}
	n, err := a.lookup(h)
	if err != nil {
		return err
	}
	a.remove(n)

	return nil
}

// remove unlinks n, frees its resource and retires its slot.
func (a *Arena[T]) remove(n *node[T]) {
	if n.owner != a {
		panic(panicForeignNode)
	}
	if n.prev == nil {
		a.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		a.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	a.length--

	freed := n.value.Free()
	a.outstanding -= freed + 1 // storage + the node itself

	a.slots[n.slot] = nil
	a.free = append(a.free, n.slot)

	var zero T
	n.value, n.prev, n.next, n.owner = zero, nil, nil, nil
	a.removed++
}

// PopTail removes only the tail node. It reports false on an empty arena.
func (a *Arena[T]) PopTail() bool {
	if a.tail == nil {
		return false
	}
	a.remove(a.tail)

	return true
}

// Reissue retires h and returns a fresh Handle to the same node.
func (a *Arena[T]) Reissue(h Handle) (Handle, error) {
	n, err := a.lookup(h)
	if err != nil {
		return Handle{}, err
	}
	n.gen = nextGen(a.gens[n.slot])
	a.gens[n.slot] = n.gen
	a.reissued++

	return Handle{owner: a.id, slot: n.slot, gen: n.gen}, nil
}

// Teardown drains the arena from tail to head and reports the outcome.
// It is safe on an empty arena. Calling it from inside a Free that runs
// during teardown panics.
func (a *Arena[T]) Teardown() Report {
	if a.tearing {
		panic(panicReentry)
	}
	a.tearing = true
	defer func() { a.tearing = false }()

	var rep Report
	for a.tail != nil {
		a.remove(a.tail)
		rep.Removed++
	}
	rep.Len = a.length
	rep.Outstanding = a.outstanding

	a.log.Debug("arena teardown",
		slog.Int("removed", rep.Removed),
		slog.Int("len", rep.Len),
		slog.Int("outstanding", rep.Outstanding))
	if rep.Leaked() {
		a.log.Warn("arena leak after teardown", slog.Int("outstanding", rep.Outstanding))
	}

	return rep
}

// Track adjusts the raw-allocation counter by delta.
// Resource owners call it when they allocate (+) or drop (-) buffers
// outside of Free.
func (a *Arena[T]) Track(delta int) { a.outstanding += delta }

// Len returns the number of live nodes.
func (a *Arena[T]) Len() int { return a.length }

// Outstanding returns the live raw-allocation count.
func (a *Arena[T]) Outstanding() int { return a.outstanding }

// Metrics returns a snapshot of arena statistics.
func (a *Arena[T]) Metrics() Metrics {
	return Metrics{
		Len:         a.length,
		Outstanding: a.outstanding,
		Peak:        a.peak,
		Appended:    a.appended,
		Removed:     a.removed,
		Reissued:    a.reissued,
	}
}

// Walk calls fn for every live node from head to tail until fn returns false.
// fn may remove the node it is given.
func (a *Arena[T]) Walk(fn func(Handle, T) bool) {
	for n := a.head; n != nil; {
		next := n.next
		if !fn(Handle{owner: a.id, slot: n.slot, gen: n.gen}, n.value) {
			return
		}
		n = next
	}
}

// nextGen advances a generation counter, skipping 0 (reserved for the zero Handle).
func nextGen(g uint32) uint32 {
	if g == math.MaxUint32 {
		return 1
	}

	return g + 1
}
