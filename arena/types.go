// SPDX-License-Identifier: MIT

package arena

import "fmt"

// Resource is anything an Arena can own.
// Free drops the resource's storage and returns how many raw allocations
// (as previously reported through Track) it gave back.
type Resource interface {
	Free() int
}

// Handle is a generation-checked reference to an arena node.
// Handles are plain values: copying one does not copy the resource.
type Handle struct {
	owner uint32 // id of the issuing arena
	slot  uint32 // index into the arena slot table
	gen   uint32 // generation the node had when the handle was issued (>=1)
}

// IsZero reports whether h is the empty Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// String implements fmt.Stringer.
func (h Handle) String() string {
	if h.IsZero() {
		return "Handle(empty)"
	}

	return fmt.Sprintf("Handle(%d#%d)", h.slot, h.gen)
}

// node wraps one resource plus its list links.
type node[T Resource] struct {
	value      T
	prev, next *node[T]
	owner      *Arena[T]
	slot       uint32
	gen        uint32
}

// Report summarizes a Teardown.
type Report struct {
	Removed     int // nodes drained by this teardown
	Len         int // list length after teardown (always 0 unless a Free re-appended)
	Outstanding int // raw allocations still accounted for after teardown
}

// Leaked reports whether raw allocations survived the teardown.
func (r Report) Leaked() bool { return r.Outstanding != 0 }

// Metrics is a snapshot of arena statistics.
type Metrics struct {
	Len         int // live nodes
	Outstanding int // live raw allocations (nodes + tracked buffers)
	Peak        int // highest Len observed
	Appended    int // nodes appended since creation
	Removed     int // nodes removed since creation
	Reissued    int // handles reissued since creation
}
