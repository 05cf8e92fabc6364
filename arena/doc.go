// SPDX-License-Identifier: MIT

// Package arena owns the lifetime of tracked resources.
//
// An Arena keeps every live resource on a doubly linked list and hands out
// generation-checked Handles instead of pointers. A resource is released
// individually with Remove, or all at once with Teardown, which drains the
// list from tail to head and reports what was left behind.
//
// Besides list length, the arena keeps a raw-allocation counter: the arena
// counts each node it creates, and resource owners report the buffers they
// allocate through Track. Every released resource reports back how many raw
// allocations it freed. A non-zero counter after Teardown means some
// allocation was never given back and is reported as a leak.
//
// Handles:
//
//   - The zero Handle is the "empty" reference; removing it is a no-op.
//   - Once a node is removed, every Handle to it is stale (ErrStaleHandle).
//   - A Handle records the Arena that issued it; passing it to any other
//     Arena fails with ErrForeignHandle.
//   - Reissue bumps a live node's generation: the old Handle turns stale and
//     the returned one addresses the same node. Owners use it to force callers
//     onto a fresh Handle after an in-place change of the resource's kind.
//
// Concurrency:
//
// An Arena is not safe for concurrent use. Use one arena per goroutine, or
// guard it externally before handles cross goroutine boundaries.
package arena
