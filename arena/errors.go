// SPDX-License-Identifier: MIT

package arena

import "errors"

// ErrStaleHandle is returned when a Handle no longer addresses a live node:
// it was never issued, its node was removed, or the node was reissued.
var ErrStaleHandle = errors.New("arena: stale handle")

// ErrForeignHandle is returned when a Handle was issued by another Arena.
var ErrForeignHandle = errors.New("arena: handle belongs to another arena")

// Internal panic messages (programming errors, never user-triggered).
const (
	panicForeignNode = "arena: node does not belong to this arena"
	panicReentry     = "arena: Teardown re-entered"
	panicBrokenList  = "arena: list links are inconsistent"
)
