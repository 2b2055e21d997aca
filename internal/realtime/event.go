package realtime

import (
	"time"

	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	// ChangeCleared is emitted once for a bulk removal; ID is uuid.Nil and
	// Count holds the number of rows removed.
	ChangeCleared ChangeKind = "cleared"
	ChangeSwept   ChangeKind = "swept"
)

// ChangeEvent announces a committed change to the record store.
type ChangeEvent struct {
	Kind  ChangeKind `json:"kind"`
	ID    uuid.UUID  `json:"id"`
	Count int64      `json:"count,omitempty"`
	At    time.Time  `json:"at"`
}
