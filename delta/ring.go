package delta

import "github.com/ddnet-go/twnet/snapshot"

// Ring is a bounded tick-indexed store of snapshots, used by a sender to
// look up the snapshot a client last acknowledged so it can build the next
// delta against it. Eviction policy is oldest-first once capacity is
// exceeded (spec §9).
type Ring struct {
	cap    int
	byTick map[int32]*snapshot.Snapshot
	order  []int32
}

// NewRing returns a Ring holding at most capacity snapshots.
func NewRing(capacity int) *Ring {
	return &Ring{
		cap:    capacity,
		byTick: make(map[int32]*snapshot.Snapshot, capacity),
	}
}

// Store records snap under tick, evicting the oldest stored tick(s) if
// capacity is exceeded. Storing an already-present tick overwrites its
// snapshot without changing its eviction order.
func (r *Ring) Store(tick int32, snap *snapshot.Snapshot) {
	if _, exists := r.byTick[tick]; !exists {
		r.order = append(r.order, tick)
	}

	r.byTick[tick] = snap

	for len(r.order) > r.cap {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.byTick, oldest)
	}
}

// Get returns the snapshot stored for tick, if any.
func (r *Ring) Get(tick int32) (*snapshot.Snapshot, bool) {
	snap, ok := r.byTick[tick]

	return snap, ok
}
