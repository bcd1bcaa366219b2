package delta

import (
	"github.com/ddnet-go/twnet/internal/hash"
	"github.com/ddnet-go/twnet/snapshot"
)

// Key identifies one removed object.
type Key struct {
	TypeID uint16
	ObjID  uint16
}

// UpdatedObject carries an object's element-wise wrapping difference
// against the corresponding object in the base snapshot (or against an
// all-zero base, if the object is new).
type UpdatedObject struct {
	TypeID uint16
	ObjID  uint16
	Delta  []int32
}

// Delta is the pure diff between two snapshots: keys present in base but
// not target, and per-object integer deltas for everything present in
// target.
type Delta struct {
	Removed []Key
	Updated []UpdatedObject
}

// Encode computes the delta that Apply(base, delta) turns back into
// target.
func Encode(base, target *snapshot.Snapshot) Delta {
	var d Delta

	baseByKey := make(map[uint64]snapshot.Object, len(base.Objects()))
	for _, o := range base.Objects() {
		baseByKey[hash.ObjKey(o.TypeID, o.ObjID)] = o
	}

	targetKeys := make(map[uint64]struct{}, len(target.Objects()))

	for _, o := range target.Objects() {
		key := hash.ObjKey(o.TypeID, o.ObjID)
		targetKeys[key] = struct{}{}

		baseObj, hasBase := baseByKey[key]
		diff := make([]int32, len(o.Data))

		for i, v := range o.Data {
			var baseV int32
			if hasBase && i < len(baseObj.Data) {
				baseV = baseObj.Data[i]
			}

			diff[i] = int32(uint32(v) - uint32(baseV))
		}

		d.Updated = append(d.Updated, UpdatedObject{TypeID: o.TypeID, ObjID: o.ObjID, Delta: diff})
	}

	for _, o := range base.Objects() {
		if _, present := targetKeys[hash.ObjKey(o.TypeID, o.ObjID)]; !present {
			d.Removed = append(d.Removed, Key{TypeID: o.TypeID, ObjID: o.ObjID})
		}
	}

	return d
}

// Apply reconstructs target from base and d: start from base, drop the
// removed keys, and for every updated key add its element-wise delta to
// the base payload (or treat the base as zero if the key is new).
func Apply(base *snapshot.Snapshot, d Delta) *snapshot.Snapshot {
	b := snapshot.NewBuilder()

	removed := make(map[uint64]struct{}, len(d.Removed))
	for _, k := range d.Removed {
		removed[hash.ObjKey(k.TypeID, k.ObjID)] = struct{}{}
	}

	updated := make(map[uint64]UpdatedObject, len(d.Updated))
	for _, u := range d.Updated {
		updated[hash.ObjKey(u.TypeID, u.ObjID)] = u
	}

	for _, o := range base.Objects() {
		key := hash.ObjKey(o.TypeID, o.ObjID)
		if _, gone := removed[key]; gone {
			continue
		}

		if u, has := updated[key]; has {
			b.Add(o.TypeID, o.ObjID, mergeDelta(o.Data, u.Delta)) //nolint:errcheck
			delete(updated, key)

			continue
		}

		b.Add(o.TypeID, o.ObjID, o.Data) //nolint:errcheck
	}

	// Whatever remains in updated is new, not present in base.
	for _, u := range updated {
		b.Add(u.TypeID, u.ObjID, mergeDelta(nil, u.Delta)) //nolint:errcheck
	}

	return b.Finish()
}

func mergeDelta(base, delta []int32) []int32 {
	merged := make([]int32, len(delta))

	for i, dv := range delta {
		var baseV int32
		if i < len(base) {
			baseV = base[i]
		}

		merged[i] = int32(uint32(baseV) + uint32(dv))
	}

	return merged
}
