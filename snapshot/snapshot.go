package snapshot

import "github.com/ddnet-go/twnet/internal/hash"

// Object is one typed entry in a snapshot: a fixed-width array of i32
// words whose length is the type's declared size.
type Object struct {
	TypeID uint16
	ObjID  uint16
	Data   []int32
}

func sortKey(o Object) uint32 {
	return uint32(o.TypeID)<<16 | uint32(o.ObjID)
}

// Snapshot is an immutable, sorted bag of Objects with a hash-indexed
// lookup by (type_id, obj_id).
type Snapshot struct {
	objects []Object
	index   map[uint64]int
}

// Empty returns a Snapshot with no objects, used as the implicit base for
// a full (non-delta) snapshot.
func Empty() *Snapshot {
	return &Snapshot{index: map[uint64]int{}}
}

// Objects returns the snapshot's objects in sorted key order.
func (s *Snapshot) Objects() []Object {
	return s.objects
}

// Lookup returns the payload for (typeID, objID), if present.
func (s *Snapshot) Lookup(typeID, objID uint16) ([]int32, bool) {
	idx, ok := s.index[hash.ObjKey(typeID, objID)]
	if !ok {
		return nil, false
	}

	return s.objects[idx].Data, true
}
