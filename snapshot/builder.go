package snapshot

import (
	"sort"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/internal/hash"
)

// Builder accumulates Objects for one tick. It enforces uniqueness on
// (type_id, obj_id) as they're added and sorts them into a Snapshot on
// Finish.
type Builder struct {
	objects []Object
	seen    map[uint64]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[uint64]struct{})}
}

// Add appends one object, copying data so later mutation by the caller
// doesn't alias the builder's state. Returns errs.ErrDuplicateObject if
// (typeID, objID) was already added.
func (b *Builder) Add(typeID, objID uint16, data []int32) error {
	key := hash.ObjKey(typeID, objID)
	if _, dup := b.seen[key]; dup {
		return errs.ErrDuplicateObject
	}

	b.seen[key] = struct{}{}

	stored := make([]int32, len(data))
	copy(stored, data)
	b.objects = append(b.objects, Object{TypeID: typeID, ObjID: objID, Data: stored})

	return nil
}

// Len reports how many objects have been added so far.
func (b *Builder) Len() int { return len(b.objects) }

// Finish sorts the accumulated objects by their total (type_id, obj_id)
// key and freezes them into an immutable Snapshot.
func (b *Builder) Finish() *Snapshot {
	sort.Slice(b.objects, func(i, j int) bool { return sortKey(b.objects[i]) < sortKey(b.objects[j]) })

	index := make(map[uint64]int, len(b.objects))
	for i, o := range b.objects {
		index[hash.ObjKey(o.TypeID, o.ObjID)] = i
	}

	return &Snapshot{objects: b.objects, index: index}
}
