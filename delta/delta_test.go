package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddnet-go/twnet/snapshot"
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

func buildSnapshot(t *testing.T, objs ...snapshot.Object) *snapshot.Snapshot {
	t.Helper()

	b := snapshot.NewBuilder()
	for _, o := range objs {
		require.NoError(t, b.Add(o.TypeID, o.ObjID, o.Data))
	}

	return b.Finish()
}

func TestEncodeApplyRoundTrip(t *testing.T) {
	base := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{100, 200}},
	)
	target := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{110, 200}},
		snapshot.Object{TypeID: 2, ObjID: 5, Data: []int32{1}},
	)

	d := Encode(base, target)
	assert.Empty(t, d.Removed)
	require.Len(t, d.Updated, 2)

	got := Apply(base, d)
	require.Len(t, got.Objects(), 2)

	data, ok := got.Lookup(1, 0)
	require.True(t, ok)
	assert.Equal(t, []int32{110, 200}, data)

	data, ok = got.Lookup(2, 5)
	require.True(t, ok)
	assert.Equal(t, []int32{1}, data)
}

func TestEncodeApplyRemoval(t *testing.T) {
	base := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{1}},
		snapshot.Object{TypeID: 1, ObjID: 1, Data: []int32{2}},
	)
	target := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{1}},
	)

	d := Encode(base, target)
	require.Len(t, d.Removed, 1)
	assert.Equal(t, Key{TypeID: 1, ObjID: 1}, d.Removed[0])

	got := Apply(base, d)
	require.Len(t, got.Objects(), 1)
	_, ok := got.Lookup(1, 1)
	assert.False(t, ok)
}

func TestEncodeApplyAgainstEmptyBase(t *testing.T) {
	base := snapshot.Empty()
	target := buildSnapshot(t, snapshot.Object{TypeID: 9, ObjID: 0, Data: []int32{42, -1}})

	d := Encode(base, target)
	require.Len(t, d.Updated, 1)
	assert.Equal(t, []int32{42, -1}, d.Updated[0].Delta)

	got := Apply(base, d)
	data, ok := got.Lookup(9, 0)
	require.True(t, ok)
	assert.Equal(t, []int32{42, -1}, data)
}

func TestWireRoundTrip(t *testing.T) {
	base := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{100, 200}},
		snapshot.Object{TypeID: 1, ObjID: 1, Data: []int32{5, 5}},
	)
	target := buildSnapshot(t,
		snapshot.Object{TypeID: 1, ObjID: 0, Data: []int32{110, 200}},
		snapshot.Object{TypeID: 2, ObjID: 5, Data: []int32{1}},
	)

	d := Encode(base, target)

	buf := make([]byte, 0, 256)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeWire(p, d))

	objSize := func(typeID uint16) int {
		if typeID == 1 {
			return 2
		}

		return 1
	}

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[varint.Warning]()
	decoded, err := DecodeWire(u, sink, objSize)
	require.NoError(t, err)
	assert.True(t, u.Done())

	assert.Equal(t, d.Removed, decoded.Removed)
	assert.Equal(t, d.Updated, decoded.Updated)

	got := Apply(base, decoded)
	data, ok := got.Lookup(1, 0)
	require.True(t, ok)
	assert.Equal(t, []int32{110, 200}, data)
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(2)
	r.Store(1, snapshot.Empty())
	r.Store(2, snapshot.Empty())
	r.Store(3, snapshot.Empty())

	_, ok := r.Get(1)
	assert.False(t, ok)

	_, ok = r.Get(2)
	assert.True(t, ok)

	_, ok = r.Get(3)
	assert.True(t, ok)
}

func TestRingOverwriteDoesNotChangeOrder(t *testing.T) {
	r := NewRing(2)
	r.Store(1, snapshot.Empty())
	r.Store(2, snapshot.Empty())
	r.Store(1, snapshot.Empty())
	r.Store(3, snapshot.Empty())

	_, ok := r.Get(1)
	assert.False(t, ok)

	_, ok = r.Get(2)
	assert.True(t, ok)

	_, ok = r.Get(3)
	assert.True(t, ok)
}
