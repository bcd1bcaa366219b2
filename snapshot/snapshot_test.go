package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSortsOnFinish(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(2, 0, []int32{1}))
	require.NoError(t, b.Add(1, 5, []int32{2}))
	require.NoError(t, b.Add(1, 0, []int32{3}))

	snap := b.Finish()
	require.Len(t, snap.Objects(), 3)
	assert.Equal(t, Object{TypeID: 1, ObjID: 0, Data: []int32{3}}, snap.Objects()[0])
	assert.Equal(t, Object{TypeID: 1, ObjID: 5, Data: []int32{2}}, snap.Objects()[1])
	assert.Equal(t, Object{TypeID: 2, ObjID: 0, Data: []int32{1}}, snap.Objects()[2])
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(1, 1, []int32{1}))
	err := b.Add(1, 1, []int32{2})
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(3, 7, []int32{10, 20}))
	snap := b.Finish()

	data, ok := snap.Lookup(3, 7)
	require.True(t, ok)
	assert.Equal(t, []int32{10, 20}, data)

	_, ok = snap.Lookup(3, 8)
	assert.False(t, ok)
}

func TestEmptySnapshot(t *testing.T) {
	snap := Empty()
	assert.Empty(t, snap.Objects())

	_, ok := snap.Lookup(0, 0)
	assert.False(t, ok)
}

func TestBuilderAddCopiesData(t *testing.T) {
	data := []int32{1, 2, 3}
	b := NewBuilder()
	require.NoError(t, b.Add(1, 1, data))
	data[0] = 999

	snap := b.Finish()
	got, _ := snap.Lookup(1, 1)
	assert.Equal(t, int32(1), got[0])
}
