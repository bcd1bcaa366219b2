package datafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.AddItem(0, 0, []int32{1, 2, 3}))
	require.NoError(t, w.AddItem(0, 1, []int32{4, 5}))
	require.NoError(t, w.AddItem(5, 0, []int32{9}))

	idx := w.AddData([]byte("hello teeworlds datafile payload, hello teeworlds datafile payload"))
	assert.Equal(t, 0, idx)

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf)
	require.NoError(t, err)

	require.Equal(t, 3, r.NumItems())
	require.Equal(t, 1, r.NumData())

	start, num := r.ItemTypeItems(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, num)

	start, num = r.ItemTypeItems(5)
	assert.Equal(t, 2, start)
	assert.Equal(t, 1, num)

	item := r.Item(0)
	assert.Equal(t, uint16(0), item.TypeID)
	assert.Equal(t, uint16(0), item.ID)
	assert.Equal(t, []int32{1, 2, 3}, item.Data)

	item = r.Item(2)
	assert.Equal(t, uint16(5), item.TypeID)
	assert.Equal(t, []int32{9}, item.Data)

	data, err := r.Data(0)
	require.NoError(t, err)
	assert.Equal(t, "hello teeworlds datafile payload, hello teeworlds datafile payload", string(data))
}

func TestWriterRejectsDuplicateItem(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.AddItem(1, 1, []int32{1}))
	err := w.AddItem(1, 1, []int32{2})
	require.Error(t, err)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	buf := make([]byte, headerSize)
	copy(buf, "XXXX")

	_, err := Open(buf)
	require.Error(t, err)
}

func TestOpenRejectsTruncatedBuffer(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.AddItem(0, 0, []int32{1, 2, 3}))
	w.AddData([]byte("payload"))

	buf, err := w.Bytes()
	require.NoError(t, err)

	_, err = Open(buf[:len(buf)-1])
	require.Error(t, err)
}

func TestEmptyDatafileRoundTrip(t *testing.T) {
	w := NewWriter()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, r.NumItems())
	assert.Equal(t, 0, r.NumData())
}
