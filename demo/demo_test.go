package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddnet-go/twnet/warn"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Version:         Version5,
		NetVersion:      "0.7",
		MapName:         "ctf1",
		MapSize:         1234,
		MapCrc:          0xdeadbeef,
		Type:            "client",
		Length:          99,
		Timestamp:       "2024-01-01 00:00",
		TimelineMarkers: []int32{10, 20, 30},
	}

	buf := WriteHeader(h)

	sink := warn.NewCollect[Warning]()

	got, n, err := ReadHeader(buf, sink)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Empty(t, sink.Warnings)

	assert.Equal(t, h.Version, got.Version)
	assert.Equal(t, h.NetVersion, got.NetVersion)
	assert.Equal(t, h.MapName, got.MapName)
	assert.Equal(t, h.MapSize, got.MapSize)
	assert.Equal(t, h.MapCrc, got.MapCrc)
	assert.Equal(t, h.Type, got.Type)
	assert.Equal(t, h.Length, got.Length)
	assert.Equal(t, h.Timestamp, got.Timestamp)
	assert.Equal(t, h.TimelineMarkers, got.TimelineMarkers)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	buf := WriteHeader(Header{Version: Version4})
	buf[0] = 'X'

	_, _, err := ReadHeader(buf, warn.Discard[Warning]{})
	require.Error(t, err)
}

func TestReadHeaderRejectsBadVersion(t *testing.T) {
	buf := WriteHeader(Header{Version: Version4})
	buf[7] = 9

	_, _, err := ReadHeader(buf, warn.Discard[Warning]{})
	require.Error(t, err)
}

func TestChunkPayloadRoundTripSizes(t *testing.T) {
	for _, n := range []int{0, 1, 29, 30, 255, 256, 1000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}

		encoded := encodePayload(ChunkMessage, data)

		sink := warn.NewCollect[Warning]()

		chunk, consumed, err := decodeChunk(encoded, Version5, 0, sink)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), consumed)
		require.NotNil(t, chunk.Payload)
		assert.Equal(t, ChunkMessage, chunk.Payload.Type)
		assert.Equal(t, data, chunk.Payload.Data)
		assert.Empty(t, sink.Warnings, "size %d should use canonical encoding", n)
	}
}

func TestTickmarkerV5InlineDelta(t *testing.T) {
	encoded := encodeTickmarker(Version5, TickMarker{Tick: 105}, 100, true)
	assert.Len(t, encoded, 1)

	sink := warn.NewCollect[Warning]()

	chunk, n, err := decodeChunk(encoded, Version5, 100, sink)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NotNil(t, chunk.TickMarker)
	assert.Equal(t, int32(105), chunk.TickMarker.Tick)
	assert.Empty(t, sink.Warnings)
}

func TestTickmarkerV5AbsoluteFallback(t *testing.T) {
	// A delta too large for 5 bits must fall back to the absolute form.
	encoded := encodeTickmarker(Version5, TickMarker{Tick: 100000}, 100, true)
	assert.Len(t, encoded, 5)

	chunk, n, err := decodeChunk(encoded, Version5, 100, warn.Discard[Warning]{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int32(100000), chunk.TickMarker.Tick)
}

func TestTickmarkerV3AbsoluteForm(t *testing.T) {
	encoded := encodeTickmarker(Version3, TickMarker{Tick: 42}, 0, false)
	require.Len(t, encoded, 5)

	chunk, n, err := decodeChunk(encoded, Version3, 0, warn.Discard[Warning]{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int32(42), chunk.TickMarker.Tick)
}

func TestTickmarkerV3ZeroDeltaQuirkReadsAbsolute(t *testing.T) {
	// byte with tickmarker flag set and all 6 low bits zero is, per the
	// mirrored quirk, followed by an absolute tick rather than meaning
	// "delta zero".
	buf := append([]byte{chunkTypeFlagTickmarker}, 0, 0, 0, 77)

	chunk, n, err := decodeChunk(buf, Version3, 0, warn.Discard[Warning]{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int32(77), chunk.TickMarker.Tick)
}

func TestUnknownChunkTypeWarns(t *testing.T) {
	buf := []byte{chunkTypeUnknown | 3, 1, 2, 3}

	sink := warn.NewCollect[Warning]()

	chunk, _, err := decodeChunk(buf, Version5, 0, sink)
	require.NoError(t, err)
	require.NotNil(t, chunk.Payload)
	assert.Equal(t, ChunkUnknown, chunk.Payload.Type)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, WarnUnknownChunkType, sink.Warnings[0].Kind)
}

func TestWriterReaderFullStream(t *testing.T) {
	w := NewWriter(Header{Version: Version5, MapName: "dm1"})
	w.WriteTickMarker(true, 0)
	w.WriteChunk(ChunkMessage, []byte("hello"))
	w.WriteChunk(ChunkSnapshot, []byte{1, 2, 3, 4})
	w.WriteTickMarker(false, 1)
	w.WriteChunk(ChunkSnapshotDelta, []byte{9, 9})

	buf := w.Bytes()

	r, err := Open(buf, warn.NewCollect[Warning]())
	require.NoError(t, err)
	assert.Equal(t, "dm1", r.Header.MapName)

	var chunks []Chunk

	for {
		c, ok, err := r.Next()
		require.NoError(t, err)

		if !ok {
			break
		}

		chunks = append(chunks, c)
	}

	require.Len(t, chunks, 5)
	require.NotNil(t, chunks[0].TickMarker)
	assert.True(t, chunks[0].TickMarker.Keyframe)
	assert.Equal(t, int32(0), chunks[0].TickMarker.Tick)

	require.NotNil(t, chunks[1].Payload)
	assert.Equal(t, []byte("hello"), chunks[1].Payload.Data)

	require.NotNil(t, chunks[3].TickMarker)
	assert.Equal(t, int32(1), chunks[3].TickMarker.Tick)

	require.NotNil(t, chunks[4].Payload)
	assert.Equal(t, ChunkSnapshotDelta, chunks[4].Payload.Type)
}
