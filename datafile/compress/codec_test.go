package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoundTrip(t *testing.T, c Codec, data []byte) {
	t.Helper()

	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestNoopCodecRoundTrip(t *testing.T) {
	testRoundTrip(t, NewNoopCodec(), []byte("teeworlds datafile"))
}

func TestZlibCodecRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")
	testRoundTrip(t, NewZlibCodec(), data)
}

func TestZlibCodecEmpty(t *testing.T) {
	testRoundTrip(t, NewZlibCodec(), nil)
}

func TestZlibCodecRejectsSizeMismatch(t *testing.T) {
	c := NewZlibCodec()

	compressed, err := c.Compress([]byte("some data of a certain length"))
	require.NoError(t, err)

	_, err = c.Decompress(compressed, 3)
	require.Error(t, err)
}

func TestS2CodecRoundTrip(t *testing.T) {
	testRoundTrip(t, NewS2Codec(), []byte("archived teehistorian extension payload"))
}

func TestLZ4CodecRoundTrip(t *testing.T) {
	testRoundTrip(t, NewLZ4Codec(), []byte("compact demo archival payload, compact demo archival payload"))
}
