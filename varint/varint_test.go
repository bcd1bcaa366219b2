package varint

import (
	"math"
	"testing"

	"github.com/ddnet-go/twnet/warn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackerAddInt32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, 64, -64, -65, math.MaxInt32, math.MinInt32, 1 << 20, -(1 << 20)}

	for _, v := range values {
		buf := make([]byte, 0, MaxVarintLen)
		p := NewPacker(buf)
		require.NoError(t, p.AddInt32(v))

		u := NewUnpacker(p.Bytes())
		sink := warn.NewCollect[Warning]()
		got, err := u.NextInt32(sink)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Empty(t, sink.Warnings)
		assert.True(t, u.Done())
	}
}

func TestEncodeNegativeOne(t *testing.T) {
	buf := make([]byte, 0, MaxVarintLen)
	p := NewPacker(buf)
	require.NoError(t, p.AddInt32(-1))
	assert.Equal(t, []byte{0x40}, p.Bytes())
}

func TestDecodeOverlongWarning(t *testing.T) {
	u := NewUnpacker([]byte{0xC0, 0x00})
	sink := warn.NewCollect[Warning]()
	got, err := u.NextInt32(sink)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, OverlongIntEncoding, sink.Warnings[0].Kind)
}

func TestDecodeMinInt32(t *testing.T) {
	u := NewUnpacker([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	sink := warn.NewCollect[Warning]()
	got, err := u.NextInt32(sink)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), got)
	assert.Empty(t, sink.Warnings)
}

func TestDecodeNonZeroPaddingWarning(t *testing.T) {
	u := NewUnpacker([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x70})
	sink := warn.NewCollect[Warning]()
	_, err := u.NextInt32(sink)
	require.NoError(t, err)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, NonZeroPadding, sink.Warnings[0].Kind)
}

func TestDecodeUnexpectedEnd(t *testing.T) {
	u := NewUnpacker([]byte{0xC0})
	sink := warn.NewCollect[Warning]()
	_, err := u.NextInt32(sink)
	require.Error(t, err)
}

func TestPackerCapacityError(t *testing.T) {
	buf := make([]byte, 0, 1)
	p := NewPacker(buf)
	err := p.AddInt32(1 << 20)
	require.Error(t, err)
	assert.Equal(t, 0, p.Len(), "buffer must be unchanged on capacity error")
}

func TestStringRoundTrip(t *testing.T) {
	buf := make([]byte, 0, 64)
	p := NewPacker(buf)
	require.NoError(t, p.AddString("Teeworlds"))

	u := NewUnpacker(p.Bytes())
	got, err := u.NextString()
	require.NoError(t, err)
	assert.Equal(t, "Teeworlds", string(got))
}

func TestStringRejectsEmbeddedNul(t *testing.T) {
	buf := make([]byte, 0, 64)
	p := NewPacker(buf)
	err := p.AddString("bad\x00string")
	require.Error(t, err)
}

func TestDataRoundTrip(t *testing.T) {
	buf := make([]byte, 0, 64)
	p := NewPacker(buf)
	payload := []byte{1, 2, 3, 4, 5}
	require.NoError(t, p.AddData(payload))

	u := NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := u.NextData(sink)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFinishWarnsExcessData(t *testing.T) {
	u := NewUnpacker([]byte{0x01, 0xff, 0xff})
	sink := warn.NewCollect[Warning]()
	_, err := u.NextInt32(sink)
	require.NoError(t, err)

	u.Finish(sink)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, ExcessData, sink.Warnings[0].Kind)
}
