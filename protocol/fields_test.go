package protocol

import (
	"testing"

	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIDOrdinalRoundTrip(t *testing.T) {
	id := MessageID{System: true, Ordinal: MsgInfo}

	buf := make([]byte, 0, 16)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeMessageID(p, id))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeMessageID(u, sink)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestMessageIDUUIDRoundTrip(t *testing.T) {
	id := MessageID{System: false, UUID: [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}}

	buf := make([]byte, 0, 32)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeMessageID(p, id))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeMessageID(u, sink)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDecodeUint8ClampsOutOfRange(t *testing.T) {
	buf := make([]byte, 0, 8)
	p := varint.NewPacker(buf)
	require.NoError(t, p.AddInt32(1000))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewCollect[Warning]()
	got, err := DecodeUint8(u, sink)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, WarnOutOfRange, sink.Warnings[0].Kind)
}

func TestDecodeStringWarnsOnControlChars(t *testing.T) {
	buf := make([]byte, 0, 16)
	p := varint.NewPacker(buf)
	require.NoError(t, p.AddString("hi\x01there"))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewCollect[Warning]()
	got, err := DecodeString(u, true, sink)
	require.NoError(t, err)
	assert.Equal(t, "hi\x01there", got)
	require.Len(t, sink.Warnings, 1)
	assert.Equal(t, WarnControlChars, sink.Warnings[0].Kind)
}

func TestDecodeOptionalAbsentAtEndOfBuffer(t *testing.T) {
	u := varint.NewUnpacker(nil)
	sink := warn.NewDiscard[Warning]()

	v, present, err := DecodeOptional(u, func(u *varint.Unpacker) (int32, error) {
		return u.NextInt32(wrapVarintSink(sink))
	})
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, int32(0), v)
}

func TestTuneParamRoundTrip(t *testing.T) {
	buf := make([]byte, 0, 8)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeTuneParam(p, 8.5))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeTuneParam(u, sink)
	require.NoError(t, err)
	assert.InDelta(t, 8.5, got, 0.001)
}

func TestInt32StringRoundTrip(t *testing.T) {
	buf := make([]byte, 0, 16)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeInt32String(p, -42))

	u := varint.NewUnpacker(p.Bytes())
	got, err := DecodeInt32String(u)
	require.NoError(t, err)
	assert.Equal(t, int32(-42), got)
}

func TestPackedAddressRoundTrip(t *testing.T) {
	a := PackedAddress{IP: [16]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 127, 0, 0, 1}, Port: 8303}

	buf := make([]byte, 0, 32)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodePackedAddress(p, a))

	u := varint.NewUnpacker(p.Bytes())
	got, err := DecodePackedAddress(u)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestArrayRoundTrip(t *testing.T) {
	values := []int32{1, 2, 3, 4}

	buf := make([]byte, 0, 32)
	p := varint.NewPacker(buf)
	require.NoError(t, EncodeArray(p, values, EncodeInt32))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeArray(u, len(values), func(u *varint.Unpacker) (int32, error) {
		return u.NextInt32(wrapVarintSink(sink))
	})
	require.NoError(t, err)
	assert.Equal(t, values, got)
}
