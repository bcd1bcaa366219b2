package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderPackUnpackRoundTrip(t *testing.T) {
	cases := []header{
		{flags: 0, ack: 0, numChunks: 0},
		{flags: FlagControl, ack: 1, numChunks: 0},
		{flags: FlagCompression | FlagRequestResend, ack: 1023, numChunks: 255},
		{flags: FlagControl | FlagCompression, ack: 512, numChunks: 3},
	}

	for _, h := range cases {
		buf := make([]byte, headerSize)
		packHeader(h, buf)
		got := unpackHeader(buf)
		assert.Equal(t, h, got)
	}
}

func TestConnlessRoundTrip(t *testing.T) {
	p := &Packet{Kind: KindConnless, Connless: []byte("inf3token")}

	buf, err := Write(p, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, buf[:6])

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, KindConnless, got.Kind)
	assert.Equal(t, []byte("inf3token"), got.Connless)
}

func TestChunksRoundTripNoCompression(t *testing.T) {
	// Tiny, high-entropy payload: compressed form won't be shorter, so
	// COMPRESSION must not be set.
	p := &Packet{Kind: KindChunks, Ack: 5, NumChunks: 1, Payload: []byte{0x01}}

	buf, err := Write(p, nil)
	require.NoError(t, err)

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, KindChunks, got.Kind)
	assert.Equal(t, uint16(5), got.Ack)
	assert.Equal(t, uint8(1), got.NumChunks)
	assert.Equal(t, []byte{0x01}, got.Payload)
}

func TestChunksRoundTripWithCompression(t *testing.T) {
	payload := make([]byte, 200)
	p := &Packet{Kind: KindChunks, Ack: 1, NumChunks: 2, Payload: payload}

	buf, err := Write(p, nil)
	require.NoError(t, err)
	assert.Less(t, len(buf), len(payload))

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got.Payload)
}

func TestControlCloseRoundTrip(t *testing.T) {
	p := &Packet{Kind: KindControl, Ack: 7, Control: ControlClose, CloseReason: []byte("bye")}

	buf, err := Write(p, nil)
	require.NoError(t, err)

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, KindControl, got.Kind)
	assert.Equal(t, ControlClose, got.Control)
	assert.Equal(t, []byte("bye"), got.CloseReason)
}

func TestControlKeepAliveRoundTrip(t *testing.T) {
	p := &Packet{Kind: KindControl, Control: ControlKeepAlive}

	buf, err := Write(p, nil)
	require.NoError(t, err)

	got, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, ControlKeepAlive, got.Control)
	assert.Empty(t, got.CloseReason)
}

func TestReadRejectsOversizePacket(t *testing.T) {
	buf := make([]byte, MaxPacketSize+1)
	_, err := Read(buf)
	require.Error(t, err)
}

func TestReadRejectsTooShort(t *testing.T) {
	_, err := Read([]byte{0x00})
	require.Error(t, err)
}

func TestAckWrapsAt1024(t *testing.T) {
	buf := make([]byte, headerSize)
	packHeader(header{ack: 1024}, buf)
	got := unpackHeader(buf)
	assert.Equal(t, uint16(0), got.ack)
}
