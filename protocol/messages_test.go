package protocol

import (
	"testing"

	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoRoundTripWithOptionalTrailers(t *testing.T) {
	m := Info{Version: "0.7", Password: "hunter2", ClientVersion: 42}

	buf := make([]byte, 0, 64)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeInfo(u, sink)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestInfoRoundTripWithoutOptionalTrailers(t *testing.T) {
	buf := make([]byte, 0, 64)
	p := varint.NewPacker(buf)
	require.NoError(t, p.AddString("0.6"))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeInfo(u, sink)
	require.NoError(t, err)
	assert.Equal(t, Info{Version: "0.6"}, got)
}

func TestMapChangeRoundTrip(t *testing.T) {
	m := MapChange{Name: "ctf1", Crc: 0x1234, Size: 4096, Sha256: [32]byte{1, 2, 3}}

	buf := make([]byte, 0, 128)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeMapChange(u, sink)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMapDataRoundTrip(t *testing.T) {
	m := MapData{Last: true, Crc: 7, Chunk: 3, Data: []byte{1, 2, 3, 4}}

	buf := make([]byte, 0, 64)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeMapData(u, sink)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestSnapSingleRoundTrip(t *testing.T) {
	m := SnapSingle{Tick: 100, DeltaTick: 90, Crc: 55, Data: []byte{9, 8, 7}}

	buf := make([]byte, 0, 64)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeSnapSingle(u, sink)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestRconCmdAddRoundTrip(t *testing.T) {
	m := RconCmdAdd{Name: "ban", Help: "ban a player", Params: "i[id] s[reason]"}

	buf := make([]byte, 0, 128)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	got, err := DecodeRconCmdAdd(u, sink)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestConReadyHasNoFields(t *testing.T) {
	m := ConReady{}

	buf := make([]byte, 0, 4)
	p := varint.NewPacker(buf)
	require.NoError(t, m.Encode(p))
	assert.Equal(t, 0, p.Len())

	u := varint.NewUnpacker(p.Bytes())
	sink := warn.NewDiscard[Warning]()
	_, err := DecodeConReady(u, sink)
	require.NoError(t, err)
	assert.True(t, u.Done())
}
