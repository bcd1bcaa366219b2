package teehistorian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Version: "1", MapName: "ctf1", MapCrc: 0xabcd}

	buf, err := WriteHeader(h)
	require.NoError(t, err)

	got, n, err := ReadHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, h.Version, got.Version)
	assert.Equal(t, h.MapName, got.MapName)
	assert.Equal(t, h.MapCrc, got.MapCrc)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	_, _, err := ReadHeader([]byte("NOTTEEHISTORIAN\x00{}"))
	require.Error(t, err)
}

func TestReaderTickAndPlayerLifecycle(t *testing.T) {
	w := NewWriter(Header{Version: "1"})
	w.WritePlayerNew(PlayerNewItem{Cid: 0, X: 100, Y: 200})
	w.WriteInputNew(InputNewItem{Cid: 0, New: [InputLen]int32{1}})
	w.WriteFinish()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf, warn.Discard[varint.Warning]{})
	require.NoError(t, err)

	ev, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventTickStart, ev.Kind)
	assert.Equal(t, int32(0), ev.Tick)

	ev, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventPlayerNew, ev.Kind)
	assert.Equal(t, int32(0), ev.New.Cid)
	assert.Equal(t, Pos{X: 100, Y: 200}, ev.New.Pos)

	ev, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventInput, ev.Kind)
	assert.Equal(t, int32(1), ev.Input.Values[0])

	ev, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, EventTickEnd, ev.Kind)
	assert.Equal(t, int32(0), ev.Tick)

	_, ok, err = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int32(0), r.MaxCid())
}

func TestReaderPlayerDiffAndTickRollover(t *testing.T) {
	w := NewWriter(Header{Version: "1"})
	w.WritePlayerNew(PlayerNewItem{Cid: 0, X: 0, Y: 0})
	w.WritePlayerDiff(PlayerDiff{Cid: 0, Dx: 5, Dy: -5})
	// A second update for the same (non-increasing) cid starts a new tick.
	w.WritePlayerDiff(PlayerDiff{Cid: 0, Dx: 1, Dy: 1})
	w.WriteFinish()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf, warn.Discard[varint.Warning]{})
	require.NoError(t, err)

	var (
		kinds   []EventKind
		changes []Pos
	)

	for {
		ev, ok, err := r.Next()
		require.NoError(t, err)

		if !ok {
			break
		}

		kinds = append(kinds, ev.Kind)

		if ev.Kind == EventPlayerChange {
			changes = append(changes, ev.Change.Pos)
		}
	}

	require.Contains(t, kinds, EventTickEnd)
	require.Len(t, changes, 2)
	assert.Equal(t, Pos{X: 5, Y: -5}, changes[0])
	assert.Equal(t, Pos{X: 6, Y: -4}, changes[1])
}

func TestReaderRejectsPlayerDiffWithoutNew(t *testing.T) {
	w := NewWriter(Header{Version: "1"})
	w.WritePlayerDiff(PlayerDiff{Cid: 3, Dx: 1, Dy: 1})
	w.WriteFinish()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf, warn.Discard[varint.Warning]{})
	require.NoError(t, err)

	_, _, err = r.Next() // TickStart

	require.NoError(t, err)

	_, _, err = r.Next()
	require.Error(t, err)
}

func TestMessageAndDropRoundTrip(t *testing.T) {
	w := NewWriter(Header{Version: "1"})
	w.WriteJoin(JoinItem{Cid: 2})
	w.WriteMessage(MessageItem{Cid: 2, Msg: []byte{1, 2, 3}})
	w.WriteDrop(DropItem{Cid: 2, Reason: []byte("timeout")})
	w.WriteFinish()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf, warn.Discard[varint.Warning]{})
	require.NoError(t, err)

	var (
		gotJoin bool
		gotMsg  bool
		gotDrop bool
	)

	for {
		ev, ok, err := r.Next()
		require.NoError(t, err)

		if !ok {
			break
		}

		switch ev.Kind {
		case EventJoin:
			gotJoin = true
			assert.Equal(t, int32(2), ev.Join.Cid)
		case EventMessage:
			gotMsg = true
			assert.Equal(t, []byte{1, 2, 3}, ev.Message.Msg)
		case EventDrop:
			gotDrop = true
			assert.Equal(t, []byte("timeout"), ev.Drop.Reason)
		}
	}

	assert.True(t, gotJoin)
	assert.True(t, gotMsg)
	assert.True(t, gotDrop)
	assert.Equal(t, int32(2), r.MaxCid())
}

func TestExtraItemRoundTrip(t *testing.T) {
	w := NewWriter(Header{Version: "1"})

	var id [16]byte
	for i := range id {
		id[i] = byte(i)
	}

	w.WriteExtra(ExtraItem{UUID: id, Data: []byte("payload")})
	w.WriteFinish()

	buf, err := w.Bytes()
	require.NoError(t, err)

	r, err := Open(buf, warn.Discard[varint.Warning]{})
	require.NoError(t, err)

	ev, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventTickStart, ev.Kind)

	ev, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, EventExtra, ev.Kind)
	assert.Equal(t, id, ev.Extra.UUID)
	assert.Equal(t, []byte("payload"), ev.Extra.Data)
}
