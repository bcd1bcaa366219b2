package protocol

import (
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// System message ordinals the transport must understand on its own, in
// addition to whatever game-specific messages the application registers.
const (
	MsgInfo          int32 = 1
	MsgMapChange     int32 = 2
	MsgMapData       int32 = 3
	MsgConReady      int32 = 4
	MsgSnap          int32 = 5
	MsgSnapEmpty     int32 = 6
	MsgSnapSingle    int32 = 7
	MsgInputTiming   int32 = 8
	MsgRconAuthOn    int32 = 9
	MsgRconAuthOff   int32 = 10
	MsgPing          int32 = 11
	MsgPingReply     int32 = 12
	MsgError         int32 = 13
	MsgRconCmdAdd    int32 = 14
	MsgRconCmdRemove int32 = 15
)

// Info is the client's login message: protocol version, optional rcon
// password, and the client's own build version.
type Info struct {
	Version       string
	Password      string
	ClientVersion int32
}

func (m Info) Encode(p *varint.Packer) error {
	if err := p.AddString(m.Version); err != nil {
		return err
	}
	if err := p.AddString(m.Password); err != nil {
		return err
	}

	return p.AddInt32(m.ClientVersion)
}

func DecodeInfo(u *varint.Unpacker, sink warn.Sink[Warning]) (Info, error) {
	var m Info

	var err error
	if m.Version, err = DecodeString(u, true, sink); err != nil {
		return m, err
	}

	// Password is optional: absent once the buffer has already ended.
	m.Password, _, err = DecodeOptional(u, func(u *varint.Unpacker) (string, error) {
		return DecodeString(u, true, sink)
	})
	if err != nil {
		return m, err
	}

	m.ClientVersion, _, err = DecodeOptional(u, func(u *varint.Unpacker) (int32, error) {
		return u.NextInt32(wrapVarintSink(sink))
	})

	return m, err
}

// MapChange tells the client which map to load before gameplay messages
// can be processed.
type MapChange struct {
	Name   string
	Crc    int32
	Size   int32
	Sha256 [32]byte
}

func (m MapChange) Encode(p *varint.Packer) error {
	if err := p.AddString(m.Name); err != nil {
		return err
	}
	if err := p.AddInt32(m.Crc); err != nil {
		return err
	}
	if err := p.AddInt32(m.Size); err != nil {
		return err
	}

	return EncodeSHA256(p, m.Sha256)
}

func DecodeMapChange(u *varint.Unpacker, sink warn.Sink[Warning]) (MapChange, error) {
	var m MapChange

	var err error
	if m.Name, err = DecodeString(u, true, sink); err != nil {
		return m, err
	}
	if m.Crc, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Size, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}

	m.Sha256, _, err = DecodeOptional(u, DecodeSHA256)

	return m, err
}

// MapData is one chunk of the map file being streamed to the client.
type MapData struct {
	Last  bool
	Crc   int32
	Chunk int32
	Data  []byte
}

func (m MapData) Encode(p *varint.Packer) error {
	if err := EncodeBoolean(p, m.Last); err != nil {
		return err
	}
	if err := p.AddInt32(m.Crc); err != nil {
		return err
	}
	if err := p.AddInt32(m.Chunk); err != nil {
		return err
	}

	return p.AddData(m.Data)
}

func DecodeMapData(u *varint.Unpacker, sink warn.Sink[Warning]) (MapData, error) {
	var m MapData

	var err error
	if m.Last, err = DecodeBoolean(u, sink); err != nil {
		return m, err
	}
	if m.Crc, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Chunk, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Data, err = DecodeData(u, sink); err != nil {
		return m, err
	}

	return m, nil
}

// ConReady carries no fields: it is the server's signal that the
// connection has finished its setup handshake.
type ConReady struct{}

func (ConReady) Encode(*varint.Packer) error { return nil }

func DecodeConReady(*varint.Unpacker, warn.Sink[Warning]) (ConReady, error) {
	return ConReady{}, nil
}

// Snap is one part of a (possibly multi-part) snapshot delta message.
type Snap struct {
	Tick      Tick
	DeltaTick Tick
	NumParts  int32
	Part      int32
	Crc       int32
	Data      []byte
}

func (m Snap) Encode(p *varint.Packer) error {
	for _, v := range []int32{int32(m.Tick), int32(m.DeltaTick), m.NumParts, m.Part, m.Crc} {
		if err := p.AddInt32(v); err != nil {
			return err
		}
	}

	return p.AddData(m.Data)
}

func DecodeSnap(u *varint.Unpacker, sink warn.Sink[Warning]) (Snap, error) {
	var m Snap

	var err error
	if m.Tick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}
	if m.DeltaTick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}
	if m.NumParts, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Part, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Crc, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Data, err = DecodeData(u, sink); err != nil {
		return m, err
	}

	return m, nil
}

// SnapEmpty signals that the tick produced no changes: the client must
// reuse its previous snapshot for DeltaTick.
type SnapEmpty struct {
	Tick      Tick
	DeltaTick Tick
}

func (m SnapEmpty) Encode(p *varint.Packer) error {
	if err := p.AddInt32(int32(m.Tick)); err != nil {
		return err
	}

	return p.AddInt32(int32(m.DeltaTick))
}

func DecodeSnapEmpty(u *varint.Unpacker, sink warn.Sink[Warning]) (SnapEmpty, error) {
	var m SnapEmpty

	var err error
	if m.Tick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}

	m.DeltaTick, err = DecodeTick(u, sink)

	return m, err
}

// SnapSingle is the common case of a snapshot delta that fits in one
// packet.
type SnapSingle struct {
	Tick      Tick
	DeltaTick Tick
	Crc       int32
	Data      []byte
}

func (m SnapSingle) Encode(p *varint.Packer) error {
	for _, v := range []int32{int32(m.Tick), int32(m.DeltaTick), m.Crc} {
		if err := p.AddInt32(v); err != nil {
			return err
		}
	}

	return p.AddData(m.Data)
}

func DecodeSnapSingle(u *varint.Unpacker, sink warn.Sink[Warning]) (SnapSingle, error) {
	var m SnapSingle

	var err error
	if m.Tick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}
	if m.DeltaTick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}
	if m.Crc, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return m, err
	}
	if m.Data, err = DecodeData(u, sink); err != nil {
		return m, err
	}

	return m, nil
}

// InputTiming lets the client line up its input prediction with the
// server's tick rate.
type InputTiming struct {
	Tick     Tick
	TimeLeft int32
}

func (m InputTiming) Encode(p *varint.Packer) error {
	if err := p.AddInt32(int32(m.Tick)); err != nil {
		return err
	}

	return p.AddInt32(m.TimeLeft)
}

func DecodeInputTiming(u *varint.Unpacker, sink warn.Sink[Warning]) (InputTiming, error) {
	var m InputTiming

	var err error
	if m.Tick, err = DecodeTick(u, sink); err != nil {
		return m, err
	}

	m.TimeLeft, err = u.NextInt32(wrapVarintSink(sink))

	return m, err
}

// RconAuthOn/RconAuthOff toggle whether the connection's rcon commands
// are currently privileged. Neither carries fields.
type RconAuthOn struct{}

func (RconAuthOn) Encode(*varint.Packer) error { return nil }

func DecodeRconAuthOn(*varint.Unpacker, warn.Sink[Warning]) (RconAuthOn, error) {
	return RconAuthOn{}, nil
}

type RconAuthOff struct{}

func (RconAuthOff) Encode(*varint.Packer) error { return nil }

func DecodeRconAuthOff(*varint.Unpacker, warn.Sink[Warning]) (RconAuthOff, error) {
	return RconAuthOff{}, nil
}

// Ping/PingReply carry no fields; round-trip time is measured by the
// caller from send/receive timestamps.
type Ping struct{}

func (Ping) Encode(*varint.Packer) error { return nil }

func DecodePing(*varint.Unpacker, warn.Sink[Warning]) (Ping, error) {
	return Ping{}, nil
}

type PingReply struct{}

func (PingReply) Encode(*varint.Packer) error { return nil }

func DecodePingReply(*varint.Unpacker, warn.Sink[Warning]) (PingReply, error) {
	return PingReply{}, nil
}

// Error carries a human-readable fatal message, usually sent just before
// the connection is torn down.
type Error struct {
	Message string
}

func (m Error) Encode(p *varint.Packer) error {
	return p.AddString(m.Message)
}

func DecodeError(u *varint.Unpacker, sink warn.Sink[Warning]) (Error, error) {
	var m Error

	var err error
	m.Message, err = DecodeString(u, false, sink)

	return m, err
}

// RconCmdAdd/RconCmdRemove keep the client's local rcon autocomplete list
// in sync with the commands the server actually accepts.
type RconCmdAdd struct {
	Name   string
	Help   string
	Params string
}

func (m RconCmdAdd) Encode(p *varint.Packer) error {
	if err := p.AddString(m.Name); err != nil {
		return err
	}
	if err := p.AddString(m.Help); err != nil {
		return err
	}

	return p.AddString(m.Params)
}

func DecodeRconCmdAdd(u *varint.Unpacker, sink warn.Sink[Warning]) (RconCmdAdd, error) {
	var m RconCmdAdd

	var err error
	if m.Name, err = DecodeString(u, true, sink); err != nil {
		return m, err
	}
	if m.Help, err = DecodeString(u, true, sink); err != nil {
		return m, err
	}

	m.Params, err = DecodeString(u, true, sink)

	return m, err
}

type RconCmdRemove struct {
	Name string
}

func (m RconCmdRemove) Encode(p *varint.Packer) error {
	return p.AddString(m.Name)
}

func DecodeRconCmdRemove(u *varint.Unpacker, sink warn.Sink[Warning]) (RconCmdRemove, error) {
	var m RconCmdRemove

	var err error
	m.Name, err = DecodeString(u, true, sink)

	return m, err
}
