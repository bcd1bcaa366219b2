package serverbrowse

import (
	"github.com/ddnet-go/twnet/protocol"
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// RequestList is the empty request that precedes a List response.
type RequestList struct{}

// List is a server list response: a flat run of packed addresses filling
// the rest of the packet.
type List struct {
	Servers []protocol.PackedAddress
}

// RequestCount is the empty request that precedes a Count response.
type RequestCount struct{}

// Count is the server-count response to RequestCount.
type Count struct {
	N uint16
}

// RequestInfo asks a single server for its Info, authenticated by a
// client-chosen token echoed back in the response.
type RequestInfo struct {
	Token byte
}

// Info is a server's legacy (ASCII-string-encoded) self-description.
type Info struct {
	Token       int32
	Version     string
	Name        string
	Map         string
	GameType    string
	Flags       int32
	NumPlayers  int32
	MaxPlayers  int32
	NumClients  int32
	MaxClients  int32
	Clients     []Client
}

// InfoExtended adds map identity fields over Info, split across one or
// more InfoExtendedMore continuation packets when the client list
// overflows a single packet.
type InfoExtended struct {
	Token      int32
	Version    string
	Name       string
	Map        string
	MapCrc     int32
	MapSize    int32
	GameType   string
	Flags      int32
	NumPlayers int32
	MaxPlayers int32
	NumClients int32
	MaxClients int32
	Reserved   string
	Clients    []Client
}

// InfoExtendedMore is a continuation packet of an InfoExtended response.
type InfoExtendedMore struct {
	Token    int32
	PacketNo int32
	Reserved string
	Clients  []Client
}

// Heartbeat tells a master server an alternate UDP port to also probe.
type Heartbeat struct {
	AltPort uint16
}

// Empty request/response markers for the forwarding handshake used by
// servers behind NAT.
type (
	ForwardCheck    struct{}
	ForwardResponse struct{}
	ForwardOk       struct{}
	ForwardError    struct{}
)

func DecodeRequestInfo(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (RequestInfo, error) {
	raw, err := u.NextRaw(1)
	if err != nil {
		return RequestInfo{}, err
	}

	u.Finish(sink)

	return RequestInfo{Token: raw[0]}, nil
}

func EncodeRequestInfo(p *varint.Packer, r RequestInfo) error {
	return p.AddRaw([]byte{r.Token})
}

func DecodeCount(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (Count, error) {
	raw, err := u.NextRaw(2)
	if err != nil {
		return Count{}, err
	}

	u.Finish(sink)

	return Count{N: uint16(raw[0])<<8 | uint16(raw[1])}, nil
}

func EncodeCount(p *varint.Packer, c Count) error {
	return p.AddRaw([]byte{byte(c.N >> 8), byte(c.N)})
}

func DecodeHeartbeat(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (Heartbeat, error) {
	raw, err := u.NextRaw(2)
	if err != nil {
		return Heartbeat{}, err
	}

	u.Finish(sink)

	return Heartbeat{AltPort: uint16(raw[0])<<8 | uint16(raw[1])}, nil
}

func EncodeHeartbeat(p *varint.Packer, h Heartbeat) error {
	return p.AddRaw([]byte{byte(h.AltPort >> 8), byte(h.AltPort)})
}

func DecodeInfo(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (Info, error) {
	var (
		i   Info
		err error
	)

	if i.Token, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.Version, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Name, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Map, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.GameType, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Flags, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.NumPlayers, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.MaxPlayers, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.NumClients, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.MaxClients, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.Clients, err = decodeClients(u); err != nil {
		return i, err
	}

	u.Finish(sink)

	return i, nil
}

func EncodeInfo(p *varint.Packer, i Info) error {
	if err := encodeInt32String(p, i.Token); err != nil {
		return err
	}
	if err := p.AddString(i.Version); err != nil {
		return err
	}
	if err := p.AddString(i.Name); err != nil {
		return err
	}
	if err := p.AddString(i.Map); err != nil {
		return err
	}
	if err := p.AddString(i.GameType); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.Flags); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.NumPlayers); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MaxPlayers); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.NumClients); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MaxClients); err != nil {
		return err
	}

	for _, c := range i.Clients {
		if err := encodeClient(p, c); err != nil {
			return err
		}
	}

	return nil
}

func decodeStringField(u *varint.Unpacker) (string, error) {
	raw, err := u.NextString()
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func DecodeInfoExtended(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (InfoExtended, error) {
	var (
		i   InfoExtended
		err error
	)

	if i.Token, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.Version, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Name, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Map, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.MapCrc, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.MapSize, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.GameType, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Flags, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.NumPlayers, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.MaxPlayers, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.NumClients, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.MaxClients, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.Reserved, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Clients, err = decodeClients(u); err != nil {
		return i, err
	}

	u.Finish(sink)

	return i, nil
}

func EncodeInfoExtended(p *varint.Packer, i InfoExtended) error {
	if err := encodeInt32String(p, i.Token); err != nil {
		return err
	}
	if err := p.AddString(i.Version); err != nil {
		return err
	}
	if err := p.AddString(i.Name); err != nil {
		return err
	}
	if err := p.AddString(i.Map); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MapCrc); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MapSize); err != nil {
		return err
	}
	if err := p.AddString(i.GameType); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.Flags); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.NumPlayers); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MaxPlayers); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.NumClients); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.MaxClients); err != nil {
		return err
	}
	if err := p.AddString(i.Reserved); err != nil {
		return err
	}

	for _, c := range i.Clients {
		if err := encodeClient(p, c); err != nil {
			return err
		}
	}

	return nil
}

func DecodeInfoExtendedMore(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (InfoExtendedMore, error) {
	var (
		i   InfoExtendedMore
		err error
	)

	if i.Token, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.PacketNo, err = decodeInt32String(u); err != nil {
		return i, err
	}
	if i.Reserved, err = decodeStringField(u); err != nil {
		return i, err
	}
	if i.Clients, err = decodeClients(u); err != nil {
		return i, err
	}

	u.Finish(sink)

	return i, nil
}

func EncodeInfoExtendedMore(p *varint.Packer, i InfoExtendedMore) error {
	if err := encodeInt32String(p, i.Token); err != nil {
		return err
	}
	if err := encodeInt32String(p, i.PacketNo); err != nil {
		return err
	}
	if err := p.AddString(i.Reserved); err != nil {
		return err
	}

	for _, c := range i.Clients {
		if err := encodeClient(p, c); err != nil {
			return err
		}
	}

	return nil
}

func DecodeList(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (List, error) {
	var l List

	for !u.Done() {
		a, err := protocol.DecodePackedAddress(u)
		if err != nil {
			return l, err
		}

		l.Servers = append(l.Servers, a)
	}

	u.Finish(sink)

	return l, nil
}

func EncodeList(p *varint.Packer, l List) error {
	for _, a := range l.Servers {
		if err := protocol.EncodePackedAddress(p, a); err != nil {
			return err
		}
	}

	return nil
}
