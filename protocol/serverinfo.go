package protocol

import (
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// ServerinfoClient is one player entry in a connectionless server-info
// reply (spec §6, "packed client list").
type ServerinfoClient struct {
	Name     string
	Clan     string
	Country  int32
	Score    int32
	IsPlayer bool
}

func DecodeServerinfoClient(u *varint.Unpacker, sink warn.Sink[Warning]) (ServerinfoClient, error) {
	var c ServerinfoClient

	var err error

	if c.Name, err = DecodeString(u, true, sink); err != nil {
		return c, err
	}
	if c.Clan, err = DecodeString(u, true, sink); err != nil {
		return c, err
	}
	if c.Country, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return c, err
	}
	if c.Score, err = u.NextInt32(wrapVarintSink(sink)); err != nil {
		return c, err
	}
	if c.IsPlayer, err = DecodeBoolean(u, sink); err != nil {
		return c, err
	}

	return c, nil
}

func EncodeServerinfoClient(p *varint.Packer, c ServerinfoClient) error {
	if err := p.AddString(c.Name); err != nil {
		return err
	}
	if err := p.AddString(c.Clan); err != nil {
		return err
	}
	if err := p.AddInt32(c.Country); err != nil {
		return err
	}
	if err := p.AddInt32(c.Score); err != nil {
		return err
	}

	return EncodeBoolean(p, c.IsPlayer)
}
