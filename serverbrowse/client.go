package serverbrowse

import "github.com/ddnet-go/twnet/varint"

// Client is one player entry in a legacy (string-encoded) server-info
// client list, grounded on connless.rs's Client.
type Client struct {
	Name     string
	Clan     string
	Country  int32
	Score    int32
	IsPlayer int32
}

func decodeClient(u *varint.Unpacker) (Client, error) {
	var (
		c   Client
		err error
	)

	name, err := u.NextString()
	if err != nil {
		return c, err
	}
	clan, err := u.NextString()
	if err != nil {
		return c, err
	}

	c.Name, c.Clan = string(name), string(clan)

	if c.Country, err = decodeInt32String(u); err != nil {
		return c, err
	}
	if c.Score, err = decodeInt32String(u); err != nil {
		return c, err
	}
	if c.IsPlayer, err = decodeInt32String(u); err != nil {
		return c, err
	}

	return c, nil
}

func encodeClient(p *varint.Packer, c Client) error {
	if err := p.AddString(c.Name); err != nil {
		return err
	}
	if err := p.AddString(c.Clan); err != nil {
		return err
	}
	if err := encodeInt32String(p, c.Country); err != nil {
		return err
	}
	if err := encodeInt32String(p, c.Score); err != nil {
		return err
	}

	return encodeInt32String(p, c.IsPlayer)
}

// decodeClients decodes every remaining Client record in u until the
// buffer is exhausted, mirroring ClientsData::from_bytes's "rest of
// the packet is client records" framing.
func decodeClients(u *varint.Unpacker) ([]Client, error) {
	var clients []Client

	for !u.Done() {
		c, err := decodeClient(u)
		if err != nil {
			return clients, err
		}

		clients = append(clients, c)
	}

	return clients, nil
}
