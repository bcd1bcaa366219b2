package protocol

import (
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// MessageID identifies a message's type: either an ordinal within the
// System or Game namespace, or a 16-byte UUID for extension messages
// (spec §3, "Message").
type MessageID struct {
	System  bool
	Ordinal int32  // non-zero: the message is identified by this ordinal.
	UUID    [16]byte // valid only when Ordinal == 0.
}

// EncodeMessageID writes id's raw_id varint, followed by its UUID bytes
// when Ordinal is zero.
func EncodeMessageID(p *varint.Packer, id MessageID) error {
	raw := id.Ordinal << 1
	if id.System {
		raw |= 1
	}

	if err := p.AddInt32(raw); err != nil {
		return err
	}

	if id.Ordinal == 0 {
		return p.AddRaw(id.UUID[:])
	}

	return nil
}

// DecodeMessageID reads a raw_id varint and, if it signals an extension
// message, the following 16-byte UUID.
func DecodeMessageID(u *varint.Unpacker, sink warn.Sink[Warning]) (MessageID, error) {
	raw, err := u.NextInt32(wrapVarintSink(sink))
	if err != nil {
		return MessageID{}, err
	}

	system := raw&1 != 0
	ordinal := raw >> 1

	if ordinal != 0 {
		return MessageID{System: system, Ordinal: ordinal}, nil
	}

	uuidBytes, err := u.NextRaw(16)
	if err != nil {
		return MessageID{}, err
	}

	var id MessageID
	id.System = system
	copy(id.UUID[:], uuidBytes)

	return id, nil
}
