package serverbrowse

import (
	"bytes"
	"fmt"

	"github.com/ddnet-go/twnet/errs"
)

// ConnlessID is the 8-byte magic that opens every connection-less
// server-browser packet: 4 bytes of 0xFF followed by a 4-byte tag.
type ConnlessID [8]byte

// Magic values for every known connection-less message, spec §6 /
// original_source/gamenet/ddnet/src/msg/connless.rs.
var (
	IDRequestList        = ConnlessID{0xff, 0xff, 0xff, 0xff, 'r', 'e', 'q', '2'}
	IDList               = ConnlessID{0xff, 0xff, 0xff, 0xff, 'l', 'i', 's', '2'}
	IDRequestCount       = ConnlessID{0xff, 0xff, 0xff, 0xff, 'c', 'o', 'u', '2'}
	IDCount              = ConnlessID{0xff, 0xff, 0xff, 0xff, 's', 'i', 'z', '2'}
	IDRequestInfo        = ConnlessID{0xff, 0xff, 0xff, 0xff, 'g', 'i', 'e', '3'}
	IDInfo               = ConnlessID{0xff, 0xff, 0xff, 0xff, 'i', 'n', 'f', '3'}
	IDInfoExtended       = ConnlessID{0xff, 0xff, 0xff, 0xff, 'i', 'e', 'x', 't'}
	IDInfoExtendedMore   = ConnlessID{0xff, 0xff, 0xff, 0xff, 'i', 'e', 'x', '+'}
	IDHeartbeat          = ConnlessID{0xff, 0xff, 0xff, 0xff, 'b', 'e', 'a', '2'}
	IDForwardCheck       = ConnlessID{0xff, 0xff, 0xff, 0xff, 'f', 'w', '?', '?'}
	IDForwardResponse    = ConnlessID{0xff, 0xff, 0xff, 0xff, 'f', 'w', '!', '!'}
	IDForwardOk          = ConnlessID{0xff, 0xff, 0xff, 0xff, 'f', 'w', 'o', 'k'}
	IDForwardError       = ConnlessID{0xff, 0xff, 0xff, 0xff, 'f', 'w', 'e', 'r'}
)

// SplitConnlessID reads the 8-byte magic off the front of a connection-less
// payload, returning it alongside the remaining bytes.
func SplitConnlessID(buf []byte) (ConnlessID, []byte, error) {
	if len(buf) < 8 {
		return ConnlessID{}, nil, fmt.Errorf("serverbrowse: %w: connless id truncated", errs.ErrUnexpectedEnd)
	}

	var id ConnlessID
	copy(id[:], buf[:8])

	return id, buf[8:], nil
}

// JoinConnlessID prepends id to payload.
func JoinConnlessID(id ConnlessID, payload []byte) []byte {
	out := make([]byte, 0, 8+len(payload))
	out = append(out, id[:]...)

	return append(out, payload...)
}

func (id ConnlessID) String() string {
	return string(id[4:])
}

// Equal reports whether two ConnlessIDs carry the same magic.
func (id ConnlessID) Equal(o ConnlessID) bool {
	return bytes.Equal(id[:], o[:])
}
