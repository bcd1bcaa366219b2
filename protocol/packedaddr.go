package protocol

import "github.com/ddnet-go/twnet/varint"

// PackedAddress is a fixed 18-byte (16-byte IP + big-endian port) address
// entry as carried in server-browse/master-registration client lists.
type PackedAddress struct {
	IP   [16]byte
	Port uint16
}

func DecodePackedAddress(u *varint.Unpacker) (PackedAddress, error) {
	var a PackedAddress

	raw, err := u.NextRaw(18)
	if err != nil {
		return a, err
	}

	copy(a.IP[:], raw[:16])
	a.Port = uint16(raw[16])<<8 | uint16(raw[17])

	return a, nil
}

func EncodePackedAddress(p *varint.Packer, a PackedAddress) error {
	buf := make([]byte, 18)
	copy(buf, a.IP[:])
	buf[16] = byte(a.Port >> 8)
	buf[17] = byte(a.Port)

	return p.AddRaw(buf)
}
