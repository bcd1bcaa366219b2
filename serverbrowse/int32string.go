package serverbrowse

import (
	"fmt"
	"strconv"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/varint"
)

// decodeInt32String reads a NUL-terminated ASCII decimal integer, the
// legacy server-info protocol's numeric field encoding.
func decodeInt32String(u *varint.Unpacker) (int32, error) {
	raw, err := u.NextString()
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(string(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("serverbrowse: %w: %q is not a decimal integer", errs.ErrMalformedPacket, raw)
	}

	return int32(n), nil
}

func encodeInt32String(p *varint.Packer, v int32) error {
	return p.AddString(strconv.FormatInt(int64(v), 10))
}
