package datafile

import (
	"fmt"

	"github.com/ddnet-go/twnet/endian"
	"github.com/ddnet-go/twnet/errs"
)

var byteOrder = endian.GetLittleEndianEngine()

// Version identifies a datafile's on-disk layout.
type Version int32

const (
	// Version3 stores its data section raw, uncompressed.
	Version3 Version = 3
	// Version4 stores its data section as individually zlib-compressed
	// streams, with a table of their uncompressed sizes ahead of the items
	// blob.
	Version4 Version = 4
)

var (
	magicData    = [4]byte{'D', 'A', 'T', 'A'}
	magicDataRev = [4]byte{'A', 'T', 'A', 'D'}
)

// headerSize is the fixed 36-byte size of the on-disk header: a 4-byte
// magic followed by 8 little-endian int32 fields.
const headerSize = 4 + 8*4

// Header is the fixed-size preamble of a datafile (spec §4.I).
type Header struct {
	Version       Version
	Size          int32
	Swaplen       int32
	NumItemTypes  int32
	NumItems      int32
	NumData       int32
	SizeItems     int32
	SizeData      int32
}

func readHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, fmt.Errorf("datafile: header: %w", errs.ErrUnexpectedEnd)
	}

	var magic [4]byte
	copy(magic[:], buf[0:4])

	if magic != magicData && magic != magicDataRev {
		return Header{}, fmt.Errorf("datafile: header: %w: bad magic", errs.ErrInvalidHeader)
	}

	i32 := func(off int) int32 { return int32(byteOrder.Uint32(buf[off : off+4])) }

	h := Header{
		Version:      Version(i32(4)),
		Size:         i32(8),
		Swaplen:      i32(12),
		NumItemTypes: i32(16),
		NumItems:     i32(20),
		NumData:      i32(24),
		SizeItems:    i32(28),
		SizeData:     i32(32),
	}

	if h.Version != Version3 && h.Version != Version4 {
		return Header{}, fmt.Errorf("datafile: header: %w: version %d not in {3,4}", errs.ErrInvalidHeader, h.Version)
	}

	for name, v := range map[string]int32{
		"num_item_types": h.NumItemTypes,
		"num_items":      h.NumItems,
		"num_data":       h.NumData,
		"size_items":     h.SizeItems,
		"size_data":      h.SizeData,
	} {
		if v < 0 {
			return Header{}, fmt.Errorf("datafile: header: %w: negative %s", errs.ErrInvalidHeader, name)
		}
	}

	if h.SizeItems%4 != 0 {
		return Header{}, fmt.Errorf("datafile: header: %w: size_items not a multiple of 4", errs.ErrInvalidHeader)
	}

	return h, nil
}

func (h Header) write(buf []byte) {
	copy(buf[0:4], magicData[:])

	put := func(off int, v int32) { byteOrder.PutUint32(buf[off:off+4], uint32(v)) }
	put(4, int32(h.Version))
	put(8, h.Size)
	put(12, h.Swaplen)
	put(16, h.NumItemTypes)
	put(20, h.NumItems)
	put(24, h.NumData)
	put(28, h.SizeItems)
	put(32, h.SizeData)
}

// itemTypeSize is the on-disk size in bytes of one ItemType directory
// entry: (type_id, start, num), each an int32.
const itemTypeSize = 3 * 4

// itemType is one entry of the item-type directory: the range of item
// indices [Start, Start+Num) that carry TypeID.
type itemType struct {
	TypeID int32
	Start  int32
	Num    int32
}

func readItemType(buf []byte) itemType {
	i32 := func(off int) int32 { return int32(byteOrder.Uint32(buf[off : off+4])) }

	return itemType{TypeID: i32(0), Start: i32(4), Num: i32(8)}
}

func (t itemType) write(buf []byte) {
	put := func(off int, v int32) { byteOrder.PutUint32(buf[off:off+4], uint32(v)) }
	put(0, t.TypeID)
	put(4, t.Start)
	put(8, t.Num)
}

// itemHeaderSize is the on-disk size in bytes of one item header: a
// packed (type_id, id) int32 followed by a size int32.
const itemHeaderSize = 2 * 4

// itemHeader precedes every item's i32 payload within the items blob.
type itemHeader struct {
	TypeIDAndID int32 // (type_id << 16) | id
	Size        int32 // payload size in bytes
}

// TypeID extracts the 16-bit item type from the packed field.
func (h itemHeader) TypeID() uint16 { return uint16(uint32(h.TypeIDAndID) >> 16) }

// ID extracts the 16-bit item id from the packed field.
func (h itemHeader) ID() uint16 { return uint16(uint32(h.TypeIDAndID)) }

func packItemHeader(typeID, id uint16, size int32) itemHeader {
	return itemHeader{TypeIDAndID: int32(uint32(typeID)<<16 | uint32(id)), Size: size}
}

func readItemHeader(buf []byte) itemHeader {
	i32 := func(off int) int32 { return int32(byteOrder.Uint32(buf[off : off+4])) }

	return itemHeader{TypeIDAndID: i32(0), Size: i32(4)}
}

func (h itemHeader) write(buf []byte) {
	put := func(off int, v int32) { byteOrder.PutUint32(buf[off:off+4], uint32(v)) }
	put(0, h.TypeIDAndID)
	put(4, h.Size)
}

func readI32Array(buf []byte, n int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(byteOrder.Uint32(buf[i*4 : i*4+4]))
	}

	return out
}

func writeI32Array(buf []byte, vals []int32) {
	for i, v := range vals {
		byteOrder.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
}
