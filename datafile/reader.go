package datafile

import (
	"fmt"

	"github.com/ddnet-go/twnet/datafile/compress"
	"github.com/ddnet-go/twnet/errs"
)

// Item is one entry of the items blob: a typed, identified i32 payload.
type Item struct {
	TypeID uint16
	ID     uint16
	Data   []int32
}

// Reader parses and validates a complete datafile held in memory, and
// lazily inflates data-section entries on first access.
type Reader struct {
	header       Header
	itemTypes    []itemType
	itemOffsets  []int32
	dataOffsets  []int32
	uncompSizes  []int32 // nil for version 3
	itemsBlob    []byte
	dataBlob     []byte
	dataCache    [][]byte
	codec        compress.Codec
}

// Open parses buf as a complete datafile and validates every invariant in
// spec §4.I before returning.
func Open(buf []byte) (*Reader, error) {
	h, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	off := headerSize

	need := func(n int) error {
		if off+n > len(buf) {
			return fmt.Errorf("datafile: %w", errs.ErrUnexpectedEnd)
		}

		return nil
	}

	if err := need(int(h.NumItemTypes) * itemTypeSize); err != nil {
		return nil, err
	}

	itemTypes := make([]itemType, h.NumItemTypes)
	for i := range itemTypes {
		itemTypes[i] = readItemType(buf[off:])
		off += itemTypeSize
	}

	if err := need(int(h.NumItems) * 4); err != nil {
		return nil, err
	}

	itemOffsets := readI32Array(buf[off:], h.NumItems)
	off += int(h.NumItems) * 4

	if err := need(int(h.NumData) * 4); err != nil {
		return nil, err
	}

	dataOffsets := readI32Array(buf[off:], h.NumData)
	off += int(h.NumData) * 4

	var uncompSizes []int32
	if h.Version == Version4 {
		if err := need(int(h.NumData) * 4); err != nil {
			return nil, err
		}

		uncompSizes = readI32Array(buf[off:], h.NumData)
		off += int(h.NumData) * 4
	}

	if err := need(int(h.SizeItems)); err != nil {
		return nil, err
	}

	itemsBlob := buf[off : off+int(h.SizeItems)]
	off += int(h.SizeItems)

	if err := need(int(h.SizeData)); err != nil {
		return nil, err
	}

	dataBlob := buf[off : off+int(h.SizeData)]

	r := &Reader{
		header:      h,
		itemTypes:   itemTypes,
		itemOffsets: itemOffsets,
		dataOffsets: dataOffsets,
		uncompSizes: uncompSizes,
		itemsBlob:   itemsBlob,
		dataBlob:    dataBlob,
		dataCache:   make([][]byte, h.NumData),
	}

	if h.Version == Version4 {
		r.codec = compress.NewZlibCodec()
	} else {
		r.codec = compress.NewNoopCodec()
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Reader) validate() error {
	expectedStart := int32(0)

	seen := make(map[int32]struct{}, len(r.itemTypes))

	for i, t := range r.itemTypes {
		if t.TypeID < 0 || t.TypeID >= 1<<16 {
			return fmt.Errorf("datafile: %w: item_type[%d] type_id %d out of range", errs.ErrInvalidItemIndex, i, t.TypeID)
		}
		if t.Num < 0 || t.Num > r.header.NumItems-t.Start {
			return fmt.Errorf("datafile: %w: item_type[%d] num out of range", errs.ErrInvalidItemIndex, i)
		}
		if t.Start != expectedStart {
			return fmt.Errorf("datafile: %w: item_type[%d] not sequential", errs.ErrInvalidItemIndex, i)
		}

		expectedStart += t.Num

		if _, dup := seen[t.TypeID]; dup {
			return fmt.Errorf("datafile: %w: item_type[%d] type_id %d repeated", errs.ErrInvalidItemIndex, i, t.TypeID)
		}

		seen[t.TypeID] = struct{}{}
	}

	if expectedStart != r.header.NumItems {
		return fmt.Errorf("datafile: %w: item types don't partition all items", errs.ErrInvalidItemIndex)
	}

	offset := int32(0)

	for i := 0; i < int(r.header.NumItems); i++ {
		if r.itemOffsets[i] < 0 || r.itemOffsets[i] != offset {
			return fmt.Errorf("datafile: %w: item[%d] offset mismatch", errs.ErrInvalidItemIndex, i)
		}

		offset += itemHeaderSize
		if offset > r.header.SizeItems {
			return fmt.Errorf("datafile: %w: item[%d] header out of bounds", errs.ErrInvalidItemIndex, i)
		}

		ih := readItemHeader(r.itemsBlob[r.itemOffsets[i]:])
		if ih.Size < 0 {
			return fmt.Errorf("datafile: %w: item[%d] negative size", errs.ErrInvalidItemIndex, i)
		}

		offset += ih.Size
		if offset > r.header.SizeItems {
			return fmt.Errorf("datafile: %w: item[%d] out of bounds", errs.ErrInvalidItemIndex, i)
		}
	}

	if offset != r.header.SizeItems {
		return fmt.Errorf("datafile: %w: items blob has trailing bytes", errs.ErrInvalidItemIndex)
	}

	previous := int32(0)

	for i := 0; i < int(r.header.NumData); i++ {
		if r.uncompSizes != nil && r.uncompSizes[i] < 0 {
			return fmt.Errorf("datafile: %w: data[%d] negative uncompressed size", errs.ErrInvalidItemIndex, i)
		}

		o := r.dataOffsets[i]
		if o < 0 || o > r.header.SizeData {
			return fmt.Errorf("datafile: %w: data[%d] offset out of bounds", errs.ErrInvalidItemIndex, i)
		}
		if o < previous {
			return fmt.Errorf("datafile: %w: data[%d] overlaps previous", errs.ErrInvalidItemIndex, i)
		}

		previous = o
	}

	for i, t := range r.itemTypes {
		for k := t.Start; k < t.Start+t.Num; k++ {
			ih := readItemHeader(r.itemsBlob[r.itemOffsets[k]:])
			if ih.TypeID() != uint16(t.TypeID) {
				return fmt.Errorf("datafile: %w: item[%d] doesn't match item_type[%d]", errs.ErrInvalidItemIndex, k, i)
			}
		}
	}

	return nil
}

// NumItems reports the total number of items.
func (r *Reader) NumItems() int { return int(r.header.NumItems) }

// NumData reports the total number of data-section entries.
func (r *Reader) NumData() int { return int(r.header.NumData) }

// Item returns the i-th item's type, id and raw i32 payload.
func (r *Reader) Item(i int) Item {
	ih := readItemHeader(r.itemsBlob[r.itemOffsets[i]:])
	payload := r.itemsBlob[int(r.itemOffsets[i])+itemHeaderSize : int(r.itemOffsets[i])+itemHeaderSize+int(ih.Size)]

	return Item{TypeID: ih.TypeID(), ID: ih.ID(), Data: readI32Array(payload, ih.Size/4)}
}

// ItemTypeItems returns the indices [start, start+num) of items carrying
// typeID, or an empty range if typeID isn't present.
func (r *Reader) ItemTypeItems(typeID uint16) (start, num int) {
	for _, t := range r.itemTypes {
		if uint16(t.TypeID) == typeID {
			return int(t.Start), int(t.Num)
		}
	}

	return 0, 0
}

func (r *Reader) dataSizeInFile(i int) int {
	start := int(r.dataOffsets[i])

	end := int(r.header.SizeData)
	if i < len(r.dataOffsets)-1 {
		end = int(r.dataOffsets[i+1])
	}

	return end - start
}

// Data returns the decoded bytes of the i-th data-section entry,
// inflating and caching it on first access.
func (r *Reader) Data(i int) ([]byte, error) {
	if r.dataCache[i] != nil {
		return r.dataCache[i], nil
	}

	start := int(r.dataOffsets[i])
	raw := r.dataBlob[start : start+r.dataSizeInFile(i)]

	uncompSize := len(raw)
	if r.uncompSizes != nil {
		uncompSize = int(r.uncompSizes[i])
	}

	decoded, err := r.codec.Decompress(raw, uncompSize)
	if err != nil {
		return nil, fmt.Errorf("datafile: data[%d]: %w", i, err)
	}

	r.dataCache[i] = decoded

	return decoded, nil
}
