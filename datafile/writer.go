package datafile

import (
	"fmt"
	"sort"

	"github.com/ddnet-go/twnet/datafile/compress"
	"github.com/ddnet-go/twnet/errs"
)

type writerItem struct {
	typeID uint16
	id     uint16
	data   []int32
}

// Writer accumulates items and data blobs in memory and serializes them
// into a complete version-4 datafile.
type Writer struct {
	items []writerItem
	data  [][]byte
	seen  map[uint32]struct{}
	codec compress.Codec
}

// NewWriter returns an empty Writer. Data-section entries are zlib
// compressed on output (version 4).
func NewWriter() *Writer {
	return &Writer{seen: make(map[uint32]struct{}), codec: compress.NewZlibCodec()}
}

// AddItem appends one item, refusing a duplicate (typeID, id) pair.
func (w *Writer) AddItem(typeID, id uint16, data []int32) error {
	key := uint32(typeID)<<16 | uint32(id)
	if _, dup := w.seen[key]; dup {
		return fmt.Errorf("datafile: %w: type=%d id=%d", errs.ErrDuplicateItem, typeID, id)
	}

	w.seen[key] = struct{}{}

	stored := make([]int32, len(data))
	copy(stored, data)
	w.items = append(w.items, writerItem{typeID: typeID, id: id, data: stored})

	return nil
}

// AddData appends a data-section entry and returns its index.
func (w *Writer) AddData(data []byte) int {
	stored := make([]byte, len(data))
	copy(stored, data)
	w.data = append(w.data, stored)

	return len(w.data) - 1
}

// Bytes serializes the accumulated items and data into a complete
// version-4 datafile.
func (w *Writer) Bytes() ([]byte, error) {
	sorted := make([]writerItem, len(w.items))
	copy(sorted, w.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].typeID != sorted[j].typeID {
			return sorted[i].typeID < sorted[j].typeID
		}

		return sorted[i].id < sorted[j].id
	})

	var itemTypes []itemType

	for i, it := range sorted {
		if len(itemTypes) == 0 || itemTypes[len(itemTypes)-1].TypeID != int32(it.typeID) {
			itemTypes = append(itemTypes, itemType{TypeID: int32(it.typeID), Start: int32(i), Num: 0})
		}

		itemTypes[len(itemTypes)-1].Num++
	}

	itemOffsets := make([]int32, len(sorted))
	itemBlobs := make([][]byte, len(sorted))

	off := int32(0)

	for i, it := range sorted {
		itemOffsets[i] = off

		buf := make([]byte, itemHeaderSize+len(it.data)*4)
		packItemHeader(it.typeID, it.id, int32(len(it.data)*4)).write(buf)
		writeI32Array(buf[itemHeaderSize:], it.data)
		itemBlobs[i] = buf

		off += int32(len(buf))
	}

	compressedData := make([][]byte, len(w.data))
	uncompSizes := make([]int32, len(w.data))
	dataOffsets := make([]int32, len(w.data))

	dataOff := int32(0)

	for i, d := range w.data {
		compressed, err := w.codec.Compress(d)
		if err != nil {
			return nil, fmt.Errorf("datafile: compress data[%d]: %w", i, err)
		}

		compressedData[i] = compressed
		uncompSizes[i] = int32(len(d))
		dataOffsets[i] = dataOff
		dataOff += int32(len(compressed))
	}

	sizeItems := off
	sizeData := dataOff

	h := Header{
		Version:      Version4,
		Swaplen:      0,
		NumItemTypes: int32(len(itemTypes)),
		NumItems:     int32(len(sorted)),
		NumData:      int32(len(w.data)),
		SizeItems:    sizeItems,
		SizeData:     sizeData,
	}
	h.Size = int32(itemTypeSize*len(itemTypes)) + 4*int32(len(sorted)) + 4*int32(len(w.data)) + 4*int32(len(w.data)) + sizeItems + sizeData

	out := make([]byte, 0, headerSize+int(h.Size))
	out = append(out, make([]byte, headerSize)...)
	h.write(out)

	for _, t := range itemTypes {
		b := make([]byte, itemTypeSize)
		t.write(b)
		out = append(out, b...)
	}

	for _, o := range itemOffsets {
		b := make([]byte, 4)
		byteOrder.PutUint32(b, uint32(o))
		out = append(out, b...)
	}

	for _, o := range dataOffsets {
		b := make([]byte, 4)
		byteOrder.PutUint32(b, uint32(o))
		out = append(out, b...)
	}

	for _, s := range uncompSizes {
		b := make([]byte, 4)
		byteOrder.PutUint32(b, uint32(s))
		out = append(out, b...)
	}

	for _, blob := range itemBlobs {
		out = append(out, blob...)
	}

	for _, blob := range compressedData {
		out = append(out, blob...)
	}

	return out, nil
}
