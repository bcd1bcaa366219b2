package delta

import (
	"fmt"

	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// EncodeWire writes d as a sequence of varint-encoded int32 fields: the
// removed count, the updated count, each removed key's (type_id, obj_id),
// then each updated object's (type_id, obj_id) followed by its delta
// words.
func EncodeWire(p *varint.Packer, d Delta) error {
	if err := p.AddInt32(int32(len(d.Removed))); err != nil {
		return err
	}
	if err := p.AddInt32(int32(len(d.Updated))); err != nil {
		return err
	}

	for _, k := range d.Removed {
		if err := p.AddInt32(int32(k.TypeID)); err != nil {
			return err
		}
		if err := p.AddInt32(int32(k.ObjID)); err != nil {
			return err
		}
	}

	for _, u := range d.Updated {
		if err := p.AddInt32(int32(u.TypeID)); err != nil {
			return err
		}
		if err := p.AddInt32(int32(u.ObjID)); err != nil {
			return err
		}

		for _, v := range u.Delta {
			if err := p.AddInt32(v); err != nil {
				return err
			}
		}
	}

	return nil
}

// DecodeWire reads back a Delta written by EncodeWire. objSize reports how
// many i32 words an updated object of the given type carries, since the
// wire form itself does not repeat each type's width.
func DecodeWire(u *varint.Unpacker, sink warn.Sink[varint.Warning], objSize func(typeID uint16) int) (Delta, error) {
	var d Delta

	numRemoved, err := u.NextInt32(sink)
	if err != nil {
		return Delta{}, fmt.Errorf("delta: removed count: %w", err)
	}

	numUpdated, err := u.NextInt32(sink)
	if err != nil {
		return Delta{}, fmt.Errorf("delta: updated count: %w", err)
	}

	for i := int32(0); i < numRemoved; i++ {
		typeID, err := u.NextInt32(sink)
		if err != nil {
			return Delta{}, fmt.Errorf("delta: removed[%d] type_id: %w", i, err)
		}

		objID, err := u.NextInt32(sink)
		if err != nil {
			return Delta{}, fmt.Errorf("delta: removed[%d] obj_id: %w", i, err)
		}

		d.Removed = append(d.Removed, Key{TypeID: uint16(typeID), ObjID: uint16(objID)})
	}

	for i := int32(0); i < numUpdated; i++ {
		typeID, err := u.NextInt32(sink)
		if err != nil {
			return Delta{}, fmt.Errorf("delta: updated[%d] type_id: %w", i, err)
		}

		objID, err := u.NextInt32(sink)
		if err != nil {
			return Delta{}, fmt.Errorf("delta: updated[%d] obj_id: %w", i, err)
		}

		n := objSize(uint16(typeID))
		words := make([]int32, n)

		for j := 0; j < n; j++ {
			v, err := u.NextInt32(sink)
			if err != nil {
				return Delta{}, fmt.Errorf("delta: updated[%d] word[%d]: %w", i, j, err)
			}

			words[j] = v
		}

		d.Updated = append(d.Updated, UpdatedObject{TypeID: uint16(typeID), ObjID: uint16(objID), Delta: words})
	}

	return d, nil
}
