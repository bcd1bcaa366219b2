// Package hash provides the xxHash64-based identifiers used for fast
// hash-indexed lookups: message UUIDs keyed by name (for diagnostics) and
// snapshot object (type_id, obj_id) pairs keyed into the snapshot arena
// index (spec §4.G, "hash-indexed lookup").
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// ObjKey computes a 64-bit hash of a snapshot object's (type_id, obj_id)
// pair, used as the key into a snapshot's object index.
func ObjKey(typeID, objID uint16) uint64 {
	var b [4]byte
	b[0], b[1] = byte(typeID), byte(typeID>>8)
	b[2], b[3] = byte(objID), byte(objID>>8)

	return xxhash.Sum64(b[:])
}
