// Package snapshot implements the typed object model a game tick's state
// is built from (spec §4.G): a Builder that accumulates (type_id, obj_id)
// objects with uniqueness enforcement, and an immutable Snapshot with a
// hash-indexed lookup by key, sorted deterministically for diffing.
package snapshot
