// Package delta implements differential encoding between two snapshots
// (spec §4.H): pure encode/decode/apply functions over a base and target
// snapshot.Snapshot, plus a bounded storage ring keyed by tick that a
// sender uses to find the snapshot a client has acknowledged.
package delta
