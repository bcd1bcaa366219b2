// Package teehistorian implements the tagged delta-encoded event log DDNet
// servers record alongside a match: a JSON header describing the game and
// map, followed by a stream of items whose leading varint tag is either a
// non-negative client id (a player position delta) or one of a small set
// of negative sentinels selecting a fixed item shape.
//
// Reader reconstructs high-level events (tick boundaries, player
// join/leave/move, input changes, chat, console commands) by tracking
// each client's absolute position and input state across the diff
// stream, grounded on original_source/teehistorian/src/raw.rs and
// original_source/teehistorian/src/format/item.rs.
package teehistorian
