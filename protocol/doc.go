// Package protocol implements message framing on top of package varint
// (spec §4.F): the message-id varint (System/Game split, ordinal or
// 16-byte UUID), a set of typed field codec primitives shared by every
// concrete message, and the small family of system messages the
// transport itself must understand to drive a connection (handshake,
// snapshot delivery, rcon auth, ping). The hundreds of game-specific
// message and snapshot-object structs a full client/server pair would
// need are out of scope; they'd be generated from the same field
// primitives defined here.
package protocol
