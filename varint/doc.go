// Package varint implements the variable-length integer, NUL-terminated
// string and length-prefixed data-blob codec that every wire message in
// the Teeworlds/DDNet protocol is built on.
//
// # Integer encoding
//
// A signed 32-bit integer is encoded in 1-5 little-endian bytes. The first
// byte carries an extend bit (0x80), a sign bit (0x40) and 6 value bits;
// each following byte carries an extend bit and 7 value bits. Negative
// values are bitwise-inverted before packing and the sign bit is flipped
// back in on decode (Pack: i = ~i for i<0; Unpack: result ^= -sign).
//
// # Packer / Unpacker
//
// Packer appends encoded fields to a caller-provided, bounded []byte and
// reports ErrCapacity without mutating its buffer if a write would
// overflow it. Unpacker walks a []byte left to right, reporting recoverable
// oddities (overlong encodings, non-zero padding bits, excess trailing
// data) through a warn.Sink instead of failing the whole decode.
package varint
