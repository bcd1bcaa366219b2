// Package huffman implements the static Huffman coder used to compress
// every connected packet's payload (spec §4.B).
//
// The alphabet is fixed at 257 symbols: the 256 byte values plus one EOF
// symbol. A canonical binary tree is built once from a 256-entry frequency
// table (plus a constant frequency of 1 for EOF) by repeatedly merging the
// two lowest-frequency subtrees; bit codes are then assigned by a
// depth-first, left-first traversal. Compression emits each input byte's
// code followed by the EOF code and flushes the final partial byte;
// decompression walks the tree bit by bit, LSB first within each byte,
// until it reaches EOF.
//
// A quirk of the reference implementation appends one extra zero byte
// when the compressed bitstream happens to end exactly on a byte
// boundary. CompressBug reproduces this for wire compatibility; Compress
// is the clean variant. Both produce streams Decompress can read.
package huffman
