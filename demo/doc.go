// Package demo implements the direct byte-stream reader/writer for demo
// files (spec §4.J): a 7-byte magic "TWDEMO\0", a one-byte version in
// {3,4,5}, a fixed metadata header, an optional timeline-marker table,
// and a chunk stream interleaving tick markers with snapshot/delta/
// message payload chunks.
//
// The chunk stream's bit layout is bit-exact across versions; this
// package reproduces the version-gated encodings (including the v5
// inline-delta-tick shortcut and the overlong-size-encoding warnings)
// the way the original reference implementation does, grounded on
// original_source/demo/src/format.rs.
package demo
