// Package compress provides the data-section codecs used by the datafile
// container (spec §4.I): zlib is the mandatory codec for version-4 data
// blobs, s2 is a supplemental fast codec available for archival use (e.g.
// compacted teehistorian extension items), and Noop passes version-3 raw
// data blobs through unchanged.
//
// The Codec interface and the one-codec-per-file layout mirror the
// teacher's compress package, generalized from mebo's multi-algorithm
// payload compression to a single mandatory on-disk codec plus optional
// archival ones.
package compress
