// Package mapfile provides a typed view over a datafile (spec §4.J) whose
// items follow the Teeworlds/DDNet map type registry: info, image,
// envelope, group, tile/quad layers, envelope points and ddrace sound
// sources. Each item kind has its own fixed i32 layout that grows across
// versions; Decode functions read the leading version word and populate
// only the fields that version actually carries, mirroring how the
// reference client tolerates older map files.
package mapfile
