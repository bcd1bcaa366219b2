// Package datafile implements the on-disk container format shared by map,
// demo-companion and other Teeworlds/DDNet asset files (spec §4.I): a
// fixed header, an item-type directory, an item offset/data-offset table,
// an items blob and a (version 4: zlib-compressed) data blob.
//
// Reader lazily inflates and caches each data-section entry on first
// access; Writer accumulates items and data blobs in memory and emits a
// complete version-4 file from Bytes.
package datafile
