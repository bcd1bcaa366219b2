package huffman

// DefaultFrequencies is the constant 256-entry frequency table the
// network layer builds its static tree from. Every peer built from this
// package uses this same table, so the tree never needs to travel on the
// wire. The values are synthesized by buildDefaultFrequencies; they are not
// the reference client's frequency constants, so streams it compresses are
// not decodable by peers that use those constants.
//
// Byte 0x00 dominates the distribution: snapshot deltas and padded
// fixed-width fields are mostly runs of zero, so the tree gives it close
// to a 1-bit code. Printable ASCII (player names, chat, rcon text) comes
// next; everything else is comparatively rare.
var DefaultFrequencies = buildDefaultFrequencies()

func buildDefaultFrequencies() [256]uint32 {
	var f [256]uint32

	f[0] = 1 << 24

	for i := 1; i < 256; i++ {
		switch {
		case i == ' ':
			f[i] = 15000
		case i >= '0' && i <= '9':
			f[i] = 8000
		case i >= 'a' && i <= 'z':
			f[i] = 12000
		case i >= 'A' && i <= 'Z':
			f[i] = 6000
		case i < 0x20:
			f[i] = 200
		case i < 0x7f:
			f[i] = 1500
		default:
			f[i] = 50
		}
	}

	return f
}

// DefaultTree is the Tree built from DefaultFrequencies, shared by every
// Compress/Decompress call that doesn't supply its own Tree.
var DefaultTree = BuildTree(DefaultFrequencies)
