package huffman

// Compress encodes data against the default tree, terminated by the EOF
// symbol, without the trailing-byte quirk.
func Compress(data []byte) []byte {
	return DefaultTree.Compress(data)
}

// CompressBug encodes data like Compress but always appends one trailing
// byte, even when the bitstream already ends on a byte boundary. This
// matches the wire behavior other Teeworlds/DDNet implementations expect.
func CompressBug(data []byte) []byte {
	return DefaultTree.CompressBug(data)
}

// Decompress decodes data against the default tree, stopping at EOF.
func Decompress(data []byte) []byte {
	return DefaultTree.Decompress(data)
}

// Compress encodes data using t, terminated by the EOF symbol. The
// returned slice omits the trailing byte when the bitstream ends exactly
// on a byte boundary.
func (t *Tree) Compress(data []byte) []byte {
	return t.compress(data, false)
}

// CompressBug behaves like Compress but always appends a final byte, even
// when none of its bits are meaningful. Some Teeworlds/DDNet peers expect
// this extra byte and will misparse a stream that omits it.
func (t *Tree) CompressBug(data []byte) []byte {
	return t.compress(data, true)
}

func (t *Tree) compress(data []byte, bug bool) []byte {
	out := make([]byte, 0, len(data)+1)

	var cur byte
	var curBits uint8

	emit := func(c symbolCode) {
		bits := c.bits
		remaining := c.numBits

		for remaining > 0 {
			space := 8 - curBits
			take := remaining
			if take > space {
				take = space
			}

			cur |= byte(bits&((1<<take)-1)) << curBits
			bits >>= take
			curBits += take
			remaining -= take

			if curBits == 8 {
				out = append(out, cur)
				cur = 0
				curBits = 0
			}
		}
	}

	for _, b := range data {
		emit(t.codes[b])
	}
	emit(t.codes[eofSymbol])

	if curBits > 0 || bug {
		out = append(out, cur)
	}

	return out
}

// Decompress decodes a stream produced by Compress or CompressBug,
// stopping as soon as the EOF symbol is read. Trailing bytes beyond EOF,
// including the CompressBug padding byte, are ignored. A stream that runs
// out of input before EOF is reached yields whatever was decoded so far;
// it is never treated as fatal.
func (t *Tree) Decompress(data []byte) []byte {
	out := make([]byte, 0, len(data)*2)

	cur := t.rootRef

	for _, b := range data {
		for bit := 0; bit < 8; bit++ {
			sel := int32(b & 1)
			b >>= 1

			node := t.internal[cur-numSymbols]
			next := node.children[sel]

			if next == eofSymbol {
				return out
			}

			if next < numSymbols {
				out = append(out, byte(next))
				cur = t.rootRef
			} else {
				cur = next
			}
		}
	}

	return out
}
