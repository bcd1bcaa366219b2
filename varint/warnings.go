package varint

// Warning is the set of non-fatal conditions a Packer/Unpacker can observe
// while decoding. Decoders report these through a warn.Sink[Warning]
// instead of failing the decode outright (spec §4.A, §7).
type Warning struct {
	// Kind identifies which recoverable condition was observed.
	Kind WarningKind
	// Offset is the byte offset within the decoded buffer where the
	// condition was observed.
	Offset int
}

// WarningKind enumerates the recoverable varint/string/data decode
// anomalies.
type WarningKind int

const (
	// OverlongIntEncoding: a continuation byte's value bits were all zero,
	// but ending the encoding one byte earlier would have represented the
	// same value.
	OverlongIntEncoding WarningKind = iota
	// NonZeroPadding: the fifth int32 byte had non-zero bits outside the
	// 32-bit value range.
	NonZeroPadding
	// ExcessData: bytes remained in the buffer after Finish was called.
	ExcessData
)

func (k WarningKind) String() string {
	switch k {
	case OverlongIntEncoding:
		return "overlong int encoding"
	case NonZeroPadding:
		return "non-zero padding bits"
	case ExcessData:
		return "excess data"
	default:
		return "unknown varint warning"
	}
}
