package protocol

import "github.com/ddnet-go/twnet/varint"

// WarningKind enumerates the recoverable message-decode anomalies (spec
// §7, "message decoding error").
type WarningKind int

const (
	// WarnVarint wraps a warning surfaced by the underlying varint layer.
	WarnVarint WarningKind = iota
	// WarnOutOfRange: an Int32/Boolean/Uint8/enum field decoded outside
	// its declared range; the value was clamped (Boolean reads as true,
	// an enum falls back to 0).
	WarnOutOfRange
	// WarnControlChars: a string field disallowing control characters
	// contained one.
	WarnControlChars
	// WarnExcessData: bytes remained after decoding every declared field.
	WarnExcessData
	// WarnUnknownMessageID: the raw_id didn't match any known message.
	WarnUnknownMessageID
)

func (k WarningKind) String() string {
	switch k {
	case WarnVarint:
		return "varint warning"
	case WarnOutOfRange:
		return "field out of range"
	case WarnControlChars:
		return "control characters in string"
	case WarnExcessData:
		return "excess data after message"
	case WarnUnknownMessageID:
		return "unknown message id"
	default:
		return "unknown protocol warning"
	}
}

// Warning is the single warning type every field decoder reports through.
type Warning struct {
	Kind   WarningKind
	Varint varint.Warning // meaningful when Kind == WarnVarint
}
