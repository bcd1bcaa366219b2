package conn

// Warning is a recoverable anomaly observed while feeding packets into a
// Conn: the offending unit is dropped and the connection stays alive
// (spec §7, "malformed structure").
type Warning struct {
	Kind WarningKind
}

type WarningKind int

const (
	// WarnSequenceGap: a vital chunk arrived ahead of the expected
	// sequence; a resend request will go out on the next send.
	WarnSequenceGap WarningKind = iota
	// WarnUnexpectedControl: a control byte arrived that doesn't apply to
	// the connection's current state (e.g. CONNECT_ACCEPT while Online).
	// Ignored, not fatal.
	WarnUnexpectedControl
)

func (k WarningKind) String() string {
	switch k {
	case WarnSequenceGap:
		return "vital sequence gap"
	case WarnUnexpectedControl:
		return "unexpected control in current state"
	default:
		return "unknown conn warning"
	}
}
