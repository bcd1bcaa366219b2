package conn

import (
	"time"

	"github.com/ddnet-go/twnet/packet"
	"github.com/ddnet-go/twnet/warn"
)

const (
	// KeepAliveInterval: send an empty packet if nothing else went out.
	KeepAliveInterval = 250 * time.Millisecond
	// ResendInterval: retransmit an unacked vital chunk after this long.
	ResendInterval = 1 * time.Second
	// TimeoutInterval: no received packet within this long disconnects.
	TimeoutInterval = 10 * time.Second

	// flushThreshold is the in-flight payload size past which a caller
	// should flush rather than keep accumulating chunks.
	flushThreshold = MaxBuildPayload
	// MaxBuildPayload bounds a single outgoing packet's chunk payload.
	MaxBuildPayload = packet.MaxPacketSize - 3 - 64
)

type resendEntry struct {
	seq    uint16
	data   []byte
	sentAt time.Time
}

// Conn is one peer's connection state machine: handshake, vital chunk
// sequencing and resend, keepalive and timeout. It has no notion of
// sockets or addresses; the owning multiplexer feeds it bytes and sends
// whatever byte slices it returns.
type Conn struct {
	state State

	outSeq uint16
	inSeq  uint16

	needResend bool
	resend     []resendEntry

	buildBuf    []byte
	buildChunks uint8

	lastSend time.Time
	lastRecv time.Time

	closeReason string
}

// New returns a fresh Unconnected Conn, for the client side of a
// connect().
func New() *Conn {
	return &Conn{}
}

// NewPending returns a Conn already in Pending, for the server side of an
// inbound CONNECT.
func NewPending(now time.Time) *Conn {
	return &Conn{state: Pending, lastRecv: now}
}

// State returns the connection's current state.
func (c *Conn) State() State { return c.state }

// CloseReason returns the reason recorded when the connection left
// Online, if any.
func (c *Conn) CloseReason() string { return c.closeReason }

func (c *Conn) ack() uint16 {
	return (c.inSeq + seqMask) & seqMask
}

// Connect starts the client-side handshake: Unconnected -> Connecting,
// returning the CONNECT control packet to send.
func (c *Conn) Connect(now time.Time) []byte {
	c.state = Connecting
	c.lastSend = now
	c.lastRecv = now

	out, _ := packet.Write(&packet.Packet{Kind: packet.KindControl, Control: packet.ControlConnect}, nil)

	return out
}

// Accept moves a Pending connection straight to Online and returns the
// CONNECT_ACCEPT control packet to send.
func (c *Conn) Accept(now time.Time) []byte {
	c.state = Online
	c.lastSend = now

	out, _ := packet.Write(&packet.Packet{Kind: packet.KindControl, Control: packet.ControlConnectAccept}, nil)

	return out
}

// Reject moves a Pending connection to Disconnected without ever reaching
// Online, returning a CLOSE control packet carrying reason.
func (c *Conn) Reject(reason string, now time.Time) []byte {
	c.state = Disconnected
	c.closeReason = reason

	return c.closePacket(reason)
}

func (c *Conn) closePacket(reason string) []byte {
	out, _ := packet.Write(&packet.Packet{
		Kind:        packet.KindControl,
		Control:     packet.ControlClose,
		CloseReason: []byte(reason),
	}, nil)

	return out
}

// Disconnect closes an Online (or Connecting/Pending) connection locally,
// best-effort notifying the peer with a single CLOSE packet.
func (c *Conn) Disconnect(reason string, now time.Time) []byte {
	if c.state == Disconnected {
		return nil
	}

	c.state = Disconnected
	c.closeReason = reason

	return c.closePacket(reason)
}

// FeedControl processes one received control packet, applying state
// transitions and returning any event worth surfacing plus a reply packet
// to send, if any.
func (c *Conn) FeedControl(ctrl packet.ControlType, reason []byte, now time.Time, sink warn.Sink[Warning]) (Event, []byte) {
	c.lastRecv = now

	switch c.state {
	case Unconnected:
		if ctrl == packet.ControlConnect {
			c.state = Pending

			return Event{Kind: EventConnectRequested}, nil
		}

	case Connecting:
		if ctrl == packet.ControlConnectAccept {
			c.state = Online
			c.lastSend = now

			out, _ := packet.Write(&packet.Packet{Kind: packet.KindControl, Control: packet.ControlAccept}, nil)

			return Event{Kind: EventReady}, out
		}

	case Pending:
		if ctrl == packet.ControlAccept {
			// The host has not called Accept() yet; the client's ACCEPT
			// needs no reply.
			return Event{}, nil
		}

	case Online:
		switch ctrl {
		case packet.ControlClose:
			c.state = Disconnected
			c.closeReason = string(reason)

			return Event{Kind: EventDisconnect, Reason: c.closeReason}, nil
		case packet.ControlAccept, packet.ControlKeepAlive:
			return Event{}, nil
		}
	}

	sink.Warn(Warning{Kind: WarnUnexpectedControl})

	return Event{}, nil
}

// FeedChunks decodes a connected packet's chunk stream, applies ack and
// resend-request processing, and returns the chunks that should be
// delivered to the application in order. Vital chunks out of the expected
// sequence are either silently dropped (duplicates) or reported via sink
// and excluded (gaps, which trigger a resend request on the next send).
func (c *Conn) FeedChunks(payload []byte, numChunks uint8, ack uint16, requestResend bool, now time.Time, sink warn.Sink[Warning]) ([]Chunk, error) {
	c.lastRecv = now
	c.applyAck(ack)

	if requestResend {
		for i := range c.resend {
			c.resend[i].sentAt = time.Time{}
		}
	}

	chunks, err := parseChunks(payload, numChunks)
	if err != nil {
		return nil, err
	}

	delivered := make([]Chunk, 0, len(chunks))

	for _, ch := range chunks {
		if !ch.Vital {
			delivered = append(delivered, ch)

			continue
		}

		switch {
		case ch.Seq == c.inSeq:
			delivered = append(delivered, ch)
			c.inSeq = (c.inSeq + 1) & seqMask
		case seqLess(ch.Seq, c.inSeq):
			// duplicate retransmit, already delivered
		default:
			c.needResend = true
			sink.Warn(Warning{Kind: WarnSequenceGap})
		}
	}

	return delivered, nil
}

func (c *Conn) applyAck(ack uint16) {
	kept := c.resend[:0]

	for _, e := range c.resend {
		if !seqLessEqual(e.seq, ack) {
			kept = append(kept, e)
		}
	}

	c.resend = kept
}

// Send appends one chunk to the in-flight outgoing packet. Vital chunks
// are assigned the next sequence number and queued for resend until
// acked.
func (c *Conn) Send(data []byte, vital bool) error {
	var seq uint16

	if vital {
		seq = c.outSeq
		c.outSeq = (c.outSeq + 1) & seqMask
	}

	buf, err := appendChunk(c.buildBuf, vital, false, seq, data)
	if err != nil {
		return err
	}

	c.buildBuf = buf
	c.buildChunks++

	if vital {
		stored := make([]byte, len(data))
		copy(stored, data)
		c.resend = append(c.resend, resendEntry{seq: seq, data: stored, sentAt: time.Time{}})
	}

	return nil
}

// NeedsFlush reports whether the in-flight packet has grown past the
// point a caller should flush rather than keep accumulating.
func (c *Conn) NeedsFlush() bool {
	return len(c.buildBuf) >= flushThreshold
}

// Flush finalizes the in-flight chunk packet, if any, returning the bytes
// to send. Returns nil if nothing is queued.
func (c *Conn) Flush(now time.Time) ([]byte, error) {
	if c.buildChunks == 0 {
		return nil, nil
	}

	requestResend := c.needResend
	c.needResend = false

	out, err := packet.Write(&packet.Packet{
		Kind:          packet.KindChunks,
		Ack:           c.ack(),
		NumChunks:     c.buildChunks,
		Payload:       c.buildBuf,
		RequestResend: requestResend,
	}, nil)
	if err != nil {
		return nil, err
	}

	// Entries queued by Send since the last Flush have a zero sentAt;
	// they've now actually gone out for the first time.
	for i := range c.resend {
		if c.resend[i].sentAt.IsZero() {
			c.resend[i].sentAt = now
		}
	}

	c.buildBuf = nil
	c.buildChunks = 0
	c.lastSend = now

	return out, nil
}

// Tick drives keepalive, resend and timeout timers, returning any packets
// that must be sent and an event if the connection timed out.
func (c *Conn) Tick(now time.Time) ([][]byte, Event) {
	if c.state != Online {
		return nil, Event{}
	}

	if now.Sub(c.lastRecv) >= TimeoutInterval {
		c.state = Disconnected
		c.closeReason = "timeout"

		return nil, Event{Kind: EventDisconnect, Reason: "timeout"}
	}

	var out [][]byte

	for i := range c.resend {
		e := &c.resend[i]
		if now.Sub(e.sentAt) < ResendInterval {
			continue
		}

		buf, err := appendChunk(nil, true, true, e.seq, e.data)
		if err != nil {
			continue
		}

		pkt, err := packet.Write(&packet.Packet{
			Kind:      packet.KindChunks,
			Ack:       c.ack(),
			NumChunks: 1,
			Payload:   buf,
		}, nil)
		if err != nil {
			continue
		}

		out = append(out, pkt)
		e.sentAt = now
		c.lastSend = now
	}

	if now.Sub(c.lastSend) >= KeepAliveInterval {
		pkt, _ := packet.Write(&packet.Packet{Kind: packet.KindChunks, Ack: c.ack()}, nil)
		out = append(out, pkt)
		c.lastSend = now
	}

	return out, Event{}
}

// NeedsTick returns the duration until Tick should next be called given
// the current time now, so a host loop can size its socket wait
// accordingly. A negative duration means no timer is pending.
func (c *Conn) NeedsTick(now time.Time) time.Duration {
	if c.state != Online {
		return -1
	}

	remaining := KeepAliveInterval - now.Sub(c.lastSend)
	if r := TimeoutInterval - now.Sub(c.lastRecv); r < remaining {
		remaining = r
	}

	for i := range c.resend {
		if r := ResendInterval - now.Sub(c.resend[i].sentAt); r < remaining {
			remaining = r
		}
	}

	if remaining < 0 {
		remaining = 0
	}

	return remaining
}
