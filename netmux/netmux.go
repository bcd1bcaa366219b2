package netmux

import (
	"time"

	"github.com/ddnet-go/twnet/conn"
	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/packet"
	"github.com/ddnet-go/twnet/warn"
)

// PeerID is a stable, dense handle to one connection, valid from the
// Connect event until the matching Disconnect.
type PeerID uint32

// Callback is the multiplexer's sole dependency on the outside world.
type Callback interface {
	Send(addr string, data []byte) error
	Time() time.Time
}

// EventKind enumerates what Feed and Tick can report.
type EventKind int

const (
	EventChunk EventKind = iota
	EventConnect
	EventReady
	EventDisconnect
	EventConnless
)

// Event is one unit of application-visible activity produced by Feed or
// Tick.
type Event struct {
	Kind   EventKind
	Peer   PeerID
	Addr   string
	Vital  bool
	Data   []byte
	Reason string
}

type peerEntry struct {
	addr string
	conn *conn.Conn
}

// Net owns the peer table for one socket's worth of traffic, either
// client (does not accept unsolicited CONNECTs) or server (does).
type Net struct {
	cb     Callback
	server bool

	peers  map[PeerID]*peerEntry
	byAddr map[string]PeerID
	nextID PeerID
}

// New returns an empty Net. server selects whether inbound CONNECTs from
// unknown addresses are accepted as new Pending peers.
func New(cb Callback, server bool) *Net {
	return &Net{
		cb:     cb,
		server: server,
		peers:  make(map[PeerID]*peerEntry),
		byAddr: make(map[string]PeerID),
	}
}

func (n *Net) allocPeer(addr string, c *conn.Conn) PeerID {
	id := n.nextID
	n.nextID++
	n.peers[id] = &peerEntry{addr: addr, conn: c}
	n.byAddr[addr] = id

	return id
}

func (n *Net) forget(id PeerID, addr string) {
	delete(n.peers, id)
	delete(n.byAddr, addr)
}

// Connect allocates a PeerID and starts the client-side handshake to
// addr.
func (n *Net) Connect(addr string) PeerID {
	c := conn.New()
	out := c.Connect(n.cb.Time())
	id := n.allocPeer(addr, c)
	n.cb.Send(addr, out) //nolint:errcheck

	return id
}

// Accept completes the server-side handshake for a Pending peer produced
// by a Connect event.
func (n *Net) Accept(id PeerID) error {
	pe, ok := n.peers[id]
	if !ok {
		return errs.ErrPeerNotFound
	}

	out := pe.conn.Accept(n.cb.Time())

	return n.cb.Send(pe.addr, out)
}

// Reject declines a Pending peer produced by a Connect event.
func (n *Net) Reject(id PeerID, reason string) error {
	pe, ok := n.peers[id]
	if !ok {
		return errs.ErrPeerNotFound
	}

	out := pe.conn.Reject(reason, n.cb.Time())
	n.forget(id, pe.addr)

	return n.cb.Send(pe.addr, out)
}

// Send queues one chunk for peer id, to be written out on the next Flush.
func (n *Net) Send(id PeerID, data []byte, vital bool) error {
	pe, ok := n.peers[id]
	if !ok {
		return errs.ErrPeerNotFound
	}

	return pe.conn.Send(data, vital)
}

// Flush writes out id's in-flight packet, if any.
func (n *Net) Flush(id PeerID) error {
	pe, ok := n.peers[id]
	if !ok {
		return errs.ErrPeerNotFound
	}

	out, err := pe.conn.Flush(n.cb.Time())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	return n.cb.Send(pe.addr, out)
}

// Disconnect closes peer id locally, best-effort notifying the peer.
func (n *Net) Disconnect(id PeerID, reason string) error {
	pe, ok := n.peers[id]
	if !ok {
		return errs.ErrPeerNotFound
	}

	out := pe.conn.Disconnect(reason, n.cb.Time())
	n.forget(id, pe.addr)

	if out == nil {
		return nil
	}

	return n.cb.Send(pe.addr, out)
}

// State returns the current connection state of peer id.
func (n *Net) State(id PeerID) (conn.State, bool) {
	pe, ok := n.peers[id]
	if !ok {
		return conn.Unconnected, false
	}

	return pe.conn.State(), true
}

// Feed processes one received datagram from addr, returning the events it
// produced (zero or more). Malformed packets are reported as an error and
// otherwise dropped, per spec §7: the peer, if any, stays connected.
func (n *Net) Feed(addr string, data []byte, sink warn.Sink[conn.Warning]) ([]Event, error) {
	p, err := packet.Read(data)
	if err != nil {
		return nil, err
	}

	if p.Kind == packet.KindConnless {
		id, _ := n.byAddr[addr]

		return []Event{{Kind: EventConnless, Addr: addr, Peer: id, Data: p.Connless}}, nil
	}

	id, known := n.byAddr[addr]
	if !known {
		if n.server && p.Kind == packet.KindControl && p.Control == packet.ControlConnect {
			c := conn.NewPending(n.cb.Time())
			id = n.allocPeer(addr, c)

			return []Event{{Kind: EventConnect, Peer: id, Addr: addr}}, nil
		}

		return nil, nil
	}

	pe := n.peers[id]

	if p.Kind == packet.KindControl {
		ev, out := pe.conn.FeedControl(p.Control, p.CloseReason, n.cb.Time(), sink)
		if out != nil {
			n.cb.Send(addr, out) //nolint:errcheck
		}

		switch ev.Kind {
		case conn.EventReady:
			return []Event{{Kind: EventReady, Peer: id}}, nil
		case conn.EventDisconnect:
			n.forget(id, addr)

			return []Event{{Kind: EventDisconnect, Peer: id, Reason: ev.Reason}}, nil
		default:
			return nil, nil
		}
	}

	chunks, err := pe.conn.FeedChunks(p.Payload, p.NumChunks, p.Ack, p.RequestResend, n.cb.Time(), sink)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(chunks))
	for _, ch := range chunks {
		events = append(events, Event{Kind: EventChunk, Peer: id, Vital: ch.Vital, Data: ch.Data})
	}

	return events, nil
}

// Tick drives every peer's timers, sending keepalive/resend traffic and
// reporting any timeouts as Disconnect events.
func (n *Net) Tick() []Event {
	now := n.cb.Time()

	var events []Event

	for id, pe := range n.peers {
		packets, ev := pe.conn.Tick(now)
		for _, pkt := range packets {
			n.cb.Send(pe.addr, pkt) //nolint:errcheck
		}

		if ev.Kind == conn.EventDisconnect {
			events = append(events, Event{Kind: EventDisconnect, Peer: id, Reason: ev.Reason})
			n.forget(id, pe.addr)
		}
	}

	return events
}
