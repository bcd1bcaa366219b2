// Package netmux multiplexes many conn.Conn state machines behind one
// address-keyed peer table (spec §4.E). It owns no socket: a Callback
// supplies send(addr, bytes) and the current time, so the whole stack can
// be driven hermetically in tests with a fake network.
package netmux
