// Package packet implements the outermost wire framing of the Teeworlds/
// DDNet transport (spec §4.C): the 3-byte connected-packet header, the
// 6-byte connectionless sentinel, optional Huffman compression of a
// connected packet's payload, and control-packet framing (keepalive,
// connect handshake, close).
//
// Packet itself carries no reliability logic; sequencing, acks and resend
// are the connection state machine's job (package conn).
package packet
