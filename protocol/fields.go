package protocol

import (
	"fmt"
	"strconv"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// varintAdapter lets a protocol.Warning sink stand in wherever a
// varint.Warning sink is expected, wrapping each varint-level warning.
type varintAdapter struct{ sink warn.Sink[Warning] }

func (a varintAdapter) Warn(w varint.Warning) {
	a.sink.Warn(Warning{Kind: WarnVarint, Varint: w})
}

func wrapVarintSink(sink warn.Sink[Warning]) warn.Sink[varint.Warning] {
	return varintAdapter{sink: sink}
}

// Tick is a simulation tick number, wire-encoded as a plain Int32.
type Tick int32

// DecodeInt32Range decodes a varint and clamps it into [min, max],
// warning WarnOutOfRange if clamping was necessary.
func DecodeInt32Range(u *varint.Unpacker, sink warn.Sink[Warning], min, max int32) (int32, error) {
	v, err := u.NextInt32(wrapVarintSink(sink))
	if err != nil {
		return 0, err
	}

	if v < min {
		sink.Warn(Warning{Kind: WarnOutOfRange})

		return min, nil
	}
	if v > max {
		sink.Warn(Warning{Kind: WarnOutOfRange})

		return max, nil
	}

	return v, nil
}

// EncodeInt32 writes v verbatim; the caller is responsible for it being
// in range (spec §4.F, "Encoding... range-check aborts by contract").
func EncodeInt32(p *varint.Packer, v int32) error {
	return p.AddInt32(v)
}

func DecodeBoolean(u *varint.Unpacker, sink warn.Sink[Warning]) (bool, error) {
	v, err := u.NextInt32(wrapVarintSink(sink))
	if err != nil {
		return false, err
	}

	if v != 0 && v != 1 {
		sink.Warn(Warning{Kind: WarnOutOfRange})

		return true, nil
	}

	return v == 1, nil
}

func EncodeBoolean(p *varint.Packer, v bool) error {
	if v {
		return p.AddInt32(1)
	}

	return p.AddInt32(0)
}

func DecodeUint8(u *varint.Unpacker, sink warn.Sink[Warning]) (uint8, error) {
	v, err := DecodeInt32Range(u, sink, 0, 255)

	return uint8(v), err
}

func EncodeUint8(p *varint.Packer, v uint8) error {
	return p.AddInt32(int32(v))
}

// DecodeBEUint16 reads 2 raw big-endian bytes (no varint framing).
func DecodeBEUint16(u *varint.Unpacker) (uint16, error) {
	raw, err := u.NextRaw(2)
	if err != nil {
		return 0, err
	}

	return uint16(raw[0])<<8 | uint16(raw[1]), nil
}

func EncodeBEUint16(p *varint.Packer, v uint16) error {
	return p.AddRaw([]byte{byte(v >> 8), byte(v)})
}

func DecodeTick(u *varint.Unpacker, sink warn.Sink[Warning]) (Tick, error) {
	v, err := u.NextInt32(wrapVarintSink(sink))

	return Tick(v), err
}

func EncodeTick(p *varint.Packer, t Tick) error {
	return p.AddInt32(int32(t))
}

// DecodeString decodes a NUL-terminated string field, warning
// WarnControlChars (not rejecting) if disallowControlChars is set and a
// control character other than tab appears.
func DecodeString(u *varint.Unpacker, disallowControlChars bool, sink warn.Sink[Warning]) (string, error) {
	b, err := u.NextString()
	if err != nil {
		return "", err
	}

	if disallowControlChars {
		for _, c := range b {
			if c < 0x20 && c != '\t' {
				sink.Warn(Warning{Kind: WarnControlChars})

				break
			}
		}
	}

	return string(b), nil
}

func EncodeString(p *varint.Packer, s string) error {
	return p.AddString(s)
}

func DecodeData(u *varint.Unpacker, sink warn.Sink[Warning]) ([]byte, error) {
	return u.NextData(wrapVarintSink(sink))
}

func EncodeData(p *varint.Packer, data []byte) error {
	return p.AddData(data)
}

// DecodeOptional runs decode only if bytes remain, reporting absence
// (rather than an error) when the buffer has already ended — spec §9:
// "optional trailing fields [detected] by end-of-buffer mid-decode".
func DecodeOptional[T any](u *varint.Unpacker, decode func(*varint.Unpacker) (T, error)) (T, bool, error) {
	var zero T

	if u.Done() {
		return zero, false, nil
	}

	v, err := decode(u)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

// DecodeArray decodes exactly n elements with decode.
func DecodeArray[T any](u *varint.Unpacker, n int, decode func(*varint.Unpacker) (T, error)) ([]T, error) {
	out := make([]T, n)

	for i := 0; i < n; i++ {
		v, err := decode(u)
		if err != nil {
			return nil, fmt.Errorf("protocol: array[%d]: %w", i, err)
		}

		out[i] = v
	}

	return out, nil
}

func EncodeArray[T any](p *varint.Packer, values []T, encode func(*varint.Packer, T) error) error {
	for i, v := range values {
		if err := encode(p, v); err != nil {
			return fmt.Errorf("protocol: array[%d]: %w", i, err)
		}
	}

	return nil
}

func DecodeUUID(u *varint.Unpacker) ([16]byte, error) {
	var out [16]byte

	raw, err := u.NextRaw(16)
	if err != nil {
		return out, err
	}

	copy(out[:], raw)

	return out, nil
}

func EncodeUUID(p *varint.Packer, v [16]byte) error {
	return p.AddRaw(v[:])
}

func DecodeSHA256(u *varint.Unpacker) ([32]byte, error) {
	var out [32]byte

	raw, err := u.NextRaw(32)
	if err != nil {
		return out, err
	}

	copy(out[:], raw)

	return out, nil
}

func EncodeSHA256(p *varint.Packer, v [32]byte) error {
	return p.AddRaw(v[:])
}

// DecodeTuneParam decodes a fixed-point tuning constant, wire value *100.
func DecodeTuneParam(u *varint.Unpacker, sink warn.Sink[Warning]) (float64, error) {
	v, err := u.NextInt32(wrapVarintSink(sink))

	return float64(v) / 100.0, err
}

func EncodeTuneParam(p *varint.Packer, v float64) error {
	return p.AddInt32(int32(v * 100))
}

// DecodeInt32String decodes an ASCII-decimal integer carried inside a
// string field, as used by the legacy server-info protocol.
func DecodeInt32String(u *varint.Unpacker) (int32, error) {
	b, err := u.NextString()
	if err != nil {
		return 0, err
	}

	n, convErr := strconv.ParseInt(string(b), 10, 32)
	if convErr != nil {
		return 0, fmt.Errorf("protocol: int32 string %q: %w", b, errs.ErrMalformedPacket)
	}

	return int32(n), nil
}

func EncodeInt32String(p *varint.Packer, v int32) error {
	return p.AddString(strconv.FormatInt(int64(v), 10))
}

// DecodeEnum decodes an Int32 and clamps it to [0, numValues), warning
// WarnOutOfRange (and returning 0) when it falls outside.
func DecodeEnum[T ~int32](u *varint.Unpacker, sink warn.Sink[Warning], numValues int32) (T, error) {
	v, err := u.NextInt32(wrapVarintSink(sink))
	if err != nil {
		return 0, err
	}

	if v < 0 || v >= numValues {
		sink.Warn(Warning{Kind: WarnOutOfRange})

		return 0, nil
	}

	return T(v), nil
}

func EncodeEnum[T ~int32](p *varint.Packer, v T) error {
	return p.AddInt32(int32(v))
}
