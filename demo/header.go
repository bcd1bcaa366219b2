package demo

import (
	"fmt"

	"github.com/ddnet-go/twnet/endian"
	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/warn"
)

var be = endian.GetBigEndianEngine()

// Magic is the 7-byte demo file signature, followed immediately by a
// one-byte version.
var Magic = [7]byte{'T', 'W', 'D', 'E', 'M', 'O', 0}

// Version identifies a demo file's chunk-stream bit layout.
type Version uint8

const (
	Version3 Version = 3
	Version4 Version = 4
	Version5 Version = 5
)

func (v Version) valid() bool { return v == Version3 || v == Version4 || v == Version5 }

// Warning is the set of non-fatal conditions the demo reader can observe.
type Warning struct {
	Kind WarningKind
}

type WarningKind int

const (
	WarnWeirdNetVersion WarningKind = iota
	WarnWeirdMapName
	WarnWeirdType
	WarnWeirdTimestamp
	WarnInvalidTimelineMarkerCount
	WarnNonIncreasingTimelineMarkers
	WarnWeirdTimelineMarkerPadding
	WarnNonZeroTickmarkerPadding
	WarnNonAbsoluteTickMarkerTick
	WarnOverlongChunkSizeEncoding
	WarnUnknownChunkType
	WarnNonIncreasingTick
)

const (
	netVersionFieldLen = 64
	mapNameFieldLen    = 64
	typeFieldLen       = 8
	timestampFieldLen  = 20
	maxTimelineMarkers = 64
)

// headerFixedSize is the packed size of the metadata header that follows
// the magic+version preamble: net_version[64] + map_name[64] + map_size(4)
// + map_crc(4) + type[8] + length(4) + timestamp[20].
const headerFixedSize = netVersionFieldLen + mapNameFieldLen + 4 + 4 + typeFieldLen + 4 + timestampFieldLen

// timelineMarkersSize is the packed size of the timeline marker table:
// num_timeline_markers(4) + timeline_markers[64](4 each).
const timelineMarkersSize = 4 + maxTimelineMarkers*4

// Header is the demo file's fixed metadata block.
type Header struct {
	Version        Version
	NetVersion     string
	MapName        string
	MapSize        uint32
	MapCrc         uint32
	Type           string
	Length         uint32
	Timestamp      string
	TimelineMarkers []int32
}

func fixedString(buf []byte, warnKind WarningKind, sink warn.Sink[Warning]) string {
	i := 0
	for ; i < len(buf); i++ {
		if buf[i] == 0 {
			break
		}
	}

	for _, b := range buf[i:] {
		if b != 0 {
			sink.Warn(Warning{Kind: warnKind})

			break
		}
	}

	return string(buf[:i])
}

func putFixedString(buf []byte, s string) {
	n := copy(buf, s)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
}

// ReadHeader parses the magic, version, metadata header and timeline
// marker table from the start of buf, returning the number of bytes
// consumed.
func ReadHeader(buf []byte, sink warn.Sink[Warning]) (Header, int, error) {
	if len(buf) < 8 {
		return Header{}, 0, fmt.Errorf("demo: header: %w", errs.ErrUnexpectedEnd)
	}

	var magic [7]byte
	copy(magic[:], buf[0:7])

	if magic != Magic {
		return Header{}, 0, fmt.Errorf("demo: header: %w: bad magic", errs.ErrInvalidHeader)
	}

	version := Version(buf[7])
	if !version.valid() {
		return Header{}, 0, fmt.Errorf("demo: header: %w: version %d not in {3,4,5}", errs.ErrInvalidHeader, version)
	}

	off := 8
	if len(buf) < off+headerFixedSize {
		return Header{}, 0, fmt.Errorf("demo: header: %w", errs.ErrUnexpectedEnd)
	}

	h := Header{Version: version}

	h.NetVersion = fixedString(buf[off:off+netVersionFieldLen], WarnWeirdNetVersion, sink)
	off += netVersionFieldLen

	h.MapName = fixedString(buf[off:off+mapNameFieldLen], WarnWeirdMapName, sink)
	off += mapNameFieldLen

	mapSize := int32(be.Uint32(buf[off : off+4]))
	if mapSize < 0 {
		return Header{}, 0, fmt.Errorf("demo: header: %w: negative map_size", errs.ErrInvalidHeader)
	}

	h.MapSize = uint32(mapSize)
	off += 4

	h.MapCrc = be.Uint32(buf[off : off+4])
	off += 4

	h.Type = fixedString(buf[off:off+typeFieldLen], WarnWeirdType, sink)
	off += typeFieldLen

	length := int32(be.Uint32(buf[off : off+4]))
	if length < 0 {
		return Header{}, 0, fmt.Errorf("demo: header: %w: negative length", errs.ErrInvalidHeader)
	}

	h.Length = uint32(length)
	off += 4

	h.Timestamp = fixedString(buf[off:off+timestampFieldLen], WarnWeirdTimestamp, sink)
	off += timestampFieldLen

	if len(buf) < off+timelineMarkersSize {
		return Header{}, 0, fmt.Errorf("demo: timeline markers: %w", errs.ErrUnexpectedEnd)
	}

	num := int32(be.Uint32(buf[off : off+4]))
	if num < 0 || int(num) > maxTimelineMarkers {
		return Header{}, 0, fmt.Errorf("demo: timeline markers: %w: invalid count", errs.ErrInvalidHeader)
	}

	rawMarkers := buf[off+4 : off+timelineMarkersSize]
	off += timelineMarkersSize

	markers := make([]int32, num)

	var previous int32

	nonincreasing := false

	for i := int32(0); i < maxTimelineMarkers; i++ {
		v := int32(be.Uint32(rawMarkers[i*4 : i*4+4]))
		if i < num {
			if i > 0 && !nonincreasing && previous >= v {
				nonincreasing = true
				sink.Warn(Warning{Kind: WarnNonIncreasingTimelineMarkers})
			}

			previous = v
			markers[i] = v
		} else if v != 0 {
			sink.Warn(Warning{Kind: WarnWeirdTimelineMarkerPadding})

			break
		}
	}

	h.TimelineMarkers = markers

	return h, off, nil
}

// WriteHeader serializes h as the magic, version, metadata header and
// timeline marker table.
func WriteHeader(h Header) []byte {
	out := make([]byte, 8+headerFixedSize+timelineMarkersSize)
	copy(out[0:7], Magic[:])
	out[7] = byte(h.Version)

	off := 8

	putFixedString(out[off:off+netVersionFieldLen], h.NetVersion)
	off += netVersionFieldLen

	putFixedString(out[off:off+mapNameFieldLen], h.MapName)
	off += mapNameFieldLen

	be.PutUint32(out[off:off+4], h.MapSize)
	off += 4

	be.PutUint32(out[off:off+4], h.MapCrc)
	off += 4

	putFixedString(out[off:off+typeFieldLen], h.Type)
	off += typeFieldLen

	be.PutUint32(out[off:off+4], h.Length)
	off += 4

	putFixedString(out[off:off+timestampFieldLen], h.Timestamp)
	off += timestampFieldLen

	be.PutUint32(out[off:off+4], uint32(len(h.TimelineMarkers)))
	off += 4

	for i := 0; i < maxTimelineMarkers; i++ {
		var v int32
		if i < len(h.TimelineMarkers) {
			v = h.TimelineMarkers[i]
		}

		be.PutUint32(out[off+i*4:off+i*4+4], uint32(v))
	}

	return out
}
