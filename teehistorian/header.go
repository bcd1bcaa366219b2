package teehistorian

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ddnet-go/twnet/errs"
)

// Magic is the fixed signature that opens every teehistorian file: the
// literal string "TEEHISTORIAN" followed by a NUL byte.
var Magic = []byte("TEEHISTORIAN\x00")

// Header is the JSON object following Magic.
type Header struct {
	Version   string          `json:"version"`
	GameUUID  string          `json:"game_uuid,omitempty"`
	Server    string          `json:"server,omitempty"`
	StartTime string          `json:"start_time,omitempty"`
	MapName   string          `json:"map_name,omitempty"`
	MapSize   int64           `json:"map_size,omitempty"`
	MapCrc    uint32          `json:"map_crc,omitempty"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// ReadHeader parses Magic and the JSON header object from the start of
// buf, returning the number of bytes consumed.
func ReadHeader(buf []byte) (Header, int, error) {
	if len(buf) < len(Magic) || !bytes.Equal(buf[:len(Magic)], Magic) {
		return Header{}, 0, fmt.Errorf("teehistorian: header: %w: bad magic", errs.ErrInvalidHeader)
	}

	dec := json.NewDecoder(bytes.NewReader(buf[len(Magic):]))

	var h Header
	if err := dec.Decode(&h); err != nil {
		return Header{}, 0, fmt.Errorf("teehistorian: header: %w: %v", errs.ErrInvalidHeader, err)
	}

	return h, len(Magic) + int(dec.InputOffset()), nil
}

// WriteHeader serializes Magic followed by h as a single-line JSON object.
func WriteHeader(h Header) ([]byte, error) {
	body, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("teehistorian: header: %w", err)
	}

	out := make([]byte, 0, len(Magic)+len(body))
	out = append(out, Magic...)
	out = append(out, body...)

	return out, nil
}
