package serverbrowse

import (
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// decodeEmpty checks for (and warns about) trailing bytes on a
// zero-field message, then returns the zero value V.
func decodeEmpty[V any](u *varint.Unpacker, sink warn.Sink[varint.Warning]) V {
	u.Finish(sink)

	var v V

	return v
}

func DecodeRequestList(u *varint.Unpacker, sink warn.Sink[varint.Warning]) RequestList {
	return decodeEmpty[RequestList](u, sink)
}

func DecodeRequestCount(u *varint.Unpacker, sink warn.Sink[varint.Warning]) RequestCount {
	return decodeEmpty[RequestCount](u, sink)
}

func DecodeForwardCheck(u *varint.Unpacker, sink warn.Sink[varint.Warning]) ForwardCheck {
	return decodeEmpty[ForwardCheck](u, sink)
}

func DecodeForwardResponse(u *varint.Unpacker, sink warn.Sink[varint.Warning]) ForwardResponse {
	return decodeEmpty[ForwardResponse](u, sink)
}

func DecodeForwardOk(u *varint.Unpacker, sink warn.Sink[varint.Warning]) ForwardOk {
	return decodeEmpty[ForwardOk](u, sink)
}

func DecodeForwardError(u *varint.Unpacker, sink warn.Sink[varint.Warning]) ForwardError {
	return decodeEmpty[ForwardError](u, sink)
}
