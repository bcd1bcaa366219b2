package mapfile

import "github.com/ddnet-go/twnet/datafile"

// Reader is a thin typed view over a datafile.Reader whose items follow
// the map type registry.
type Reader struct {
	df *datafile.Reader
}

// NewReader wraps an already-opened datafile.Reader as a map.
func NewReader(df *datafile.Reader) *Reader {
	return &Reader{df: df}
}

// Infos returns every MAP_ITEMTYPE_INFO item that decodes successfully.
func (r *Reader) Infos() []Info {
	return decodeAll(r.df, ItemTypeInfo, DecodeInfo)
}

// Images returns every MAP_ITEMTYPE_IMAGE item that decodes successfully.
func (r *Reader) Images() []Image {
	return decodeAll(r.df, ItemTypeImage, DecodeImage)
}

// Envelopes returns every MAP_ITEMTYPE_ENVELOPE item that decodes
// successfully.
func (r *Reader) Envelopes() []Envelope {
	return decodeAll(r.df, ItemTypeEnvelope, DecodeEnvelope)
}

// Groups returns every MAP_ITEMTYPE_GROUP item that decodes successfully.
func (r *Reader) Groups() []Group {
	return decodeAll(r.df, ItemTypeGroup, DecodeGroup)
}

// DdraceSounds returns every MAP_ITEMTYPE_DDRACE_SOUND item that decodes
// successfully.
func (r *Reader) DdraceSounds() []DdraceSound {
	return decodeAll(r.df, ItemTypeSound, DecodeDdraceSound)
}

// Envpoints returns the keyframes of every MAP_ITEMTYPE_ENVPOINT item,
// concatenated in item order.
func (r *Reader) Envpoints() []Envpoint {
	start, num := r.df.ItemTypeItems(ItemTypeEnvpoint)

	var out []Envpoint

	for i := start; i < start+num; i++ {
		out = append(out, DecodeEnvpoints(r.df.Item(i).Data)...)
	}

	return out
}

func decodeAll[T any](df *datafile.Reader, typeID uint16, decode func([]int32) (T, bool)) []T {
	start, num := df.ItemTypeItems(typeID)

	var out []T

	for i := start; i < start+num; i++ {
		if v, ok := decode(df.Item(i).Data); ok {
			out = append(out, v)
		}
	}

	return out
}
