package mapfile

// Every map item's i32 payload begins with a version word at index 0; the
// fields introduced by each successive version are appended after the
// ones before it, so a reader need only check len(data) and the version
// word to know which fields are present.

// Info is the MAP_ITEMTYPE_INFO item (version 1).
type Info struct {
	Version     int32
	Author      int32 // index into the map's string data section, or -1
	MapVersion  int32
	Credits     int32
	License     int32
}

// DecodeInfo reads an Info item. ok is false if data is too short to
// carry even the base version-1 fields.
func DecodeInfo(data []int32) (Info, bool) {
	if len(data) < 5 {
		return Info{}, false
	}

	return Info{
		Version:    data[0],
		Author:     data[1],
		MapVersion: data[2],
		Credits:    data[3],
		License:    data[4],
	}, true
}

// Image is the MAP_ITEMTYPE_IMAGE item (version 1, +format in version 2).
type Image struct {
	Version  int32
	Width    int32
	Height   int32
	External int32
	Name     int32
	Data     int32
	Format   int32 // version >= 2 only; 0 if absent
	HasFormat bool
}

// DecodeImage reads an Image item.
func DecodeImage(data []int32) (Image, bool) {
	if len(data) < 6 {
		return Image{}, false
	}

	img := Image{
		Version:  data[0],
		Width:    data[1],
		Height:   data[2],
		External: data[3],
		Name:     data[4],
		Data:     data[5],
	}

	if img.Version >= 2 && len(data) >= 7 {
		img.Format = data[6]
		img.HasFormat = true
	}

	return img, true
}

// Envelope is the MAP_ITEMTYPE_ENVELOPE item (version 1, +synchronized in
// version 2).
type Envelope struct {
	Version       int32
	Channels      int32
	StartPoints   int32
	NumPoints     int32
	Name          [8]int32
	Synchronized  int32
	HasSync       bool
}

// DecodeEnvelope reads an Envelope item.
func DecodeEnvelope(data []int32) (Envelope, bool) {
	if len(data) < 12 {
		return Envelope{}, false
	}

	e := Envelope{
		Version:     data[0],
		Channels:    data[1],
		StartPoints: data[2],
		NumPoints:   data[3],
	}
	copy(e.Name[:], data[4:12])

	if e.Version >= 2 && len(data) >= 13 {
		e.Synchronized = data[12]
		e.HasSync = true
	}

	return e, true
}

// Group is the MAP_ITEMTYPE_GROUP item (version 1, +clipping in version
// 2, +name in version 3).
type Group struct {
	Version     int32
	OffsetX     int32
	OffsetY     int32
	ParallaxX   int32
	ParallaxY   int32
	StartLayer  int32
	NumLayers   int32
	UseClipping int32
	ClipX       int32
	ClipY       int32
	ClipW       int32
	ClipH       int32
	HasClipping bool
	Name        [3]int32
	HasName     bool
}

// DecodeGroup reads a Group item.
func DecodeGroup(data []int32) (Group, bool) {
	if len(data) < 7 {
		return Group{}, false
	}

	g := Group{
		Version:    data[0],
		OffsetX:    data[1],
		OffsetY:    data[2],
		ParallaxX:  data[3],
		ParallaxY:  data[4],
		StartLayer: data[5],
		NumLayers:  data[6],
	}

	if g.Version >= 2 && len(data) >= 12 {
		g.UseClipping = data[7]
		g.ClipX = data[8]
		g.ClipY = data[9]
		g.ClipW = data[10]
		g.ClipH = data[11]
		g.HasClipping = true
	}

	if g.Version >= 3 && len(data) >= 15 {
		copy(g.Name[:], data[12:15])
		g.HasName = true
	}

	return g, true
}

// LayerCommon is the header shared by every layer kind: a version word
// (ignored for compatibility, per the reference reader), a type
// discriminator and flag bits.
type LayerCommon struct {
	Type  int32
	Flags int32
}

// DecodeLayerCommon reads the three-word layer header (version, type,
// flags) that precedes every layer's type-specific payload.
func DecodeLayerCommon(data []int32) (LayerCommon, []int32, bool) {
	if len(data) < 3 {
		return LayerCommon{}, nil, false
	}

	return LayerCommon{Type: data[1], Flags: data[2]}, data[3:], true
}

// LayerTilemap is a MAP_ITEMTYPE_LAYER_V1_TILEMAP item (version 2 base,
// +name in version 3).
type LayerTilemap struct {
	Width          int32
	Height         int32
	Flags          int32
	ColorRed       int32
	ColorGreen     int32
	ColorBlue      int32
	ColorAlpha     int32
	ColorEnv       int32
	ColorEnvOffset int32
	Image          int32
	Data           int32
	Name           [3]int32
	HasName        bool
}

// DecodeLayerTilemap reads a tile layer's subtype payload (the slice
// returned by DecodeLayerCommon, i.e. with the version word still at
// index 0).
func DecodeLayerTilemap(rest []int32) (LayerTilemap, bool) {
	if len(rest) < 12 {
		return LayerTilemap{}, false
	}

	version := rest[0]

	t := LayerTilemap{
		Width:          rest[1],
		Height:         rest[2],
		Flags:          rest[3],
		ColorRed:       rest[4],
		ColorGreen:     rest[5],
		ColorBlue:      rest[6],
		ColorAlpha:     rest[7],
		ColorEnv:       rest[8],
		ColorEnvOffset: rest[9],
		Image:          rest[10],
		Data:           rest[11],
	}

	if version >= 3 && len(rest) >= 15 {
		copy(t.Name[:], rest[12:15])
		t.HasName = true
	}

	return t, true
}

// LayerQuads is a MAP_ITEMTYPE_LAYER_V1_QUADS item (version 1 base, +name
// in version 2).
type LayerQuads struct {
	NumQuads int32
	Data     int32
	Image    int32
	Name     [3]int32
	HasName  bool
}

// DecodeLayerQuads reads a quad layer's subtype payload.
func DecodeLayerQuads(rest []int32) (LayerQuads, bool) {
	if len(rest) < 4 {
		return LayerQuads{}, false
	}

	version := rest[0]

	q := LayerQuads{
		NumQuads: rest[1],
		Data:     rest[2],
		Image:    rest[3],
	}

	if version >= 2 && len(rest) >= 7 {
		copy(q.Name[:], rest[4:7])
		q.HasName = true
	}

	return q, true
}

// DdraceSoundLayer is a MAP_ITEMTYPE_LAYER_V1_DDRACE_SOUNDS item (version
// 2; version 1 carries no fields).
type DdraceSoundLayer struct {
	NumSources int32
	Data       int32
	Sound      int32
	Name       [3]int32
	HasName    bool
}

// DecodeDdraceSoundLayer reads a ddrace sound layer's subtype payload.
func DecodeDdraceSoundLayer(rest []int32) (DdraceSoundLayer, bool) {
	if len(rest) < 1 {
		return DdraceSoundLayer{}, false
	}

	version := rest[0]
	if version < 2 || len(rest) < 7 {
		return DdraceSoundLayer{}, false
	}

	return DdraceSoundLayer{
		NumSources: rest[1],
		Data:       rest[2],
		Sound:      rest[3],
		Name:       [3]int32{rest[4], rest[5], rest[6]},
		HasName:    true,
	}, true
}

// Envpoint is one envelope keyframe: a time, an interpolation curve and
// up to four fixed-point channel values (22.10 fixed-point, i.e.
// value/1024.0).
type Envpoint struct {
	Time      int32
	CurveType int32
	Values    [4]int32
}

// envpointWords is the i32 width of one version-1/2 envelope point
// (time, curve_type, 4 values).
const envpointWords = 6

// DecodeEnvpoints splits a concatenated envpoints item into its
// individual keyframes.
func DecodeEnvpoints(data []int32) []Envpoint {
	n := len(data) / envpointWords

	out := make([]Envpoint, n)
	for i := range out {
		base := i * envpointWords
		out[i] = Envpoint{
			Time:      data[base],
			CurveType: data[base+1],
			Values:    [4]int32{data[base+2], data[base+3], data[base+4], data[base+5]},
		}
	}

	return out
}

// DdraceSound is the MAP_ITEMTYPE_DDRACE_SOUND item (version 1).
type DdraceSound struct {
	Version  int32
	External int32
	Name     int32
	Data     int32
	DataSize int32
}

// DecodeDdraceSound reads a DdraceSound item.
func DecodeDdraceSound(data []int32) (DdraceSound, bool) {
	if len(data) < 5 {
		return DdraceSound{}, false
	}

	return DdraceSound{
		Version:  data[0],
		External: data[1],
		Name:     data[2],
		Data:     data[3],
		DataSize: data[4],
	}, true
}
