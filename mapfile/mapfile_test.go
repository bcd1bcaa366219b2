package mapfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddnet-go/twnet/datafile"
)

func TestReaderDecodesInfoAndGroup(t *testing.T) {
	w := datafile.NewWriter()
	require.NoError(t, w.AddItem(ItemTypeInfo, 0, []int32{1, -1, 0, -1, -1}))
	require.NoError(t, w.AddItem(ItemTypeGroup, 0, []int32{3, 0, 0, 100, 100, 0, 1, 1, 0, 0, 800, 600, 0, 0, 0}))

	buf, err := w.Bytes()
	require.NoError(t, err)

	df, err := datafile.Open(buf)
	require.NoError(t, err)

	r := NewReader(df)

	infos := r.Infos()
	require.Len(t, infos, 1)
	assert.Equal(t, int32(1), infos[0].Version)
	assert.Equal(t, int32(-1), infos[0].Author)

	groups := r.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, int32(3), groups[0].Version)
	assert.True(t, groups[0].HasClipping)
	assert.True(t, groups[0].HasName)
	assert.Equal(t, int32(800), groups[0].ClipW)
}

func TestDecodeLayerTilemap(t *testing.T) {
	layerData := []int32{1, LayerTypeTilemap, 0, 3, 50, 50, 0, 255, 255, 255, 255, -1, 0, 10, 0, 0, 0, 0}

	common, rest, ok := DecodeLayerCommon(layerData)
	require.True(t, ok)
	assert.Equal(t, LayerTypeTilemap, common.Type)

	tm, ok := DecodeLayerTilemap(rest)
	require.True(t, ok)
	assert.Equal(t, int32(50), tm.Width)
	assert.True(t, tm.HasName)
}

func TestDecodeEnvpoints(t *testing.T) {
	data := []int32{
		0, 0, 0, 0, 0, 0,
		100, 1, 1024, 1024, 1024, 1024,
	}

	points := DecodeEnvpoints(data)
	require.Len(t, points, 2)
	assert.Equal(t, int32(100), points[1].Time)
	assert.Equal(t, [4]int32{1024, 1024, 1024, 1024}, points[1].Values)
}

func TestDecodeImageTooShort(t *testing.T) {
	_, ok := DecodeImage([]int32{1, 2})
	assert.False(t, ok)
}
