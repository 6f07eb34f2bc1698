package tiled

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerLookup(t *testing.T) {
	m, err := LoadMapFile(filepath.Join("testdata", "map.json"))
	require.NoError(t, err)

	roofs := LayerByName(m.Layers, "roofs")
	require.NotNil(t, roofs)
	assert.Same(t, &m.Layers[2].Layers[0], roofs)
	assert.Nil(t, LayerByName(m.Layers, "missing"))

	var names []string
	for _, l := range TileLayers(m.Layers) {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"ground", "details", "roofs"}, names)

	entities := LayerByName(m.Layers, "entities")
	require.NotNil(t, entities)
	spawn := ObjectByName(entities, "spawn")
	require.NotNil(t, spawn)
	assert.True(t, spawn.Point)
	assert.Nil(t, ObjectByName(entities, "ghost"))

	spawner := PropertyByType(m.Properties, "Spawner")
	require.NotNil(t, spawner)
	assert.Equal(t, "spawner", spawner.Name)
	assert.Nil(t, PropertyByType(m.Properties, "Nothing"))
}

func TestTileByID(t *testing.T) {
	ts, err := LoadTilesetFile(filepath.Join("testdata", "town.json"))
	require.NoError(t, err)

	tile := TileByID(ts, 4)
	require.NotNil(t, tile)
	solid, err := PropertyValue[bool](tile.Properties, "solid")
	require.NoError(t, err)
	assert.True(t, solid)

	assert.Nil(t, TileByID(ts, 63))
}

func TestObjectAlignmentAnchor(t *testing.T) {
	tests := []struct {
		alignment ObjectAlignment
		ax, ay    float64
	}{
		{ObjectAlignmentUnspecified, 0, 0},
		{ObjectAlignmentTopLeft, 0, 0},
		{ObjectAlignmentTop, 0.5, 0},
		{ObjectAlignmentCenter, 0.5, 0.5},
		{ObjectAlignmentBottom, 0.5, 1},
		{ObjectAlignmentBottomRight, 1, 1},
		{ObjectAlignmentLeft, 0, 0.5},
	}
	for _, tt := range tests {
		ax, ay := ObjectAlignmentAnchor(tt.alignment)
		assert.Equal(t, tt.ax, ax, tt.alignment.String())
		assert.Equal(t, tt.ay, ay, tt.alignment.String())
	}
}
