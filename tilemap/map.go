package tilemap

import (
	"errors"
	"fmt"
	"math"

	tiled "github.com/caleblogan/TiledJson"
)

var (
	ErrNoMapData     = errors.New("no map data set")
	ErrLayerNotFound = errors.New("layer not found")
	ErrInvalidRegion = errors.New("invalid region: min > max")
	ErrNoTileLayers  = errors.New("map has no tile layers")
)

// ====================== Region =====================

// Region is a rectangle in tile coordinates. Max bounds are exclusive.
type Region struct {
	MinX, MinY int32
	MaxX, MaxY int32
}

func (r *Region) Equals(other *Region) bool {
	return r.MinX == other.MinX &&
		r.MinY == other.MinY &&
		r.MaxX == other.MaxX &&
		r.MaxY == other.MaxY
}

func (r *Region) Width() int32 {
	return r.MaxX - r.MinX
}

func (r *Region) Height() int32 {
	return r.MaxY - r.MinY
}

// clip returns the overlap of r and other, and false when they do not overlap.
func (r *Region) clip(other Region) (Region, bool) {
	out := Region{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
	if out.MinX >= out.MaxX || out.MinY >= out.MaxY {
		return Region{}, false
	}
	return out, true
}

// ====================== Data =====================

// Data is one non-empty cell of a tile layer.
type Data struct {
	X, Y     int32          // Tile coordinates
	GID      uint32         // GID without flip bits
	LocalID  uint32         // Tile ID within its tileset
	FlipFlag tiled.FlipFlag // Flip flags
	Rect     tiled.Rect     // Source rectangle in the tileset image
}

// ====================== Chunk =====================

type chunk struct {
	x, y int32
	w, h int32
	data []uint32
}

func (c *chunk) contains(x, y int32) bool {
	return x >= c.x && x < c.x+c.w && y >= c.y && y < c.y+c.h
}

func (c *chunk) at(x, y int32) uint32 {
	i := int64(y-c.y)*int64(c.w) + int64(x-c.x)
	if i < 0 || i >= int64(len(c.data)) {
		return 0
	}
	return c.data[i]
}

// ====================== Layer =====================

type layer struct {
	source  *tiled.Layer
	visible bool // false when the layer or any enclosing group is hidden
	chunks  []chunk
}

// ====================== Iterator =====================

// Iterator walks the buffered cells of a map one layer at a time.
type Iterator struct {
	tiles  []Data
	layers []int
	index  int
}

// Next returns the cells of the next layer, or nil after the last layer.
// Hidden layers yield an empty slice.
func (it *Iterator) Next() []Data {
	if it.index >= len(it.layers)-1 {
		return nil
	}

	start := it.layers[it.index]
	end := it.layers[it.index+1]
	it.index++

	return it.tiles[start:end]
}

// ====================== Map =====================

// Map answers tile queries over the decoded tile layers of a loaded map.
// Tile layers nested in groups are flattened in document order.
type Map struct {
	doc    *tiled.Map
	layers []layer

	hasCache        bool
	cachedRegion    Region
	cachedData      []Data
	cachedPositions []int
}

func New(doc *tiled.Map) (*Map, error) {
	tm := &Map{}
	if err := tm.SetMap(doc); err != nil {
		return nil, err
	}
	return tm, nil
}

// SetMap replaces the map being queried and drops any buffered region.
func (tm *Map) SetMap(doc *tiled.Map) error {
	if doc == nil {
		return ErrNoMapData
	}

	layers := collectLayers(doc, doc.Layers, true, nil)
	if len(layers) == 0 {
		return ErrNoTileLayers
	}

	tm.Flush()
	tm.doc = doc
	tm.layers = layers
	return nil
}

func (tm *Map) Doc() *tiled.Map {
	return tm.doc
}

// Layers returns the number of queryable tile layers.
func (tm *Map) Layers() int {
	return len(tm.layers)
}

func (tm *Map) Layer(index int) (*tiled.Layer, error) {
	if index < 0 || index >= len(tm.layers) {
		return nil, fmt.Errorf("%w: %d", ErrLayerNotFound, index)
	}
	return tm.layers[index].source, nil
}

// Flush drops the buffered region.
func (tm *Map) Flush() {
	tm.hasCache = false
	tm.cachedRegion = Region{}
	tm.cachedData = tm.cachedData[:0]
	tm.cachedPositions = tm.cachedPositions[:0]
}

// Bounds returns the tile-coordinate extent covered by the map's tile data.
func (tm *Map) Bounds() Region {
	if tm.doc == nil {
		return Region{}
	}

	if !tm.doc.Infinite {
		return Region{0, 0, tm.doc.Width, tm.doc.Height}
	}

	bounds := Region{
		MinX: math.MaxInt32,
		MinY: math.MaxInt32,
		MaxX: math.MinInt32,
		MaxY: math.MinInt32,
	}
	found := false
	for i := range tm.layers {
		for _, c := range tm.layers[i].chunks {
			bounds.MinX = min(bounds.MinX, c.x)
			bounds.MinY = min(bounds.MinY, c.y)
			bounds.MaxX = max(bounds.MaxX, c.x+c.w)
			bounds.MaxY = max(bounds.MaxY, c.y+c.h)
			found = true
		}
	}
	if !found {
		return Region{}
	}
	return bounds
}

// TileAt returns the cell at (x, y) of a tile layer. The bool is false for empty
// or out of range cells. Errors come from resolving the cell's tileset.
func (tm *Map) TileAt(layerIdx int, x, y int32) (Data, bool, error) {
	if tm.doc == nil {
		return Data{}, false, ErrNoMapData
	}
	if layerIdx < 0 || layerIdx >= len(tm.layers) {
		return Data{}, false, fmt.Errorf("%w: %d", ErrLayerNotFound, layerIdx)
	}

	l := &tm.layers[layerIdx]
	for i := range l.chunks {
		if !l.chunks[i].contains(x, y) {
			continue
		}
		return tm.resolve(l.chunks[i].at(x, y), x, y)
	}
	return Data{}, false, nil
}

// Query buffers the non-empty cells of every visible layer inside region.
// Querying the buffered region again does nothing.
func (tm *Map) Query(region Region) error {
	if tm.doc == nil {
		return ErrNoMapData
	}
	if region.MinX > region.MaxX || region.MinY > region.MaxY {
		return ErrInvalidRegion
	}
	if tm.hasCache && region.Equals(&tm.cachedRegion) {
		return nil
	}

	size := 0
	if data, ok := region.clip(tm.Bounds()); ok {
		size = int(data.Width()) * int(data.Height()) * len(tm.layers)
	}
	if cap(tm.cachedData) < size {
		tm.cachedData = make([]Data, 0, size)
	}

	if err := tm.updateCache(region); err != nil {
		tm.Flush()
		return err
	}
	return nil
}

// Itr returns an iterator over the buffered region.
func (tm *Map) Itr() Iterator {
	return Iterator{
		tiles:  tm.cachedData,
		layers: tm.cachedPositions,
		index:  0,
	}
}

func (tm *Map) updateCache(region Region) error {
	tm.cachedData = tm.cachedData[:0]
	tm.cachedPositions = tm.cachedPositions[:0]

	for i := range tm.layers {
		tm.cachedPositions = append(tm.cachedPositions, len(tm.cachedData))

		if !tm.layers[i].visible {
			continue
		}

		for j := range tm.layers[i].chunks {
			c := &tm.layers[i].chunks[j]

			sX := max(region.MinX, c.x)
			sY := max(region.MinY, c.y)
			eX := min(region.MaxX, c.x+c.w)
			eY := min(region.MaxY, c.y+c.h)

			for y := sY; y < eY; y++ {
				for x := sX; x < eX; x++ {
					tile, ok, err := tm.resolve(c.at(x, y), x, y)
					if err != nil {
						return err
					}
					if ok {
						tm.cachedData = append(tm.cachedData, tile)
					}
				}
			}
		}
	}

	tm.cachedPositions = append(tm.cachedPositions, len(tm.cachedData))
	tm.cachedRegion = region
	tm.hasCache = true
	return nil
}

func (tm *Map) resolve(raw uint32, x, y int32) (Data, bool, error) {
	gid, flags := tiled.DecodeGID(raw)
	if gid == 0 {
		return Data{}, false, nil
	}

	localID, err := tm.doc.LocalID(gid)
	if err != nil {
		return Data{}, false, err
	}

	rect, err := tm.doc.GetTileRect(gid)
	if err != nil {
		return Data{}, false, err
	}

	return Data{
		X:        x,
		Y:        y,
		GID:      gid,
		LocalID:  localID,
		FlipFlag: flags,
		Rect:     rect,
	}, true, nil
}

func collectLayers(doc *tiled.Map, layers []tiled.Layer, visible bool, out []layer) []layer {
	for i := range layers {
		src := &layers[i]
		switch {
		case src.IsTileLayer():
			out = append(out, buildLayer(doc, src, visible && src.Visible))
		case src.IsGroup():
			out = collectLayers(doc, src.Layers, visible && src.Visible, out)
		}
	}
	return out
}

func buildLayer(doc *tiled.Map, src *tiled.Layer, visible bool) layer {
	l := layer{source: src, visible: visible}

	if doc.Infinite || len(src.Chunks) > 0 {
		l.chunks = make([]chunk, 0, len(src.Chunks))
		for _, c := range src.Chunks {
			l.chunks = append(l.chunks, chunk{
				x: c.X, y: c.Y,
				w: c.Width, h: c.Height,
				data: c.Data,
			})
		}
		return l
	}

	l.chunks = []chunk{{
		x: src.X, y: src.Y,
		w: src.Width, h: src.Height,
		data: src.Data,
	}}
	return l
}
