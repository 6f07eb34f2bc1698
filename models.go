package tiled

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
)

// ======================================================
// Map - Tiled map JSON document
// ======================================================

type Map struct {
	Type         string  `json:"type"`
	Version      Version `json:"version"`
	TiledVersion string  `json:"tiledversion"`
	Class        string  `json:"class,omitempty"`

	Width      int32 `json:"width"`
	Height     int32 `json:"height"`
	TileWidth  int32 `json:"tilewidth"`
	TileHeight int32 `json:"tileheight"`

	Orientation   Orientation  `json:"orientation"`
	RenderOrder   RenderOrder  `json:"renderorder"`
	StaggerAxis   StaggerAxis  `json:"staggeraxis"`
	StaggerIndex  StaggerIndex `json:"staggerindex"`
	HexSideLength int32        `json:"hexsidelength,omitempty"`

	Infinite         bool   `json:"infinite"`
	BackgroundColor  string `json:"backgroundcolor,omitempty"`
	CompressionLevel int    `json:"compressionlevel"`

	ParallaxOriginX float64 `json:"parallaxoriginx,omitempty"`
	ParallaxOriginY float64 `json:"parallaxoriginy,omitempty"`

	NextLayerID  int32 `json:"nextlayerid"`
	NextObjectID int32 `json:"nextobjectid"`

	Tilesets   []TilesetRef `json:"tilesets"`
	Layers     []Layer      `json:"layers"`
	Properties []Property   `json:"properties,omitempty"`

	mu       sync.Mutex
	tilesets map[uint32]*Tileset // keyed by the queried GID
	readFile ReadFileFunc
	logger   *slog.Logger
}

func (m *Map) UnmarshalJSON(data []byte) error {
	type mapAlias Map
	aux := (*mapAlias)(m)
	aux.Type = "map"
	aux.CompressionLevel = -1
	aux.RenderOrder = RenderOrderRightDown
	return json.Unmarshal(data, aux)
}

// ======================================================
// TilesetRef
// ======================================================

// TilesetRef binds a tileset to the first GID it owns within a map.
// External tilesets carry a Source; embedded ones are decoded into Tileset.
type TilesetRef struct {
	FirstGID uint32 `json:"firstgid"`
	Source   string `json:"source,omitempty"`

	Tileset *Tileset `json:"-"`
}

func (tr *TilesetRef) UnmarshalJSON(data []byte) error {
	type tilesetRefAlias TilesetRef
	aux := (*tilesetRefAlias)(tr)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if tr.Source != "" {
		return nil
	}

	ts := new(Tileset)
	if err := json.Unmarshal(data, ts); err != nil {
		return err
	}
	tr.Tileset = ts
	return nil
}

// IsEmbedded reports whether the tileset is stored inline in the map.
func (tr *TilesetRef) IsEmbedded() bool {
	return tr.Tileset != nil
}

// ======================================================
// Layer
// ======================================================

type Layer struct {
	ID    int32     `json:"id"`
	Name  string    `json:"name"`
	Type  LayerType `json:"type"`
	Class string    `json:"class,omitempty"`

	X      int32 `json:"x"`
	Y      int32 `json:"y"`
	Width  int32 `json:"width"`
	Height int32 `json:"height"`

	StartX int32 `json:"startx,omitempty"`
	StartY int32 `json:"starty,omitempty"`

	OffsetX   float64 `json:"offsetx,omitempty"`
	OffsetY   float64 `json:"offsety,omitempty"`
	ParallaxX float64 `json:"parallaxx"`
	ParallaxY float64 `json:"parallaxy"`
	Opacity   float64 `json:"opacity"`
	Visible   bool    `json:"visible"`
	Locked    bool    `json:"locked,omitempty"`

	TintColor        string `json:"tintcolor,omitempty"`
	TransparentColor string `json:"transparentcolor,omitempty"`

	// tilelayer
	Encoding    Encoding        `json:"encoding,omitempty"`
	Compression Compression     `json:"compression,omitempty"`
	RawData     json.RawMessage `json:"data,omitempty"`
	Data        []uint32        `json:"-"`
	Chunks      []Chunk         `json:"chunks,omitempty"`

	// objectgroup
	DrawOrder DrawOrder `json:"draworder"`
	Objects   []Object  `json:"objects,omitempty"`

	// imagelayer
	Image   string `json:"image,omitempty"`
	RepeatX bool   `json:"repeatx,omitempty"`
	RepeatY bool   `json:"repeaty,omitempty"`

	// group
	Layers []Layer `json:"layers,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

func (l *Layer) UnmarshalJSON(data []byte) error {
	type layerAlias Layer
	aux := (*layerAlias)(l)
	aux.Opacity = 1
	aux.Visible = true
	aux.ParallaxX = 1
	aux.ParallaxY = 1
	return json.Unmarshal(data, aux)
}

func (l *Layer) IsTileLayer() bool {
	return l.Type == LayerTypeTile
}

func (l *Layer) IsGroup() bool {
	return l.Type == LayerTypeGroup
}

// ======================================================
// Chunk
// ======================================================

// Chunk is a rectangle of tile data in an infinite layer.
type Chunk struct {
	X      int32 `json:"x"`
	Y      int32 `json:"y"`
	Width  int32 `json:"width"`
	Height int32 `json:"height"`

	RawData json.RawMessage `json:"data,omitempty"`
	Data    []uint32        `json:"-"`
}

// ======================================================
// Object
// ======================================================

type Object struct {
	ID       int32  `json:"id"`
	GID      uint32 `json:"gid,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Template string `json:"template,omitempty"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Visible  bool    `json:"visible"`

	Ellipse  bool    `json:"ellipse,omitempty"`
	Point    bool    `json:"point,omitempty"`
	Polygon  []Point `json:"polygon,omitempty"`
	Polyline []Point `json:"polyline,omitempty"`
	Text     *Text   `json:"text,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

func (o *Object) UnmarshalJSON(data []byte) error {
	type objectAlias Object
	aux := (*objectAlias)(o)
	aux.Visible = true
	return json.Unmarshal(data, aux)
}

// ======================================================
// Point
// ======================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ======================================================
// Text
// ======================================================

type Text struct {
	Text       string `json:"text"`
	FontFamily string `json:"fontfamily"`
	PixelSize  int32  `json:"pixelsize"`
	Color      string `json:"color"`
	HAlign     string `json:"halign"`
	VAlign     string `json:"valign"`
	Bold       bool   `json:"bold,omitempty"`
	Italic     bool   `json:"italic,omitempty"`
	Underline  bool   `json:"underline,omitempty"`
	Strikeout  bool   `json:"strikeout,omitempty"`
	Kerning    bool   `json:"kerning"`
	Wrap       bool   `json:"wrap,omitempty"`
}

func (t *Text) UnmarshalJSON(data []byte) error {
	type textAlias Text
	aux := (*textAlias)(t)
	aux.FontFamily = "sans-serif"
	aux.PixelSize = 16
	aux.Color = "#000000"
	aux.HAlign = "left"
	aux.VAlign = "top"
	aux.Kerning = true
	return json.Unmarshal(data, aux)
}

// ======================================================
// Tileset - Tiled tileset JSON document
// ======================================================

type Tileset struct {
	Type         string  `json:"type"`
	Version      Version `json:"version"`
	TiledVersion string  `json:"tiledversion"`
	Name         string  `json:"name"`
	Class        string  `json:"class,omitempty"`

	// Present only when the tileset is embedded in a map.
	FirstGID uint32 `json:"firstgid,omitempty"`
	Source   string `json:"source,omitempty"`

	Columns    int32 `json:"columns"`
	TileWidth  int32 `json:"tilewidth"`
	TileHeight int32 `json:"tileheight"`
	TileCount  int32 `json:"tilecount"`
	Margin     int32 `json:"margin"`
	Spacing    int32 `json:"spacing"`

	Image            string `json:"image"`
	ImageWidth       int32  `json:"imagewidth"`
	ImageHeight      int32  `json:"imageheight"`
	BackgroundColor  string `json:"backgroundcolor,omitempty"`
	TransparentColor string `json:"transparentcolor,omitempty"`

	FillMode        string          `json:"fillmode"`
	TileRenderSize  string          `json:"tilerendersize"`
	ObjectAlignment ObjectAlignment `json:"objectalignment"`

	Grid            *Grid            `json:"grid,omitempty"`
	TileOffset      *TileOffset      `json:"tileoffset,omitempty"`
	Transformations *Transformations `json:"transformations,omitempty"`

	Tiles    []Tile    `json:"tiles,omitempty"`
	WangSets []WangSet `json:"wangsets,omitempty"`
	Terrains []Terrain `json:"terrains,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

func (ts *Tileset) UnmarshalJSON(data []byte) error {
	type tilesetAlias Tileset
	aux := (*tilesetAlias)(ts)
	aux.Type = "tileset"
	aux.FillMode = "stretch"
	aux.TileRenderSize = "tile"
	return json.Unmarshal(data, aux)
}

type Grid struct {
	Orientation string `json:"orientation"`
	Width       int32  `json:"width"`
	Height      int32  `json:"height"`
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	type gridAlias Grid
	aux := (*gridAlias)(g)
	aux.Orientation = "orthogonal"
	return json.Unmarshal(data, aux)
}

type TileOffset struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Transformations lists the ways tiles of a tileset may be transformed in the editor.
type Transformations struct {
	HFlip               bool `json:"hflip"`
	VFlip               bool `json:"vflip"`
	Rotate              bool `json:"rotate"`
	PreferUntransformed bool `json:"preferuntransformed"`
}

// ======================================================
// Tile
// ======================================================

// Tile holds per-tile overrides. ID is local to the tileset.
type Tile struct {
	ID   int32  `json:"id"`
	Type string `json:"type,omitempty"`

	Image       string `json:"image,omitempty"`
	ImageWidth  int32  `json:"imagewidth,omitempty"`
	ImageHeight int32  `json:"imageheight,omitempty"`
	X           int32  `json:"x,omitempty"`
	Y           int32  `json:"y,omitempty"`
	Width       int32  `json:"width,omitempty"`
	Height      int32  `json:"height,omitempty"`

	Animation   []Frame  `json:"animation,omitempty"`
	ObjectGroup *Layer   `json:"objectgroup,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
	Terrain     []int32  `json:"terrain,omitempty"`

	Properties []Property `json:"properties,omitempty"`
}

type Frame struct {
	TileID   int32 `json:"tileid"`
	Duration int32 `json:"duration"` // milliseconds
}

// ======================================================
// Terrain (pre wang set format)
// ======================================================

type Terrain struct {
	Name       string     `json:"name"`
	Tile       int32      `json:"tile"`
	Properties []Property `json:"properties,omitempty"`
}

// ======================================================
// WangSet
// ======================================================

type WangSet struct {
	Name       string      `json:"name"`
	Class      string      `json:"class,omitempty"`
	Type       string      `json:"type"` // corner, edge or mixed
	Tile       int32       `json:"tile"`
	Colors     []WangColor `json:"colors,omitempty"`
	WangTiles  []WangTile  `json:"wangtiles,omitempty"`
	Properties []Property  `json:"properties,omitempty"`
}

type WangColor struct {
	Name        string     `json:"name"`
	Class       string     `json:"class,omitempty"`
	Color       string     `json:"color"`
	Probability float64    `json:"probability"`
	Tile        int32      `json:"tile"`
	Properties  []Property `json:"properties,omitempty"`
}

type WangTile struct {
	TileID int32    `json:"tileid"`
	WangID [8]uint8 `json:"wangid"` // wang color indexes, clockwise from top
}

// ======================================================
// Rect
// ======================================================

// Rect is a pixel rectangle inside a tileset image.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// ======================================================
// Version
// ======================================================

// Version is a format version as written in the document. Older files store it as
// a number; the literal text is kept either way.
type Version string

func (v *Version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Version(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Version(n.String())
	return nil
}
