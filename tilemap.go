package tiled

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
)

var (
	ErrMalformedDocument      = errors.New("malformed document")
	ErrInvalidEnumValue       = errors.New("invalid enum value")
	ErrValueShapeMismatch     = errors.New("property value shape mismatch")
	ErrPropertyNotFound       = errors.New("property not found")
	ErrUnsupportedEncoding    = errors.New("unsupported layer encoding")
	ErrUnsupportedCompression = errors.New("unsupported layer compression")
	ErrMalformedLayerData     = errors.New("malformed layer data")
	ErrNoOwningTileset        = errors.New("no tileset owns gid")
	ErrDivisionByZeroColumns  = errors.New("tileset has no columns")
	ErrTilesetLoadFailure     = errors.New("tileset load failure")
	ErrTileOutOfRange         = errors.New("tile rect out of range")
)

// The methods below share the tileset cache and reorder m.Tilesets, so each
// call holds the map's lock.

// GetTilesetRef returns the reference of the tileset that owns gid: the one with
// the greatest FirstGID not above gid.
//
// m.Tilesets is left sorted by FirstGID, highest first.
func (m *Map) GetTilesetRef(gid uint32) (TilesetRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.tilesetRef(gid)
	if err != nil {
		return TilesetRef{}, err
	}
	return *ref, nil
}

// LocalID returns gid relative to the first GID of its tileset.
func (m *Map) LocalID(gid uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, err := m.tilesetRef(gid)
	if err != nil {
		return 0, err
	}
	return gid - ref.FirstGID, nil
}

// GetTileset returns the tileset that owns gid, loading it from its source on
// first use. Results are cached per gid; forceReload bypasses the cache and
// replaces the entry.
func (m *Map) GetTileset(gid uint32, forceReload bool) (*Tileset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tileset(gid, forceReload)
}

// GetTileRect returns the pixel rectangle of gid's tile inside its tileset image.
// gid must not carry flip bits; strip them with DecodeGID.
func (m *Map) GetTileRect(gid uint32) (Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, err := m.tileset(gid, false)
	if err != nil {
		return Rect{}, err
	}
	ref, err := m.tilesetRef(gid)
	if err != nil {
		return Rect{}, err
	}
	if ts.Columns <= 0 {
		return Rect{}, fmt.Errorf("%w: gid %d (columns %d)", ErrDivisionByZeroColumns, gid, ts.Columns)
	}

	localID := int64(gid - ref.FirstGID)
	columns := int64(ts.Columns)
	x := (localID % columns) * int64(ts.TileWidth)
	y := (localID / columns) * int64(ts.TileHeight)
	if x > math.MaxInt32 || y > math.MaxInt32 {
		return Rect{}, fmt.Errorf("%w: gid %d", ErrTileOutOfRange, gid)
	}

	return Rect{
		X:      int32(x),
		Y:      int32(y),
		Width:  ts.TileWidth,
		Height: ts.TileHeight,
	}, nil
}

func (m *Map) tilesetRef(gid uint32) (*TilesetRef, error) {
	slices.SortStableFunc(m.Tilesets, func(a, b TilesetRef) int {
		return cmp.Compare(b.FirstGID, a.FirstGID)
	})

	for i := range m.Tilesets {
		if m.Tilesets[i].FirstGID <= gid {
			return &m.Tilesets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoOwningTileset, gid)
}

func (m *Map) tileset(gid uint32, forceReload bool) (*Tileset, error) {
	if m.tilesets == nil {
		m.tilesets = make(map[uint32]*Tileset)
	}

	if ts, ok := m.tilesets[gid]; ok && !forceReload {
		m.log().Debug("tileset cache hit", "gid", gid)
		return ts, nil
	}

	ref, err := m.tilesetRef(gid)
	if err != nil {
		return nil, err
	}

	if ref.Tileset != nil {
		m.tilesets[gid] = ref.Tileset
		return ref.Tileset, nil
	}

	m.log().Debug("loading tileset", "gid", gid, "firstgid", ref.FirstGID, "source", ref.Source)

	readFile := m.readFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	content, err := readFile(ref.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTilesetLoadFailure, ref.Source, err)
	}

	ts, err := LoadTileset(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTilesetLoadFailure, ref.Source, err)
	}

	m.tilesets[gid] = ts
	return ts, nil
}

func (m *Map) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.logger
}
