package tiled

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileFunc reads a whole file. It is used to load external tilesets.
type ReadFileFunc = func(path string) ([]byte, error)

type loadConfig struct {
	baseDir    string
	hasBaseDir bool
	logger     *slog.Logger
	readFile   ReadFileFunc
}

// Option configures LoadMap and LoadMapFile.
type Option func(*loadConfig)

// WithBaseDir rewrites every external tileset source to <dir>/<stem>.json.
func WithBaseDir(dir string) Option {
	return func(c *loadConfig) {
		c.baseDir = dir
		c.hasBaseDir = true
	}
}

// WithLogger sets the logger used for debug output. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithReadFile replaces os.ReadFile for loading external tilesets.
func WithReadFile(readFile ReadFileFunc) Option {
	return func(c *loadConfig) {
		c.readFile = readFile
	}
}

func newLoadConfig(opts []Option) loadConfig {
	c := loadConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.readFile == nil {
		c.readFile = os.ReadFile
	}
	return c
}

// LoadMap parses a map document, decodes its layer data and, when a base
// directory is given, points external tileset sources at their JSON siblings.
func LoadMap(content []byte, opts ...Option) (*Map, error) {
	cfg := newLoadConfig(opts)

	m := new(Map)
	if err := unmarshalDocument(content, m); err != nil {
		return nil, err
	}
	if err := validateDimensions(m.Width, m.Height, m.TileWidth, m.TileHeight); err != nil {
		return nil, err
	}
	for i := range m.Tilesets {
		if ts := m.Tilesets[i].Tileset; ts != nil {
			if err := validateDimensions(0, 0, ts.TileWidth, ts.TileHeight); err != nil {
				return nil, err
			}
		}
	}

	if err := decodeLayers(m.Layers, m.CompressionLevel); err != nil {
		return nil, err
	}

	if cfg.hasBaseDir {
		for i := range m.Tilesets {
			ref := &m.Tilesets[i]
			if ref.Source == "" {
				continue
			}
			source := TilesetSourcePath(cfg.baseDir, ref.Source)
			cfg.logger.Debug("rewrote tileset source", "from", ref.Source, "to", source)
			ref.Source = source
		}
	}

	m.tilesets = make(map[uint32]*Tileset)
	m.readFile = cfg.readFile
	m.logger = cfg.logger
	return m, nil
}

// LoadMapFile reads and loads a map file. Unless WithBaseDir is given, tileset
// sources are resolved against the map's own directory.
func LoadMapFile(path string, opts ...Option) (*Map, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	return LoadMap(content, opts...)
}

// LoadTileset parses a tileset document.
func LoadTileset(content []byte) (*Tileset, error) {
	ts := new(Tileset)
	if err := unmarshalDocument(content, ts); err != nil {
		return nil, err
	}
	if err := validateDimensions(0, 0, ts.TileWidth, ts.TileHeight); err != nil {
		return nil, err
	}
	return ts, nil
}

func LoadTilesetFile(path string) (*Tileset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadTileset(content)
}

// TilesetSourcePath maps a tileset source as written in a map to the JSON file
// expected under baseDir, whatever the original extension.
func TilesetSourcePath(baseDir, source string) string {
	name := filepath.Base(source)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(baseDir, stem+".json")
}

func unmarshalDocument(content []byte, v any) error {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return nil
}

func validateDimensions(width, height, tileWidth, tileHeight int32) error {
	if width < 0 || height < 0 || tileWidth < 0 || tileHeight < 0 {
		return fmt.Errorf("%w: negative dimensions (%dx%d tiles of %dx%d)", ErrMalformedDocument, width, height, tileWidth, tileHeight)
	}
	return nil
}
