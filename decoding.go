package tiled

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeLayerData turns the raw "data" value of a layer or chunk into tile GIDs.
//
// Inline arrays ("" and "csv") are read as-is. Base64 payloads must be uncompressed;
// any compression is rejected with ErrUnsupportedCompression. level is the map's
// compression level and is only reported in errors.
func DecodeLayerData(raw json.RawMessage, encoding Encoding, compression Compression, level int) ([]uint32, error) {
	switch encoding {
	case EncodingNone, EncodingCSV:
		return decodeArray(raw)

	case EncodingBase64:
		var content string
		if err := json.Unmarshal(raw, &content); err != nil {
			return nil, fmt.Errorf("%w: base64 data is not a string: %w", ErrMalformedLayerData, err)
		}
		return DecodeBase64(content, compression, level)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(encoding))
}

// DecodeBase64 decodes base64 text into little-endian uint32 GIDs.
func DecodeBase64(content string, compression Compression, level int) ([]uint32, error) {
	if compression != CompressionNone {
		return nil, fmt.Errorf("%w: %q (level %d)", ErrUnsupportedCompression, string(compression), level)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLayerData, err)
	}

	if len(decoded)%4 != 0 {
		return nil, fmt.Errorf("%w: base64 payload length %d is not a multiple of 4", ErrMalformedLayerData, len(decoded))
	}

	data := make([]uint32, len(decoded)/4)
	for i := range data {
		data[i] = binary.LittleEndian.Uint32(decoded[i*4:])
	}
	return data, nil
}

func decodeArray(raw json.RawMessage) ([]uint32, error) {
	var data []uint32
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLayerData, err)
	}
	if data == nil {
		data = []uint32{}
	}
	return data, nil
}

func hasRawData(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// decodeLayers runs the data decoder over every tile layer and chunk, descending into groups.
func decodeLayers(layers []Layer, level int) error {
	for i := range layers {
		layer := &layers[i]

		if hasRawData(layer.RawData) {
			data, err := DecodeLayerData(layer.RawData, layer.Encoding, layer.Compression, level)
			if err != nil {
				return fmt.Errorf("layer %q: %w", layer.Name, err)
			}
			layer.Data = data
		}
		layer.RawData = nil

		for j := range layer.Chunks {
			chunk := &layer.Chunks[j]
			if !hasRawData(chunk.RawData) {
				continue
			}
			data, err := DecodeLayerData(chunk.RawData, layer.Encoding, layer.Compression, level)
			if err != nil {
				return fmt.Errorf("layer %q chunk (%d,%d): %w", layer.Name, chunk.X, chunk.Y, err)
			}
			chunk.Data = data
			chunk.RawData = nil
		}

		if err := decodeLayers(layer.Layers, level); err != nil {
			return err
		}
	}
	return nil
}
