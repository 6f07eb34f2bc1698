package tiled

// LayerByName returns the first layer called name, searching group layers depth first.
func LayerByName(layers []Layer, name string) *Layer {
	for i := range layers {
		if layers[i].Name == name {
			return &layers[i]
		}
		if found := LayerByName(layers[i].Layers, name); found != nil {
			return found
		}
	}
	return nil
}

// TileLayers returns every tile layer in document order, including those nested in groups.
func TileLayers(layers []Layer) []*Layer {
	var out []*Layer
	for i := range layers {
		switch {
		case layers[i].IsTileLayer():
			out = append(out, &layers[i])
		case layers[i].IsGroup():
			out = append(out, TileLayers(layers[i].Layers)...)
		}
	}
	return out
}

func ObjectByName(layer *Layer, name string) *Object {
	for i := range layer.Objects {
		if layer.Objects[i].Name == name {
			return &layer.Objects[i]
		}
	}
	return nil
}

// TileByID returns the per-tile data for a local tile ID, or nil if the tileset has none.
func TileByID(ts *Tileset, id int32) *Tile {
	for i := range ts.Tiles {
		if ts.Tiles[i].ID == id {
			return &ts.Tiles[i]
		}
	}
	return nil
}

// PropertyByName returns the first property called name, or nil.
func PropertyByName(props []Property, name string) *Property {
	for i := range props {
		if props[i].Name == name {
			return &props[i]
		}
	}
	return nil
}

// PropertyByType returns the first property whose custom class is propertyType, or nil.
func PropertyByType(props []Property, propertyType string) *Property {
	for i := range props {
		if props[i].PropertyType == propertyType {
			return &props[i]
		}
	}
	return nil
}

// ObjectAlignmentAnchor returns the normalized anchor point of an alignment.
// Unspecified resolves to the top left corner.
func ObjectAlignmentAnchor(alignment ObjectAlignment) (ax, ay float64) {
	switch alignment {
	case ObjectAlignmentTop:
		return 0.5, 0.0
	case ObjectAlignmentTopRight:
		return 1.0, 0.0
	case ObjectAlignmentRight:
		return 1.0, 0.5
	case ObjectAlignmentBottomRight:
		return 1.0, 1.0
	case ObjectAlignmentBottom:
		return 0.5, 1.0
	case ObjectAlignmentBottomLeft:
		return 0.0, 1.0
	case ObjectAlignmentLeft:
		return 0.0, 0.5
	case ObjectAlignmentCenter:
		return 0.5, 0.5
	default:
		return 0.0, 0.0
	}
}
