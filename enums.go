package tiled

import (
	"fmt"

	"github.com/adm87/enum"
)

// EnumError reports a token that does not name any value of the target enum.
type EnumError struct {
	Enum  string // Go name of the target enum
	Value string // Token as found in the document
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Enum, e.Value)
}

func (e *EnumError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

// ======================================================
// Encoding
// ======================================================

// Encoding is the layer data encoding. The empty value means an inline array.
type Encoding string

const (
	EncodingNone   Encoding = ""
	EncodingCSV    Encoding = "csv"
	EncodingBase64 Encoding = "base64"
)

// ======================================================
// Compression
// ======================================================

type Compression string

const (
	CompressionNone Compression = ""
	CompressionZlib Compression = "zlib"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ======================================================
// LayerType
// ======================================================

type LayerType string

const (
	LayerTypeTile   LayerType = "tilelayer"
	LayerTypeObject LayerType = "objectgroup"
	LayerTypeImage  LayerType = "imagelayer"
	LayerTypeGroup  LayerType = "group"
)

// ======================================================
// DrawOrder
// ======================================================

type DrawOrder uint8

const (
	DrawOrderTopDown DrawOrder = iota
	DrawOrderIndex
)

func (do DrawOrder) String() string {
	switch do {
	case DrawOrderTopDown:
		return "topdown"
	case DrawOrderIndex:
		return "index"
	default:
		return "unknown"
	}
}

func (do DrawOrder) IsValid() bool {
	return do >= DrawOrderTopDown && do <= DrawOrderIndex
}

func (do *DrawOrder) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[DrawOrder](token)
	if err != nil {
		return &EnumError{Enum: "DrawOrder", Value: token}
	}
	*do = val
	return nil
}

// ======================================================
// ObjectAlignment
// ======================================================

type ObjectAlignment uint8

const (
	ObjectAlignmentUnspecified ObjectAlignment = iota
	ObjectAlignmentTopLeft
	ObjectAlignmentTop
	ObjectAlignmentTopRight
	ObjectAlignmentLeft
	ObjectAlignmentCenter
	ObjectAlignmentRight
	ObjectAlignmentBottomLeft
	ObjectAlignmentBottom
	ObjectAlignmentBottomRight
)

func (oa ObjectAlignment) String() string {
	switch oa {
	case ObjectAlignmentUnspecified:
		return "unspecified"
	case ObjectAlignmentTopLeft:
		return "topleft"
	case ObjectAlignmentTop:
		return "top"
	case ObjectAlignmentTopRight:
		return "topright"
	case ObjectAlignmentLeft:
		return "left"
	case ObjectAlignmentCenter:
		return "center"
	case ObjectAlignmentRight:
		return "right"
	case ObjectAlignmentBottomLeft:
		return "bottomleft"
	case ObjectAlignmentBottom:
		return "bottom"
	case ObjectAlignmentBottomRight:
		return "bottomright"
	default:
		return "unknown"
	}
}

func (oa ObjectAlignment) IsValid() bool {
	return oa >= ObjectAlignmentUnspecified && oa <= ObjectAlignmentBottomRight
}

func (oa *ObjectAlignment) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[ObjectAlignment](token)
	if err != nil {
		return &EnumError{Enum: "ObjectAlignment", Value: token}
	}
	*oa = val
	return nil
}

// ======================================================
// Orientation
// ======================================================

type Orientation uint8

const (
	OrientationOrthogonal Orientation = iota
	OrientationIsometric
	OrientationStaggered
	OrientationHexagonal
)

func (o Orientation) String() string {
	switch o {
	case OrientationOrthogonal:
		return "orthogonal"
	case OrientationIsometric:
		return "isometric"
	case OrientationStaggered:
		return "staggered"
	case OrientationHexagonal:
		return "hexagonal"
	default:
		return "unknown"
	}
}

func (o Orientation) IsValid() bool {
	return o >= OrientationOrthogonal && o <= OrientationHexagonal
}

func (o *Orientation) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[Orientation](token)
	if err != nil {
		return &EnumError{Enum: "Orientation", Value: token}
	}
	*o = val
	return nil
}

// ======================================================
// RenderOrder
// ======================================================

type RenderOrder uint8

const (
	RenderOrderRightDown RenderOrder = iota
	RenderOrderRightUp
	RenderOrderLeftDown
	RenderOrderLeftUp
)

func (ro RenderOrder) String() string {
	switch ro {
	case RenderOrderRightDown:
		return "right-down"
	case RenderOrderRightUp:
		return "right-up"
	case RenderOrderLeftDown:
		return "left-down"
	case RenderOrderLeftUp:
		return "left-up"
	default:
		return "unknown"
	}
}

func (ro RenderOrder) IsValid() bool {
	return ro >= RenderOrderRightDown && ro <= RenderOrderLeftUp
}

func (ro *RenderOrder) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[RenderOrder](token)
	if err != nil {
		return &EnumError{Enum: "RenderOrder", Value: token}
	}
	*ro = val
	return nil
}

// ======================================================
// StaggerAxis
// ======================================================

type StaggerAxis uint8

const (
	StaggerAxisX StaggerAxis = iota
	StaggerAxisY
)

func (sa StaggerAxis) String() string {
	switch sa {
	case StaggerAxisX:
		return "x"
	case StaggerAxisY:
		return "y"
	default:
		return "unknown"
	}
}

func (sa StaggerAxis) IsValid() bool {
	return sa >= StaggerAxisX && sa <= StaggerAxisY
}

func (sa *StaggerAxis) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[StaggerAxis](token)
	if err != nil {
		return &EnumError{Enum: "StaggerAxis", Value: token}
	}
	*sa = val
	return nil
}

// ======================================================
// StaggerIndex
// ======================================================

type StaggerIndex uint8

const (
	StaggerIndexOdd StaggerIndex = iota
	StaggerIndexEven
)

func (si StaggerIndex) String() string {
	switch si {
	case StaggerIndexOdd:
		return "odd"
	case StaggerIndexEven:
		return "even"
	default:
		return "unknown"
	}
}

func (si StaggerIndex) IsValid() bool {
	return si >= StaggerIndexOdd && si <= StaggerIndexEven
}

func (si *StaggerIndex) UnmarshalText(text []byte) error {
	token := string(text)
	val, err := enum.UnmarshalEnum[StaggerIndex](token)
	if err != nil {
		return &EnumError{Enum: "StaggerIndex", Value: token}
	}
	*si = val
	return nil
}
