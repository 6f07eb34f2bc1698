package tiled

import "strings"

// Bits Tiled stores in the top of a GID. They are not part of the tile identity.
const (
	FlipHorizontalBit uint32 = 0x80000000
	FlipVerticalBit   uint32 = 0x40000000
	FlipDiagonalBit   uint32 = 0x20000000
	RotateHexBit      uint32 = 0x10000000
	GIDMask           uint32 = 0x0FFFFFFF
)

// ======================================================
// FlipFlag
// ======================================================

// FlipFlag holds the transformation bits carried by a GID.
type FlipFlag uint8

const (
	FlipHorizontal FlipFlag = 1 << iota
	FlipVertical
	FlipDiagonal
	FlipHex

	flipFlagMax = FlipHorizontal | FlipVertical | FlipDiagonal | FlipHex
)

var flipFlagNames = [...]struct {
	flag FlipFlag
	name string
}{
	{FlipHorizontal, "horizontal"},
	{FlipVertical, "vertical"},
	{FlipDiagonal, "diagonal"},
	{FlipHex, "hex"},
}

func (ff FlipFlag) String() string {
	var names []string
	for _, n := range flipFlagNames {
		if ff&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

func (ff FlipFlag) IsValid() bool {
	return ff&^flipFlagMax == 0
}

func (ff FlipFlag) Horizontal() bool { return ff&FlipHorizontal != 0 }
func (ff FlipFlag) Vertical() bool   { return ff&FlipVertical != 0 }
func (ff FlipFlag) Diagonal() bool   { return ff&FlipDiagonal != 0 }
func (ff FlipFlag) Hex() bool        { return ff&FlipHex != 0 }

// DecodeGID splits a raw GID as stored in layer data into the plain GID and its flip flags.
// The resolver methods on Map expect the plain GID.
func DecodeGID(raw uint32) (gid uint32, flags FlipFlag) {
	gid = raw & GIDMask
	if raw&FlipHorizontalBit != 0 {
		flags |= FlipHorizontal
	}
	if raw&FlipVerticalBit != 0 {
		flags |= FlipVertical
	}
	if raw&FlipDiagonalBit != 0 {
		flags |= FlipDiagonal
	}
	if raw&RotateHexBit != 0 {
		flags |= FlipHex
	}
	return gid, flags
}
