package gen

import (
	"fmt"

	"plotcraft.ai/internal/sim/world/logic/mathx"
)

// Column is the surface classification of a single x/z column.
type Column uint8

const (
	Floor Column = iota
	Wall
	PathMain
	PathAlt
)

func (c Column) String() string {
	switch c {
	case Floor:
		return "FLOOR"
	case Wall:
		return "WALL"
	case PathMain:
		return "PATH_MAIN"
	case PathAlt:
		return "PATH_ALT"
	default:
		return fmt.Sprintf("COLUMN_%d", uint8(c))
	}
}

// Classify takes section-local coordinates (see SectionLocal) and returns the
// column kind with the y of its surface block. The first matching rule wins.
func (c *Config) Classify(x, z int) (Column, int) {
	plotSize := c.s.PlotSize
	h := c.s.FloorHeight
	switch {
	case 0 <= x && x < plotSize && 0 <= z && z < plotSize:
		return Floor, h
	case -1 <= x && x <= plotSize && -1 <= z && z <= plotSize:
		return Wall, h + 1
	case c.makePathAlt && -2 <= x && x < plotSize+2 && -2 <= z && z < plotSize+2:
		return PathAlt, h
	case c.makePathMain:
		return PathMain, h
	default:
		// Too narrow for a path: the gap is more wall.
		return Wall, h + 1
	}
}

// SectionLocal reduces a world coordinate into section-local space.
func (c *Config) SectionLocal(worldX, worldZ int) (int, int) {
	x := mathx.Mod(worldX-c.s.OffsetX, c.sectionSize) - c.pathOffset
	z := mathx.Mod(worldZ-c.s.OffsetZ, c.sectionSize) - c.pathOffset
	return x, z
}

func (c *Config) ClassifyWorld(worldX, worldZ int) (Column, int) {
	return c.Classify(c.SectionLocal(worldX, worldZ))
}

func (p Palette[T]) For(col Column) T {
	switch col {
	case Floor:
		return p.Floor
	case Wall:
		return p.Wall
	case PathMain:
		return p.PathMain
	default:
		return p.PathAlt
	}
}
