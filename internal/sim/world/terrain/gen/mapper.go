package gen

import (
	"fmt"
	"strconv"
	"strings"

	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/logic/mathx"
)

// PlotCoord identifies a plot in the infinite tiling grid.
type PlotCoord struct {
	X, Z int
}

func (p PlotCoord) String() string { return fmt.Sprintf("%d:%d", p.X, p.Z) }

// ParsePlotCoord reads the "x:z" form produced by PlotCoord.String.
func ParsePlotCoord(s string) (PlotCoord, error) {
	xs, zs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return PlotCoord{}, fmt.Errorf("plot id %q: want x:z", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return PlotCoord{}, fmt.Errorf("plot id %q: %w", s, err)
	}
	z, err := strconv.Atoi(zs)
	if err != nil {
		return PlotCoord{}, fmt.Errorf("plot id %q: %w", s, err)
	}
	return PlotCoord{X: x, Z: z}, nil
}

// BottomCorner is the world x/z of the plot's (0,0) floor column.
func (c *Config) BottomCorner(p PlotCoord) geom.Vec2i {
	return geom.Vec2i{
		X: c.sectionSize*p.X + c.pathOffset + c.s.OffsetX,
		Z: c.sectionSize*p.Z + c.pathOffset + c.s.OffsetZ,
	}
}

// PlotAt returns the plot containing the world column, or false when the
// column is path or wall.
func (c *Config) PlotAt(x, z int) (PlotCoord, bool) {
	sectionSize := c.sectionSize
	plotSize := c.s.PlotSize
	absX := x - c.s.OffsetX - c.pathOffset
	absZ := z - c.s.OffsetZ - c.pathOffset
	modX := mathx.Mod(absX, sectionSize)
	modZ := mathx.Mod(absZ, sectionSize)
	if modX < plotSize && modZ < plotSize {
		return PlotCoord{X: (absX - modX) / sectionSize, Z: (absZ - modZ) / sectionSize}, true
	}
	return PlotCoord{}, false
}
