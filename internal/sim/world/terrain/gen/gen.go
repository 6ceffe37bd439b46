package gen

import (
	"errors"
	"fmt"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/logic/mathx"
)

var ErrInvalidConfig = errors.New("invalid generation config")

// MaxFloorHeight keeps the wall and the owner skull (floor+2) inside the 256-block column.
const MaxFloorHeight = 253

// Palette holds one value per surface role. The rasterizer is generic over it so
// the same loop can emit full block types or bare data values.
type Palette[T any] struct {
	Floor    T
	Wall     T
	PathMain T
	PathAlt  T
	Fill     T
}

// Map converts every entry of a palette.
func Map[T, U any](p Palette[T], f func(T) U) Palette[U] {
	return Palette[U]{
		Floor:    f(p.Floor),
		Wall:     f(p.Wall),
		PathMain: f(p.PathMain),
		PathAlt:  f(p.PathAlt),
		Fill:     f(p.Fill),
	}
}

type Settings struct {
	PlotSize    int
	PathSize    int
	FloorHeight int
	OffsetX     int
	OffsetZ     int
	Palette     Palette[blocks.Type]
}

// Config is the immutable per-world tiling configuration.
type Config struct {
	s Settings

	sectionSize  int
	pathOffset   int
	makePathMain bool
	makePathAlt  bool
}

func NewConfig(s Settings) (*Config, error) {
	if s.PlotSize <= 0 {
		return nil, fmt.Errorf("%w: plot size must be > 0, got %d", ErrInvalidConfig, s.PlotSize)
	}
	if s.PathSize < 0 {
		return nil, fmt.Errorf("%w: path size must be >= 0, got %d", ErrInvalidConfig, s.PathSize)
	}
	if s.FloorHeight < 0 || s.FloorHeight > MaxFloorHeight {
		return nil, fmt.Errorf("%w: floor height must be in [0,%d], got %d", ErrInvalidConfig, MaxFloorHeight, s.FloorHeight)
	}

	c := &Config{
		s:            s,
		sectionSize:  s.PlotSize + s.PathSize,
		makePathMain: s.PathSize > 2,
		makePathAlt:  s.PathSize > 4,
	}
	if s.PathSize%2 == 0 {
		c.pathOffset = (s.PathSize + 2) / 2
	} else {
		c.pathOffset = (s.PathSize + 1) / 2
	}
	return c, nil
}

func MustConfig(s Settings) *Config {
	c, err := NewConfig(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) Settings() Settings            { return c.s }
func (c *Config) PlotSize() int                 { return c.s.PlotSize }
func (c *Config) PathSize() int                 { return c.s.PathSize }
func (c *Config) FloorHeight() int              { return c.s.FloorHeight }
func (c *Config) OffsetX() int                  { return c.s.OffsetX }
func (c *Config) OffsetZ() int                  { return c.s.OffsetZ }
func (c *Config) Palette() Palette[blocks.Type] { return c.s.Palette }
func (c *Config) SectionSize() int              { return c.sectionSize }
func (c *Config) PathOffset() int               { return c.pathOffset }
func (c *Config) MakePathMain() bool            { return c.makePathMain }
func (c *Config) MakePathAlt() bool             { return c.makePathAlt }

// SpawnOffset centers the spawn on the seam between two blocks when the plot
// size is even.
func (c *Config) SpawnOffset() float64 {
	if mathx.Even(c.s.PlotSize) {
		return 0.5
	}
	return 0
}
