package generator

import (
	"fmt"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/plots"
	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/terrain/gen"
	"plotcraft.ai/internal/sim/world/terrain/store"
)

type DefaultFactory struct{}

func (DefaultFactory) Name() Kind { return KindDefault }

func (DefaultFactory) NewGenerator(worldName string, opts Options, env Env) (Generator, error) {
	if opts.Kind != KindDefault || opts.Default == nil {
		return nil, fmt.Errorf("%w: kind %q", ErrOptionsMismatch, opts.Kind)
	}
	return NewDefault(worldName, *opts.Default, env)
}

// DefaultGenerator lays out square plots with a one-block wall and paths between them.
type DefaultGenerator struct {
	name string
	o    DefaultOptions
	cfg  *gen.Config
	env  Env

	dataPalette gen.Palette[byte]
}

var _ Generator = (*DefaultGenerator)(nil)

func NewDefault(worldName string, o DefaultOptions, env Env) (*DefaultGenerator, error) {
	cfg, err := gen.NewConfig(o.Settings())
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", worldName, err)
	}
	return &DefaultGenerator{
		name:        worldName,
		o:           o,
		cfg:         cfg,
		env:         env,
		dataPalette: gen.Map(cfg.Palette(), func(t blocks.Type) byte { return t.Data }),
	}, nil
}

func (g *DefaultGenerator) Kind() Kind          { return KindDefault }
func (g *DefaultGenerator) Config() *gen.Config { return g.cfg }

func (g *DefaultGenerator) Options() Options {
	o := g.o
	return Options{Kind: KindDefault, Default: &o}
}

// GenerateChunk writes full block states, including zero-valued ones.
func (g *DefaultGenerator) GenerateChunk(cx, cz int, ch *store.Chunk) {
	gen.Rasterize(g.cfg, cx, cz, g.cfg.Palette(), func(x, y, z int, t blocks.Type) {
		ch.Set(x, y, z, t.State())
	})
}

// Populate re-applies the palette data values over an existing chunk.
// Zero data values are skipped; the bulk pass already left them at zero.
func (g *DefaultGenerator) Populate(ch *store.Chunk) {
	gen.Rasterize(g.cfg, ch.CX, ch.CZ, g.dataPalette, func(x, y, z int, data byte) {
		if data == 0 {
			return
		}
		ch.SetData(x, y, z, data)
	})
}

func (g *DefaultGenerator) SpawnLocation() geom.Location {
	fix := g.cfg.SpawnOffset()
	return geom.Location{
		World: g.name,
		X:     float64(g.o.OffsetX) + fix,
		Y:     float64(g.o.FloorHeight) + 1,
		Z:     float64(g.o.OffsetZ) + fix,
	}
}

func (g *DefaultGenerator) PlotByID(c gen.PlotCoord) plots.Plot {
	p := plots.Plot{World: g.name, Coord: c}
	if g.env.Plots != nil {
		if d, ok := g.env.Plots.Data(g.name, c); ok {
			p.Data = d
		}
	}
	return p
}

func (g *DefaultGenerator) PlotAt(x, z int) (plots.Plot, bool) {
	c, ok := g.cfg.PlotAt(x, z)
	if !ok {
		return plots.Plot{}, false
	}
	return g.PlotByID(c), true
}

func (g *DefaultGenerator) BottomCoord(p plots.Plot) geom.Vec2i {
	return g.cfg.BottomCorner(p.Coord)
}

func (g *DefaultGenerator) HomeLocation(p plots.Plot) geom.Location {
	b := g.BottomCoord(p)
	return geom.Location{
		World: g.name,
		X:     float64(b.X),
		Y:     float64(g.o.FloorHeight) + 1,
		Z:     float64(b.Z) + float64(g.o.PlotSize-1)/2,
		Yaw:   -90,
	}
}

// UpdateOwner redraws the wall corner, sign and skull just outside the plot's
// bottom corner. Without an owner the corner goes back to plain wall.
func (g *DefaultGenerator) UpdateOwner(p plots.Plot) error {
	w := g.env.World
	b := g.BottomCoord(p)
	y := g.o.FloorHeight + 1

	wallPos := geom.BlockPos{X: b.X - 1, Y: y, Z: b.Z - 1}
	signPos := geom.BlockPos{X: b.X - 2, Y: y, Z: b.Z - 1}
	skullPos := geom.BlockPos{X: b.X - 1, Y: y + 1, Z: b.Z - 1}

	at := func(p geom.BlockPos) world.BlockRef { return w.BlockAt(p.X, p.Y, p.Z) }

	owner := p.Owner()
	if owner == nil {
		g.o.WallType.Apply(at(wallPos))
		blocks.AirType.Apply(at(signPos))
		blocks.AirType.Apply(at(skullPos))
		w.Emit(world.Event{Kind: world.EventOwnerUpdated, Plot: p.ID()})
		return nil
	}

	g.o.WallType.WithMaterial(g.o.WallType.Material.Doubled()).Apply(at(wallPos))

	blocks.Type{Material: blocks.WallSign, Data: 4}.Apply(at(signPos))
	if err := w.SetSignLines(signPos, [4]string{p.ID(), "", owner.PlayerName(), ""}); err != nil {
		return err
	}

	blocks.Type{Material: blocks.Skull, Data: 1}.Apply(at(skullPos))
	skull := world.Skull{Rotation: geom.FaceWest}
	if owner.UUID != nil {
		id := *owner.UUID
		skull.OwnerUUID = &id
	} else {
		skull.Owner = owner.Name
	}
	if err := w.SetSkull(skullPos, skull); err != nil {
		return err
	}

	w.Emit(world.Event{
		Kind:    world.EventOwnerUpdated,
		Plot:    p.ID(),
		Details: map[string]any{"owner": owner.PlayerName()},
	})
	return nil
}

func (g *DefaultGenerator) SetBiome(p plots.Plot, biome blocks.Biome) {
	w := g.env.World
	b := g.BottomCoord(p)
	size := g.o.PlotSize
	for x := b.X; x < b.X+size; x++ {
		for z := b.Z; z < b.Z+size; z++ {
			w.SetBiome(x, z, biome)
		}
	}
	w.Emit(world.Event{
		Kind:    world.EventBiomeSet,
		Plot:    p.ID(),
		Details: map[string]any{"biome": biome.String()},
	})
}

func (g *DefaultGenerator) Entities(p plots.Plot) []world.Entity {
	b := g.BottomCoord(p)
	half := float64(g.o.PlotSize) / 2
	return g.env.World.NearbyEntities(geom.AABB{
		Center: geom.Vec3{X: float64(b.X) + half, Y: 128, Z: float64(b.Z) + half},
		HalfX:  half + 0.2,
		HalfY:  128,
		HalfZ:  half + 0.2,
	})
}

func (g *DefaultGenerator) Blocks(p plots.Plot, yMin, yMax int) *BlockIter {
	b := g.BottomCoord(p)
	return newBlockIter(g.env.World, b, g.o.PlotSize, yMin, yMax)
}
