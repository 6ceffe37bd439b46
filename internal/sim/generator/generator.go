package generator

import (
	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/plots"
	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/terrain/gen"
	"plotcraft.ai/internal/sim/world/terrain/store"
)

// Generator fills chunks of a plot world and provides the per-plot utilities
// built on its coordinate mapping.
type Generator interface {
	store.Generator
	store.Populator

	Kind() Kind
	Options() Options
	Config() *gen.Config

	SpawnLocation() geom.Location
	PlotAt(x, z int) (plots.Plot, bool)
	PlotByID(c gen.PlotCoord) plots.Plot
	BottomCoord(p plots.Plot) geom.Vec2i
	HomeLocation(p plots.Plot) geom.Location

	UpdateOwner(p plots.Plot) error
	SetBiome(p plots.Plot, b blocks.Biome)
	Entities(p plots.Plot) []world.Entity
	Blocks(p plots.Plot, yMin, yMax int) *BlockIter
}
