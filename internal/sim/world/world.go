package world

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/terrain/store"
)

// World is the in-memory host world a plot generator draws into.
// It is not safe for concurrent use; callers serialize access the way the
// server's world loop does.
type World struct {
	id     string
	chunks *store.ChunkStore

	signs    map[geom.BlockPos]*Sign
	skulls   map[geom.BlockPos]*Skull
	entities map[uuid.UUID]*Entity

	sinks []EventSink
	now   func() time.Time
}

func New(id string) *World {
	w := &World{
		id:       id,
		signs:    map[geom.BlockPos]*Sign{},
		skulls:   map[geom.BlockPos]*Skull{},
		entities: map[uuid.UUID]*Entity{},
		now:      time.Now,
	}
	w.chunks = store.NewChunkStore(nil)
	w.chunks.OnGenerated = w.chunkGenerated
	return w
}

func (w *World) ID() string { return w.id }

// UseGenerator installs the chunk generator and populators. It must be called
// before the first chunk is touched.
func (w *World) UseGenerator(g store.Generator, pops ...store.Populator) {
	w.chunks.Gen = g
	w.chunks.Populators = pops
}

func (w *World) Chunks() *store.ChunkStore { return w.chunks }

func (w *World) LoadChunk(cx, cz int) *store.Chunk {
	return w.chunks.GetOrGenChunk(cx, cz)
}

func (w *World) chunkGenerated(ch *store.Chunk) {
	sum := ch.Digest()
	w.Emit(Event{
		Kind:   EventChunkGenerated,
		Chunk:  &[2]int{ch.CX, ch.CZ},
		Digest: hex.EncodeToString(sum[:]),
	})
}

func (w *World) Block(x, y, z int) blocks.Type {
	return blocks.FromState(w.chunks.GetBlock(x, y, z))
}

func (w *World) SetBlock(x, y, z int, t blocks.Type) {
	if y < 0 || y >= store.Height {
		return
	}
	pos := geom.BlockPos{X: x, Y: y, Z: z}
	if t.Material != blocks.WallSign && t.Material != blocks.SignPost {
		delete(w.signs, pos)
	}
	if t.Material != blocks.Skull {
		delete(w.skulls, pos)
	}
	w.chunks.SetBlock(x, y, z, t.State())
}

// BlockRef is a handle to one world position that block types render onto.
type BlockRef struct {
	w   *World
	Pos geom.BlockPos
}

func (w *World) BlockAt(x, y, z int) BlockRef {
	return BlockRef{w: w, Pos: geom.BlockPos{X: x, Y: y, Z: z}}
}

func (b BlockRef) SetType(t blocks.Type) { b.w.SetBlock(b.Pos.X, b.Pos.Y, b.Pos.Z, t) }
func (b BlockRef) Type() blocks.Type     { return b.w.Block(b.Pos.X, b.Pos.Y, b.Pos.Z) }

func (w *World) Biome(x, z int) blocks.Biome {
	return blocks.Biome(w.chunks.Biome(x, z))
}

func (w *World) SetBiome(x, z int, b blocks.Biome) {
	w.chunks.SetBiome(x, z, byte(b))
}
