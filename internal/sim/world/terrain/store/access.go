package store

import (
	"sort"

	"plotcraft.ai/internal/sim/world/logic/mathx"
)

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.Chunks))
	for k := range s.Chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
	return keys
}

func split(x, z int) (cx, cz, lx, lz int) {
	return mathx.FloorDiv(x, ChunkWidth), mathx.FloorDiv(z, ChunkWidth), mathx.Mod(x, ChunkWidth), mathx.Mod(z, ChunkWidth)
}

func (s *ChunkStore) GetBlock(x, y, z int) uint16 {
	if y < 0 || y >= Height {
		return 0
	}
	cx, cz, lx, lz := split(x, z)
	return s.GetOrGenChunk(cx, cz).Get(lx, y, lz)
}

func (s *ChunkStore) SetBlock(x, y, z int, state uint16) {
	if y < 0 || y >= Height {
		return
	}
	cx, cz, lx, lz := split(x, z)
	s.GetOrGenChunk(cx, cz).Set(lx, y, lz, state)
}

func (s *ChunkStore) Biome(x, z int) byte {
	cx, cz, lx, lz := split(x, z)
	return s.GetOrGenChunk(cx, cz).Biome(lx, lz)
}

func (s *ChunkStore) SetBiome(x, z int, b byte) {
	cx, cz, lx, lz := split(x, z)
	s.GetOrGenChunk(cx, cz).SetBiome(lx, lz, b)
}

func (s *ChunkStore) Loaded(cx, cz int) bool {
	_, ok := s.Chunks[ChunkKey{CX: cx, CZ: cz}]
	return ok
}

func (s *ChunkStore) GetOrGenChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	if ch, ok := s.Chunks[k]; ok {
		return ch
	}
	ch := NewChunk(cx, cz)
	s.GenerateChunk(ch)
	ch.dirty = true
	_ = ch.Digest()
	s.Chunks[k] = ch
	if s.OnGenerated != nil {
		s.OnGenerated(ch)
	}
	return ch
}
