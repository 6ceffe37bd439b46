package store

import (
	"encoding/hex"
	"fmt"

	snapv1 "plotcraft.ai/internal/persistence/snapshot"
)

// ExportLoadedChunks converts loaded chunk data into snapshot chunks.
func ExportLoadedChunks(chunks map[ChunkKey]*Chunk, keys []ChunkKey) []snapv1.ChunkV1 {
	out := make([]snapv1.ChunkV1, 0, len(keys))
	for _, k := range keys {
		ch := chunks[k]
		if ch == nil {
			continue
		}
		var sections []snapv1.SectionV1
		for i, sec := range ch.Sections {
			if sec == nil {
				continue
			}
			blocks := make([]uint16, SectionVolume)
			copy(blocks, sec.Blocks[:])
			sections = append(sections, snapv1.SectionV1{Y: i, Blocks: blocks})
		}
		biomes := make([]byte, len(ch.Biomes))
		copy(biomes, ch.Biomes[:])
		sum := ch.Digest()
		out = append(out, snapv1.ChunkV1{
			CX:        k.CX,
			CZ:        k.CZ,
			Populated: ch.Populated,
			Sections:  sections,
			Biomes:    biomes,
			Digest:    hex.EncodeToString(sum[:]),
		})
	}
	return out
}

// ImportChunks rebuilds a chunk store from snapshot chunks. Chunks not in the
// snapshot are generated lazily by gen as usual.
func ImportChunks(gen Generator, pops []Populator, chunks []snapv1.ChunkV1) (*ChunkStore, error) {
	store := NewChunkStore(gen, pops...)
	for _, ch := range chunks {
		if len(ch.Biomes) != ChunkWidth*ChunkWidth {
			return nil, fmt.Errorf("snapshot chunk %d,%d biomes length mismatch: got %d want %d", ch.CX, ch.CZ, len(ch.Biomes), ChunkWidth*ChunkWidth)
		}
		c := NewChunk(ch.CX, ch.CZ)
		c.Populated = ch.Populated
		copy(c.Biomes[:], ch.Biomes)
		for _, sec := range ch.Sections {
			if sec.Y < 0 || sec.Y >= SectionsPerChunk {
				return nil, fmt.Errorf("snapshot chunk %d,%d section index out of range: %d", ch.CX, ch.CZ, sec.Y)
			}
			if len(sec.Blocks) != SectionVolume {
				return nil, fmt.Errorf("snapshot chunk %d,%d section %d blocks length mismatch: got %d want %d", ch.CX, ch.CZ, sec.Y, len(sec.Blocks), SectionVolume)
			}
			s := &Section{}
			copy(s.Blocks[:], sec.Blocks)
			c.Sections[sec.Y] = s
		}
		c.dirty = true
		_ = c.Digest()
		store.Chunks[ChunkKey{CX: ch.CX, CZ: ch.CZ}] = c
	}
	return store, nil
}
