package store

import (
	"testing"

	snapv1 "plotcraft.ai/internal/persistence/snapshot"
)

func TestExportAndImportChunksRoundTrip(t *testing.T) {
	s := NewChunkStore(nil)
	ch := NewChunk(1, -2)
	ch.Set(0, 0, 0, 7<<4)
	ch.Set(3, 70, 9, 44<<4|2)
	ch.SetBiome(5, 5, 4)
	s.Chunks[ChunkKey{CX: ch.CX, CZ: ch.CZ}] = ch

	keys := []ChunkKey{{CX: 1, CZ: -2}}
	exported := ExportLoadedChunks(s.Chunks, keys)
	if len(exported) != 1 {
		t.Fatalf("expected 1 exported chunk, got %d", len(exported))
	}
	if len(exported[0].Sections) != 2 {
		t.Fatalf("expected only non-empty sections, got %d", len(exported[0].Sections))
	}

	imported, err := ImportChunks(nil, nil, exported)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got := imported.Chunks[ChunkKey{CX: 1, CZ: -2}]
	if got == nil {
		t.Fatalf("missing imported chunk")
	}
	if got.Get(0, 0, 0) != 7<<4 || got.Get(3, 70, 9) != 44<<4|2 || got.Biome(5, 5) != 4 {
		t.Fatalf("unexpected imported blocks: got %d,%d biome %d", got.Get(0, 0, 0), got.Get(3, 70, 9), got.Biome(5, 5))
	}
	if got.Digest() != ch.Digest() {
		t.Fatalf("digest changed across export/import")
	}
}

func TestImportChunksRejectsInvalidShape(t *testing.T) {
	_, err := ImportChunks(nil, nil, []snapv1.ChunkV1{{
		CX:       0,
		CZ:       0,
		Biomes:   make([]byte, 256),
		Sections: []snapv1.SectionV1{{Y: 16, Blocks: make([]uint16, SectionVolume)}},
	}})
	if err == nil {
		t.Fatalf("expected error for out of range section")
	}

	_, err = ImportChunks(nil, nil, []snapv1.ChunkV1{{CX: 0, CZ: 0, Biomes: make([]byte, 3)}})
	if err == nil {
		t.Fatalf("expected error for invalid biome grid")
	}
}
