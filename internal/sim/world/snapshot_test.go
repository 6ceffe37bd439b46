package world

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/logic/geom"
)

func TestSnapshotRoundTrip(t *testing.T) {
	w := New("plots")
	w.UseGenerator(floorGen{})
	w.LoadChunk(0, 0)
	w.LoadChunk(-1, 3)

	signPos := geom.BlockPos{X: 1, Y: 65, Z: 1}
	w.SetBlock(signPos.X, signPos.Y, signPos.Z, blocks.Type{Material: blocks.WallSign, Data: 4})
	if err := w.SetSignLines(signPos, [4]string{"0:0", "", "bob", ""}); err != nil {
		t.Fatalf("sign: %v", err)
	}
	skullPos := geom.BlockPos{X: 2, Y: 66, Z: 1}
	w.SetBlock(skullPos.X, skullPos.Y, skullPos.Z, blocks.Type{Material: blocks.Skull, Data: 1})
	id := uuid.New()
	if err := w.SetSkull(skullPos, Skull{Owner: "bob", OwnerUUID: &id, Rotation: geom.FaceWest}); err != nil {
		t.Fatalf("skull: %v", err)
	}
	w.SetBiome(3, 3, blocks.Jungle)
	eid := w.AddEntity(Entity{Kind: "COW", Pos: geom.Vec3{X: 1.5, Y: 65, Z: 2.5}})

	path := filepath.Join(t.TempDir(), "w.snap.zst")
	snap := w.ExportSnapshot("default", snapshot.OptionsV1{Kind: "default", PlotSize: 7})
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	read, err := snapshot.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	w2 := New("plots")
	w2.UseGenerator(floorGen{})
	if err := w2.ImportSnapshot(read); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(w2.Chunks().Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(w2.Chunks().Chunks))
	}
	if s, ok := w2.Sign(signPos); !ok || s.Lines[2] != "bob" {
		t.Fatalf("sign lost: %+v", s)
	}
	if s, ok := w2.Skull(skullPos); !ok || s.OwnerUUID == nil || *s.OwnerUUID != id || s.Rotation != geom.FaceWest {
		t.Fatalf("skull lost: %+v", s)
	}
	if w2.Biome(3, 3) != blocks.Jungle {
		t.Fatalf("biome lost")
	}
	if es := w2.AllEntities(); len(es) != 1 || es[0].ID != eid {
		t.Fatalf("entities lost: %+v", es)
	}
	for _, k := range w.Chunks().LoadedChunkKeys() {
		if w.Chunks().Chunks[k].Digest() != w2.Chunks().Chunks[k].Digest() {
			t.Fatalf("chunk %v digest differs after import", k)
		}
	}
}

func TestImportSnapshotRejectsOtherWorld(t *testing.T) {
	w := New("plots")
	err := w.ImportSnapshot(snapshot.SnapshotV1{Header: snapshot.Header{Version: snapshot.Version, WorldID: "other"}})
	if err == nil {
		t.Fatalf("expected world id mismatch error")
	}
}
