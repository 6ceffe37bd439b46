package world

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/terrain/store"
)

type floorGen struct{}

func (floorGen) GenerateChunk(cx, cz int, ch *store.Chunk) {
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			ch.Set(x, 0, z, blocks.Of(blocks.Bedrock).State())
		}
	}
}

type memSink struct{ events []Event }

func (s *memSink) WriteEvent(ev Event) error {
	s.events = append(s.events, ev)
	return nil
}

func TestWorldGeneratesChunksAndEmitsEvents(t *testing.T) {
	w := New("plots")
	sink := &memSink{}
	w.AddSink(sink)
	w.UseGenerator(floorGen{})

	if got := w.Block(-5, 0, 40); got.Material != blocks.Bedrock {
		t.Fatalf("expected generated bedrock, got %v", got)
	}
	_ = w.Block(-6, 0, 41)
	if len(sink.events) != 1 {
		t.Fatalf("expected one CHUNK_GENERATED event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != EventChunkGenerated || ev.World != "plots" || ev.Chunk == nil || *ev.Chunk != [2]int{-1, 2} || ev.Digest == "" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSignAndSkullRequireMatchingBlock(t *testing.T) {
	w := New("plots")
	pos := geom.BlockPos{X: 3, Y: 65, Z: -2}

	if err := w.SetSignLines(pos, [4]string{"a"}); !errors.Is(err, ErrNotATileEntity) {
		t.Fatalf("expected ErrNotATileEntity, got %v", err)
	}
	blocks.Type{Material: blocks.WallSign, Data: 4}.Apply(w.BlockAt(pos.X, pos.Y, pos.Z))
	if err := w.SetSignLines(pos, [4]string{"0:0", "", "alice", ""}); err != nil {
		t.Fatalf("set sign: %v", err)
	}
	if s, ok := w.Sign(pos); !ok || s.Lines[2] != "alice" {
		t.Fatalf("sign not stored: %+v", s)
	}

	// Replacing the block drops the sign text.
	w.SetBlock(pos.X, pos.Y, pos.Z, blocks.AirType)
	if _, ok := w.Sign(pos); ok {
		t.Fatalf("sign state should be cleared with the block")
	}

	skullPos := pos
	skullPos.Y++
	w.SetBlock(skullPos.X, skullPos.Y, skullPos.Z, blocks.Type{Material: blocks.Skull, Data: 1})
	id := uuid.New()
	if err := w.SetSkull(skullPos, Skull{OwnerUUID: &id, Rotation: geom.FaceWest}); err != nil {
		t.Fatalf("set skull: %v", err)
	}
	if s, ok := w.Skull(skullPos); !ok || s.OwnerUUID == nil || *s.OwnerUUID != id || s.Pos != skullPos {
		t.Fatalf("skull not stored: %+v", s)
	}
}

func TestNearbyEntities(t *testing.T) {
	w := New("plots")
	in := w.AddEntity(Entity{Kind: "COW", Pos: geom.Vec3{X: 5, Y: 65, Z: 5}})
	w.AddEntity(Entity{Kind: "PIG", Pos: geom.Vec3{X: 50, Y: 65, Z: 5}})

	got := w.NearbyEntities(geom.AABB{Center: geom.Vec3{X: 4, Y: 128, Z: 4}, HalfX: 3.7, HalfY: 128, HalfZ: 3.7})
	if len(got) != 1 || got[0].ID != in {
		t.Fatalf("unexpected entities: %+v", got)
	}
	w.RemoveEntity(in)
	if len(w.AllEntities()) != 1 {
		t.Fatalf("remove failed")
	}
}

func TestBiomes(t *testing.T) {
	w := New("plots")
	w.SetBiome(-1, -1, blocks.Desert)
	if w.Biome(-1, -1) != blocks.Desert || w.Biome(0, 0) != blocks.Ocean {
		t.Fatalf("unexpected biomes")
	}
}
