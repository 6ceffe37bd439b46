package multiworld

import (
	"context"
	"testing"

	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/terrain/gen"
)

type digestSink map[[2]int]string

func (d digestSink) WriteEvent(ev world.Event) error {
	if ev.Kind == world.EventChunkGenerated && ev.Chunk != nil {
		d[*ev.Chunk] = ev.Digest
	}
	return nil
}

func TestVerifyGeneration(t *testing.T) {
	m, err := NewManager(testConfig(t), ManagerOptions{})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	defer m.Close()
	rt := m.Default()
	generated := digestSink{}
	rt.World.AddSink(generated)

	if _, err := m.Pregenerate(context.Background(), "plots", 2); err != nil {
		t.Fatalf("pregenerate: %v", err)
	}
	if err := m.ApplyPlots("plots"); err != nil {
		t.Fatalf("apply plots: %v", err)
	}
	opts := rt.Generator.Options()
	snap := rt.World.ExportSnapshot(string(opts.Kind), opts.ToSnapshot())

	rep, err := VerifyGeneration(snap, generated)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !rep.OK() || rep.Checked != len(generated) {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Edited == 0 {
		t.Fatalf("owner signage should show up as edited chunks")
	}

	for k := range generated {
		generated[k] = "00"
		break
	}
	rep, err = VerifyGeneration(snap, generated)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if rep.OK() || len(rep.Mismatches) != 1 {
		t.Fatalf("expected exactly one mismatch: %+v", rep)
	}
}

func TestRestoreRuntime(t *testing.T) {
	m, err := NewManager(testConfig(t), ManagerOptions{})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	defer m.Close()
	if err := m.ApplyPlots("plots"); err != nil {
		t.Fatalf("apply plots: %v", err)
	}
	rt := m.Default()
	opts := rt.Generator.Options()
	snap := rt.World.ExportSnapshot(string(opts.Kind), opts.ToSnapshot())

	restored, err := RestoreRuntime(snap, m.Plots())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.World.ID() != "plots" || restored.Generator.Config().PlotSize() != 8 {
		t.Fatalf("unexpected runtime: %+v", restored.Spec)
	}
	p := restored.Generator.PlotByID(gen.PlotCoord{})
	b := restored.Generator.BottomCoord(p)
	if got, want := restored.World.Block(b.X-2, 11, b.Z-1), rt.World.Block(b.X-2, 11, b.Z-1); got != want {
		t.Fatalf("sign block not restored: %v want %v", got, want)
	}
	if p.Owner() == nil || p.Owner().Name != "alice" {
		t.Fatalf("plot data should come from the store: %+v", p)
	}
}
