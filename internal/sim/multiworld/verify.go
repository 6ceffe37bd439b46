package multiworld

import (
	"encoding/hex"
	"fmt"
	"sort"

	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/generator"
	"plotcraft.ai/internal/sim/plots"
	"plotcraft.ai/internal/sim/world"
)

// RestoreRuntime rebuilds a world from a snapshot with a generator built from
// the snapshot's own options. Chunks missing from the snapshot generate lazily.
func RestoreRuntime(snap snapshot.SnapshotV1, ps plots.Store) (*Runtime, error) {
	opts, err := generator.OptionsFromSnapshot(snap.Options)
	if err != nil {
		return nil, err
	}
	id := snap.Header.WorldID
	w := world.New(id)
	g, err := generator.New(id, opts, generator.Env{World: w, Plots: ps})
	if err != nil {
		return nil, err
	}
	w.UseGenerator(g, g)
	if err := w.ImportSnapshot(snap); err != nil {
		return nil, err
	}
	return &Runtime{Spec: WorldSpec{ID: id, Generator: string(opts.Kind)}, World: w, Generator: g}, nil
}

type VerifyReport struct {
	Checked    int
	Edited     int
	Mismatches [][2]int
}

func (r VerifyReport) OK() bool { return len(r.Mismatches) == 0 }

// VerifyGeneration regenerates chunks from scratch with the snapshot's options.
// Every chunk in generated (digests recorded at generation time) must match.
// Snapshot chunks that differ from a fresh generation count as edited; owner
// signage and biome paint make that normal.
func VerifyGeneration(snap snapshot.SnapshotV1, generated map[[2]int]string) (VerifyReport, error) {
	opts, err := generator.OptionsFromSnapshot(snap.Options)
	if err != nil {
		return VerifyReport{}, err
	}
	w := world.New(snap.Header.WorldID)
	g, err := generator.New(snap.Header.WorldID, opts, generator.Env{World: w})
	if err != nil {
		return VerifyReport{}, err
	}
	w.UseGenerator(g, g)

	fresh := func(c [2]int) string {
		sum := w.LoadChunk(c[0], c[1]).Digest()
		return hex.EncodeToString(sum[:])
	}

	var rep VerifyReport
	keys := make([][2]int, 0, len(generated))
	for k := range generated {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		rep.Checked++
		if fresh(k) != generated[k] {
			rep.Mismatches = append(rep.Mismatches, k)
		}
	}
	for _, ch := range snap.Chunks {
		if ch.Digest == "" {
			return rep, fmt.Errorf("chunk %d,%d: missing digest", ch.CX, ch.CZ)
		}
		if fresh([2]int{ch.CX, ch.CZ}) != ch.Digest {
			rep.Edited++
		}
	}
	return rep, nil
}
