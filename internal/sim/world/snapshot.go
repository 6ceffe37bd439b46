package world

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/terrain/store"
)

func posLess(a, b geom.BlockPos) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Z != b.Z {
		return a.Z < b.Z
	}
	return a.Y < b.Y
}

// ExportSnapshot captures every loaded chunk plus sign, skull and entity state.
func (w *World) ExportSnapshot(generator string, opts snapshot.OptionsV1) snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version:   snapshot.Version,
			WorldID:   w.id,
			Generator: generator,
			CreatedAt: w.now().UTC().Format(time.RFC3339),
		},
		Options: opts,
		Chunks:  store.ExportLoadedChunks(w.chunks.Chunks, w.chunks.LoadedChunkKeys()),
	}

	signPos := make([]geom.BlockPos, 0, len(w.signs))
	for p := range w.signs {
		signPos = append(signPos, p)
	}
	sort.Slice(signPos, func(i, j int) bool { return posLess(signPos[i], signPos[j]) })
	for _, p := range signPos {
		snap.Signs = append(snap.Signs, snapshot.SignV1{Pos: [3]int{p.X, p.Y, p.Z}, Lines: w.signs[p].Lines})
	}

	skullPos := make([]geom.BlockPos, 0, len(w.skulls))
	for p := range w.skulls {
		skullPos = append(skullPos, p)
	}
	sort.Slice(skullPos, func(i, j int) bool { return posLess(skullPos[i], skullPos[j]) })
	for _, p := range skullPos {
		s := w.skulls[p]
		sv := snapshot.SkullV1{Pos: [3]int{p.X, p.Y, p.Z}, Owner: s.Owner, Rotation: int(s.Rotation)}
		if s.OwnerUUID != nil {
			sv.OwnerUUID = s.OwnerUUID.String()
		}
		snap.Skulls = append(snap.Skulls, sv)
	}

	for _, e := range w.AllEntities() {
		snap.Entities = append(snap.Entities, snapshot.EntityV1{
			ID:   e.ID.String(),
			Kind: e.Kind,
			Pos:  [3]float64{e.Pos.X, e.Pos.Y, e.Pos.Z},
		})
	}
	return snap
}

// ImportSnapshot replaces the world state. The installed generator and
// populators are kept for chunks the snapshot does not contain.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) error {
	if snap.Header.WorldID != "" && snap.Header.WorldID != w.id {
		return fmt.Errorf("snapshot world id mismatch: world=%s snap=%s", w.id, snap.Header.WorldID)
	}
	cs, err := store.ImportChunks(w.chunks.Gen, w.chunks.Populators, snap.Chunks)
	if err != nil {
		return err
	}
	cs.OnGenerated = w.chunkGenerated

	signs := map[geom.BlockPos]*Sign{}
	for _, s := range snap.Signs {
		p := geom.BlockPos{X: s.Pos[0], Y: s.Pos[1], Z: s.Pos[2]}
		signs[p] = &Sign{Pos: p, Lines: s.Lines}
	}
	skulls := map[geom.BlockPos]*Skull{}
	for _, s := range snap.Skulls {
		p := geom.BlockPos{X: s.Pos[0], Y: s.Pos[1], Z: s.Pos[2]}
		sk := &Skull{Pos: p, Owner: s.Owner, Rotation: geom.Face(s.Rotation)}
		if s.OwnerUUID != "" {
			id, err := uuid.Parse(s.OwnerUUID)
			if err != nil {
				return fmt.Errorf("skull at %s: %w", p, err)
			}
			sk.OwnerUUID = &id
		}
		skulls[p] = sk
	}
	entities := map[uuid.UUID]*Entity{}
	for _, e := range snap.Entities {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return fmt.Errorf("entity %q: %w", e.ID, err)
		}
		entities[id] = &Entity{ID: id, Kind: e.Kind, Pos: geom.Vec3{X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2]}}
	}

	w.chunks = cs
	w.signs = signs
	w.skulls = skulls
	w.entities = entities
	return nil
}
