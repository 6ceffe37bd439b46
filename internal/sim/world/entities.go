package world

import (
	"sort"

	"github.com/google/uuid"

	"plotcraft.ai/internal/sim/world/logic/geom"
)

type Entity struct {
	ID   uuid.UUID
	Kind string
	Pos  geom.Vec3
}

// AddEntity registers an entity, assigning a random id when none is set.
func (w *World) AddEntity(e Entity) uuid.UUID {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	w.entities[e.ID] = &e
	return e.ID
}

func (w *World) RemoveEntity(id uuid.UUID) {
	delete(w.entities, id)
}

// NearbyEntities returns the entities inside box, ordered by id.
func (w *World) NearbyEntities(box geom.AABB) []Entity {
	out := make([]Entity, 0, 8)
	for _, e := range w.entities {
		if box.Contains(e.Pos) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// AllEntities returns every entity ordered by id.
func (w *World) AllEntities() []Entity {
	out := make([]Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}
