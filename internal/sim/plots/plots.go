package plots

import (
	"sync"

	"github.com/google/uuid"

	"plotcraft.ai/internal/sim/world/terrain/gen"
)

// Owner identifies a plot owner. Either field may be empty; UUID wins when both are set.
type Owner struct {
	Name string
	UUID *uuid.UUID
}

func (o Owner) PlayerName() string {
	if o.Name != "" {
		return o.Name
	}
	if o.UUID != nil {
		return o.UUID.String()
	}
	return ""
}

// Data is the externally stored metadata of a plot.
type Data struct {
	Owner *Owner
}

type Plot struct {
	World string
	Coord gen.PlotCoord
	Data  *Data
}

// ID is the short identifier rendered on the owner sign.
func (p Plot) ID() string { return p.Coord.String() }

func (p Plot) Owner() *Owner {
	if p.Data == nil {
		return nil
	}
	return p.Data.Owner
}

// Store is the external plot metadata store. The generator only reads from it.
type Store interface {
	Data(world string, c gen.PlotCoord) (*Data, bool)
}

type key struct {
	world string
	coord gen.PlotCoord
}

// MemStore is an in-process Store, mostly for tools and tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[key]*Data
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[key]*Data{}}
}

func (s *MemStore) Data(world string, c gen.PlotCoord) (*Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[key{world, c}]
	if !ok {
		return nil, false
	}
	cp := *d
	return &cp, true
}

func (s *MemStore) SetOwner(world string, c gen.PlotCoord, owner *Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner == nil {
		delete(s.data, key{world, c})
		return
	}
	o := *owner
	s.data[key{world, c}] = &Data{Owner: &o}
}
