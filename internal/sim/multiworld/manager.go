package multiworld

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"plotcraft.ai/internal/persistence/indexdb"
	gamelog "plotcraft.ai/internal/persistence/log"
	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/generator"
	"plotcraft.ai/internal/sim/plots"
	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/logic/mathx"
)

// Runtime is one configured world with its generator.
type Runtime struct {
	Spec      WorldSpec
	World     *world.World
	Generator generator.Generator
	Dir       string

	events *gamelog.GenLogger
}

type ManagerOptions struct {
	// DataDir holds per-world event logs and snapshots. Empty disables both.
	DataDir string
	Index   *indexdb.SQLiteIndex
	Plots   *plots.MemStore
	Logger  *log.Logger
}

type Manager struct {
	mu sync.RWMutex

	runtimes  map[string]*Runtime
	order     []string
	defaultID string
	dataDir   string
	index     *indexdb.SQLiteIndex
	plots     *plots.MemStore
	logger    *log.Logger

	closeOnce sync.Once
}

func NewManager(cfg Config, opts ManagerOptions) (*Manager, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		runtimes:  map[string]*Runtime{},
		defaultID: cfg.DefaultWorldID,
		dataDir:   opts.DataDir,
		index:     opts.Index,
		plots:     opts.Plots,
		logger:    opts.Logger,
	}
	if m.plots == nil {
		m.plots = plots.NewMemStore()
	}
	if m.logger == nil {
		m.logger = log.New(os.Stderr, "[worlds] ", log.LstdFlags|log.Lmicroseconds)
	}
	for _, spec := range cfg.Worlds {
		rt, err := m.newRuntime(spec)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m.runtimes[spec.ID] = rt
		m.order = append(m.order, spec.ID)
	}
	return m, nil
}

func (m *Manager) newRuntime(spec WorldSpec) (*Runtime, error) {
	opts, err := spec.GeneratorOptions()
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", spec.ID, err)
	}
	w := world.New(spec.ID)
	g, err := generator.New(spec.ID, opts, generator.Env{World: w, Plots: m.plots})
	if err != nil {
		return nil, err
	}
	w.UseGenerator(g, g)

	rt := &Runtime{Spec: spec, World: w, Generator: g}
	if m.dataDir != "" {
		rt.Dir = filepath.Join(m.dataDir, "worlds", spec.ID)
		rt.events = gamelog.NewGenLogger(rt.Dir)
		w.AddSink(rt.events)
	}
	if m.index != nil {
		if err := m.index.UpsertWorld(spec.ID, opts.ToSnapshot()); err != nil {
			m.logger.Printf("index world %s: %v", spec.ID, err)
		}
		w.AddSink(m.index)
	}

	seeds, err := spec.PlotSeeds()
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", spec.ID, err)
	}
	for _, s := range seeds {
		if s.Owner != "" || s.UUID != nil {
			m.plots.SetOwner(spec.ID, s.Coord, &plots.Owner{Name: s.Owner, UUID: s.UUID})
		}
	}
	return rt, nil
}

func (m *Manager) Runtime(id string) (*Runtime, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rt, ok := m.runtimes[id]
	return rt, ok
}

func (m *Manager) Default() *Runtime {
	rt, _ := m.Runtime(m.defaultID)
	return rt
}

func (m *Manager) DefaultWorldID() string { return m.defaultID }

// WorldIDs lists worlds in configuration order.
func (m *Manager) WorldIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

func (m *Manager) Plots() *plots.MemStore { return m.plots }

// Pregenerate loads every chunk within radius chunks of the world spawn.
// It returns the number of chunks that were newly generated.
func (m *Manager) Pregenerate(ctx context.Context, id string, radius int) (int, error) {
	rt, ok := m.Runtime(id)
	if !ok {
		return 0, fmt.Errorf("unknown world: %s", id)
	}
	if radius < 0 {
		radius = 0
	}
	spawn := rt.Generator.SpawnLocation()
	scx := mathx.FloorDiv(int(math.Floor(spawn.X)), 16)
	scz := mathx.FloorDiv(int(math.Floor(spawn.Z)), 16)

	m.mu.Lock()
	defer m.mu.Unlock()
	chunks := rt.World.Chunks()
	n := 0
	for cx := scx - radius; cx <= scx+radius; cx++ {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		for cz := scz - radius; cz <= scz+radius; cz++ {
			if chunks.Loaded(cx, cz) {
				continue
			}
			rt.World.LoadChunk(cx, cz)
			n++
		}
	}
	return n, nil
}

// ApplyPlots redraws owner signage and paints biomes for every configured plot.
func (m *Manager) ApplyPlots(id string) error {
	rt, ok := m.Runtime(id)
	if !ok {
		return fmt.Errorf("unknown world: %s", id)
	}
	seeds, err := rt.Spec.PlotSeeds()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range seeds {
		p := rt.Generator.PlotByID(s.Coord)
		if err := rt.Generator.UpdateOwner(p); err != nil {
			return fmt.Errorf("world %s plot %s: %w", id, p.ID(), err)
		}
		if s.HasBiome {
			rt.Generator.SetBiome(p, s.Biome)
		}
	}
	return nil
}

// SaveSnapshot writes every loaded chunk of a world to
// <data>/worlds/<id>/snapshots/<unixnano>.snap.zst and returns the path.
func (m *Manager) SaveSnapshot(id string) (string, error) {
	rt, ok := m.Runtime(id)
	if !ok {
		return "", fmt.Errorf("unknown world: %s", id)
	}
	if rt.Dir == "" {
		return "", fmt.Errorf("world %s: no data dir", id)
	}

	m.mu.Lock()
	opts := rt.Generator.Options()
	snap := rt.World.ExportSnapshot(string(opts.Kind), opts.ToSnapshot())
	m.mu.Unlock()

	path := filepath.Join(rt.Dir, "snapshots", fmt.Sprintf("%d.snap.zst", time.Now().UnixNano()))
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		return "", fmt.Errorf("world %s snapshot: %w", id, err)
	}
	if m.index != nil {
		m.index.RecordSnapshot(path, snap)
	}
	rt.World.Emit(world.Event{
		Kind: world.EventSnapshotWritten,
		Details: map[string]any{
			"path":   path,
			"chunks": len(snap.Chunks),
		},
	})
	return path, nil
}

// LatestSnapshot returns the newest snapshot file of a world, if any.
func LatestSnapshot(dataDir, id string) (string, bool) {
	matches, _ := filepath.Glob(filepath.Join(dataDir, "worlds", id, "snapshots", "*.snap.zst"))
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

func (m *Manager) Close() error {
	var firstErr error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, id := range m.order {
			rt := m.runtimes[id]
			if rt == nil || rt.events == nil {
				continue
			}
			if err := rt.events.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	})
	return firstErr
}
