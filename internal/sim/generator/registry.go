package generator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/plots"
	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/logic/geom"
)

var (
	ErrUnknownKind     = errors.New("unknown generator kind")
	ErrOptionsMismatch = errors.New("generator options do not match kind")
)

// HostWorld is the part of the host world a generator draws into.
type HostWorld interface {
	ID() string
	BlockAt(x, y, z int) world.BlockRef
	SetBiome(x, z int, b blocks.Biome)
	SetSignLines(pos geom.BlockPos, lines [4]string) error
	SetSkull(pos geom.BlockPos, s world.Skull) error
	NearbyEntities(box geom.AABB) []world.Entity
	Emit(ev world.Event)
}

// Env is what a generator needs from the host process.
type Env struct {
	World HostWorld
	Plots plots.Store
}

// Factory builds generators of one kind.
type Factory interface {
	Name() Kind
	NewGenerator(worldName string, opts Options, env Env) (Generator, error)
}

var (
	regMu     sync.RWMutex
	factories = map[Kind]Factory{}
	builtins  sync.Once
)

func registerBuiltins() {
	builtins.Do(func() {
		register(DefaultFactory{})
	})
}

func register(f Factory) bool {
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := factories[f.Name()]; ok {
		return false
	}
	factories[f.Name()] = f
	return true
}

// Register adds a factory under its name. A second registration under the same
// name is ignored and reports false.
func Register(f Factory) bool {
	registerBuiltins()
	return register(f)
}

func Lookup(name Kind) (Factory, bool) {
	registerBuiltins()
	regMu.RLock()
	defer regMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Kinds lists registered generator kinds in sorted order.
func Kinds() []Kind {
	registerBuiltins()
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Kind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// New resolves opts.Kind in the registry and builds a generator for worldName.
func New(worldName string, opts Options, env Env) (Generator, error) {
	f, ok := Lookup(opts.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
	return f.NewGenerator(worldName, opts, env)
}
