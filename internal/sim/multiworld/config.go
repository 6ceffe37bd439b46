package multiworld

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/generator"
	"plotcraft.ai/internal/sim/world/terrain/gen"
)

//go:embed worlds.schema.json
var worldsSchemaJSON string

var worldsSchema = jsonschema.MustCompileString("worlds.schema.json", worldsSchemaJSON)

const DefaultPregenRadius = 4

type Config struct {
	DefaultWorldID string      `yaml:"default_world_id"`
	Worlds         []WorldSpec `yaml:"worlds"`
}

type WorldSpec struct {
	ID           string      `yaml:"id"`
	Generator    string      `yaml:"generator"`
	Options      OptionsSpec `yaml:"options"`
	PregenRadius *int        `yaml:"pregen_radius,omitempty"`
	Plots        []PlotSpec  `yaml:"plots,omitempty"`
}

// OptionsSpec mirrors generator.DefaultOptions with block types as names.
// Unset fields take the built-in defaults.
type OptionsSpec struct {
	PlotSize    *int `yaml:"plot_size,omitempty"`
	PathSize    *int `yaml:"path_size,omitempty"`
	FloorHeight *int `yaml:"floor_height,omitempty"`
	OffsetX     int  `yaml:"offset_x,omitempty"`
	OffsetZ     int  `yaml:"offset_z,omitempty"`

	FloorType    string `yaml:"floor_type,omitempty"`
	WallType     string `yaml:"wall_type,omitempty"`
	PathMainType string `yaml:"path_main_type,omitempty"`
	PathAltType  string `yaml:"path_alt_type,omitempty"`
	FillType     string `yaml:"fill_type,omitempty"`
}

// PlotSpec seeds the plot store with an owner and/or biome for one plot.
type PlotSpec struct {
	ID    string `yaml:"id"`
	Owner string `yaml:"owner,omitempty"`
	UUID  string `yaml:"uuid,omitempty"`
	Biome string `yaml:"biome,omitempty"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return Parse(b)
}

// Parse decodes and checks a worlds.yaml document.
func Parse(b []byte) (Config, error) {
	if err := validateSchema(b); err != nil {
		return Config{}, fmt.Errorf("worlds.yaml: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("worlds.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("worlds.yaml: %w", err)
	}
	return cfg, nil
}

// validateSchema checks the raw document. YAML integers decode as Go ints, so
// the tree goes through JSON once to get the number types the validator expects.
func validateSchema(b []byte) error {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("empty document")
	}
	j, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(j, &doc); err != nil {
		return err
	}
	return worldsSchema.Validate(doc)
}

func defaults() Config {
	return Config{
		DefaultWorldID: "plots",
		Worlds: []WorldSpec{
			{ID: "plots", Generator: string(generator.KindDefault)},
		},
	}
}

func intPtr(v int) *int { return &v }

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	d := generator.DefaultDefaultOptions()
	for i := range c.Worlds {
		w := &c.Worlds[i]
		w.ID = strings.TrimSpace(w.ID)
		if strings.TrimSpace(w.Generator) == "" {
			w.Generator = string(generator.KindDefault)
		}
		if w.PregenRadius == nil {
			w.PregenRadius = intPtr(DefaultPregenRadius)
		}
		o := &w.Options
		if o.PlotSize == nil {
			o.PlotSize = intPtr(d.PlotSize)
		}
		if o.PathSize == nil {
			o.PathSize = intPtr(d.PathSize)
		}
		if o.FloorHeight == nil {
			o.FloorHeight = intPtr(d.FloorHeight)
		}
		fill := func(dst *string, def blocks.Type) {
			if strings.TrimSpace(*dst) == "" {
				*dst = def.String()
			}
		}
		fill(&o.FloorType, d.FloorType)
		fill(&o.WallType, d.WallType)
		fill(&o.PathMainType, d.PathMainType)
		fill(&o.PathAltType, d.PathAltType)
		fill(&o.FillType, d.FillType)
	}
	if c.DefaultWorldID == "" && len(c.Worlds) > 0 {
		c.DefaultWorldID = c.Worlds[0].ID
	}
}

func (c Config) Validate() error {
	c.Normalize()
	if len(c.Worlds) == 0 {
		return fmt.Errorf("worlds must not be empty")
	}
	seen := map[string]bool{}
	for _, w := range c.Worlds {
		if w.ID == "" {
			return fmt.Errorf("world id must not be empty")
		}
		if seen[w.ID] {
			return fmt.Errorf("duplicate world id: %s", w.ID)
		}
		seen[w.ID] = true
		if _, ok := generator.Lookup(generator.Kind(w.Generator)); !ok {
			return fmt.Errorf("world %s: %w: %q", w.ID, generator.ErrUnknownKind, w.Generator)
		}
		opts, err := w.GeneratorOptions()
		if err != nil {
			return fmt.Errorf("world %s: %w", w.ID, err)
		}
		if _, err := gen.NewConfig(opts.Default.Settings()); err != nil {
			return fmt.Errorf("world %s: %w", w.ID, err)
		}
		if *w.PregenRadius < 0 {
			return fmt.Errorf("world %s pregen_radius must be >= 0", w.ID)
		}
		plotIDs := map[gen.PlotCoord]bool{}
		for _, p := range w.Plots {
			ps, err := p.parse()
			if err != nil {
				return fmt.Errorf("world %s: %w", w.ID, err)
			}
			if plotIDs[ps.Coord] {
				return fmt.Errorf("world %s duplicate plot: %s", w.ID, ps.Coord)
			}
			plotIDs[ps.Coord] = true
		}
	}
	if !seen[c.DefaultWorldID] {
		return fmt.Errorf("default_world_id %q not found in worlds", c.DefaultWorldID)
	}
	return nil
}

func (c Config) WorldSpecByID(id string) (WorldSpec, bool) {
	for _, w := range c.Worlds {
		if w.ID == id {
			return w, true
		}
	}
	return WorldSpec{}, false
}

// GeneratorOptions resolves the spec into the tagged options of its generator kind.
// The spec must be normalized.
func (w WorldSpec) GeneratorOptions() (generator.Options, error) {
	kind := generator.Kind(w.Generator)
	if kind != generator.KindDefault {
		return generator.Options{}, fmt.Errorf("%w: %q", generator.ErrUnknownKind, w.Generator)
	}
	o := w.Options
	if o.PlotSize == nil || o.PathSize == nil || o.FloorHeight == nil {
		return generator.Options{}, fmt.Errorf("options not normalized")
	}
	d := generator.DefaultOptions{
		PlotSize:    *o.PlotSize,
		PathSize:    *o.PathSize,
		FloorHeight: *o.FloorHeight,
		OffsetX:     o.OffsetX,
		OffsetZ:     o.OffsetZ,
	}
	fields := []struct {
		name string
		raw  string
		dst  *blocks.Type
	}{
		{"floor_type", o.FloorType, &d.FloorType},
		{"wall_type", o.WallType, &d.WallType},
		{"path_main_type", o.PathMainType, &d.PathMainType},
		{"path_alt_type", o.PathAltType, &d.PathAltType},
		{"fill_type", o.FillType, &d.FillType},
	}
	for _, f := range fields {
		t, err := blocks.ParseType(f.raw)
		if err != nil {
			return generator.Options{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = t
	}
	return generator.Options{Kind: kind, Default: &d}, nil
}

// PlotSeed is a parsed PlotSpec.
type PlotSeed struct {
	Coord    gen.PlotCoord
	Owner    string
	UUID     *uuid.UUID
	Biome    blocks.Biome
	HasBiome bool
}

func (p PlotSpec) parse() (PlotSeed, error) {
	c, err := gen.ParsePlotCoord(p.ID)
	if err != nil {
		return PlotSeed{}, err
	}
	out := PlotSeed{Coord: c, Owner: strings.TrimSpace(p.Owner)}
	if s := strings.TrimSpace(p.UUID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return PlotSeed{}, fmt.Errorf("plot %s uuid: %w", p.ID, err)
		}
		out.UUID = &id
	}
	if s := strings.TrimSpace(p.Biome); s != "" {
		b, err := blocks.ParseBiome(s)
		if err != nil {
			return PlotSeed{}, fmt.Errorf("plot %s: %w", p.ID, err)
		}
		out.Biome = b
		out.HasBiome = true
	}
	return out, nil
}

func (w WorldSpec) PlotSeeds() ([]PlotSeed, error) {
	out := make([]PlotSeed, 0, len(w.Plots))
	for _, p := range w.Plots {
		ps, err := p.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, nil
}
