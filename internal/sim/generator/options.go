package generator

import (
	"fmt"

	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/terrain/gen"
)

type Kind string

const KindDefault Kind = "default"

// Options is a tagged variant: Kind selects which of the per-kind fields is set.
type Options struct {
	Kind    Kind
	Default *DefaultOptions
}

type DefaultOptions struct {
	PlotSize    int
	PathSize    int
	FloorHeight int
	OffsetX     int
	OffsetZ     int

	FloorType    blocks.Type
	WallType     blocks.Type
	PathMainType blocks.Type
	PathAltType  blocks.Type
	FillType     blocks.Type
}

func DefaultDefaultOptions() DefaultOptions {
	return DefaultOptions{
		PlotSize:     101,
		PathSize:     9,
		FloorHeight:  64,
		FloorType:    blocks.Of(blocks.QuartzBlock),
		WallType:     blocks.Of(blocks.Step),
		PathMainType: blocks.Of(blocks.Sandstone),
		PathAltType:  blocks.Of(blocks.RedstoneBlock),
		FillType:     blocks.Of(blocks.QuartzBlock),
	}
}

func (o DefaultOptions) Settings() gen.Settings {
	return gen.Settings{
		PlotSize:    o.PlotSize,
		PathSize:    o.PathSize,
		FloorHeight: o.FloorHeight,
		OffsetX:     o.OffsetX,
		OffsetZ:     o.OffsetZ,
		Palette: gen.Palette[blocks.Type]{
			Floor:    o.FloorType,
			Wall:     o.WallType,
			PathMain: o.PathMainType,
			PathAlt:  o.PathAltType,
			Fill:     o.FillType,
		},
	}
}

// ToSnapshot flattens the options for a snapshot header.
func (o Options) ToSnapshot() snapshot.OptionsV1 {
	out := snapshot.OptionsV1{Kind: string(o.Kind)}
	if d := o.Default; d != nil {
		out.PlotSize = d.PlotSize
		out.PathSize = d.PathSize
		out.FloorHeight = d.FloorHeight
		out.OffsetX = d.OffsetX
		out.OffsetZ = d.OffsetZ
		out.FloorType = d.FloorType.String()
		out.WallType = d.WallType.String()
		out.PathMainType = d.PathMainType.String()
		out.PathAltType = d.PathAltType.String()
		out.FillType = d.FillType.String()
	}
	return out
}

func OptionsFromSnapshot(o snapshot.OptionsV1) (Options, error) {
	switch Kind(o.Kind) {
	case KindDefault:
		d := DefaultOptions{
			PlotSize:    o.PlotSize,
			PathSize:    o.PathSize,
			FloorHeight: o.FloorHeight,
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
				return Options{}, fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dst = t
		}
		return Options{Kind: KindDefault, Default: &d}, nil
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownKind, o.Kind)
	}
}
