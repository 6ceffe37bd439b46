package blocks

import "testing"

func TestParseType(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"STEP", Type{Material: Step}},
		{"step:3", Type{Material: Step, Data: 3}},
		{" QUARTZ_BLOCK ", Type{Material: QuartzBlock}},
		{"171:14", Type{Material: Carpet, Data: 14}},
		{"WOOD", Type{Material: Planks}},
	}
	for _, c := range cases {
		got, err := ParseType(c.in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseType(%q)=%v want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "NOT_A_BLOCK", "STEP:16", "STEP:x"} {
		if _, err := ParseType(bad); err == nil {
			t.Fatalf("ParseType(%q): expected error", bad)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	ty := Type{Material: Carpet, Data: 14}
	if got := FromState(ty.State()); got != ty {
		t.Fatalf("state round trip: got %v want %v", got, ty)
	}
	if Of(Air).State() != 0 {
		t.Fatalf("air must pack to zero")
	}
}

func TestDoubledAndWithMaterial(t *testing.T) {
	cases := map[Material]Material{
		Carpet:      Wool,
		Step:        DoubleStep,
		WoodStep:    WoodDoubleStep,
		QuartzBlock: QuartzBlock,
	}
	for in, want := range cases {
		if got := in.Doubled(); got != want {
			t.Fatalf("%s.Doubled()=%s want %s", in, got, want)
		}
	}

	wall := Type{Material: Step, Data: 7}
	doubled := wall.WithMaterial(wall.Material.Doubled())
	if doubled.Material != DoubleStep || doubled.Data != 7 {
		t.Fatalf("WithMaterial lost data: %v", doubled)
	}
}

type recordingRef struct{ got Type }

func (r *recordingRef) SetType(t Type) { r.got = t }

func TestApply(t *testing.T) {
	ref := &recordingRef{}
	Type{Material: WallSign, Data: 4}.Apply(ref)
	if ref.got.Material != WallSign || ref.got.Data != 4 {
		t.Fatalf("apply: got %v", ref.got)
	}
}

func TestParseBiome(t *testing.T) {
	b, err := ParseBiome("forest")
	if err != nil || b != Forest {
		t.Fatalf("ParseBiome: got %v, %v", b, err)
	}
	if _, err := ParseBiome("MARS"); err == nil {
		t.Fatalf("expected error for unknown biome")
	}
}
