package gen

import (
	"errors"
	"testing"

	"plotcraft.ai/internal/sim/blocks"
)

func testPalette() Palette[blocks.Type] {
	return Palette[blocks.Type]{
		Floor:    blocks.Of(blocks.QuartzBlock),
		Wall:     blocks.Of(blocks.Step),
		PathMain: blocks.Of(blocks.Sandstone),
		PathAlt:  blocks.Of(blocks.RedstoneBlock),
		Fill:     blocks.Of(blocks.Stone),
	}
}

func mustConfig(t *testing.T, plotSize, pathSize, offX, offZ int) *Config {
	t.Helper()
	return MustConfig(Settings{
		PlotSize:    plotSize,
		PathSize:    pathSize,
		FloorHeight: 64,
		OffsetX:     offX,
		OffsetZ:     offZ,
		Palette:     testPalette(),
	})
}

func TestNewConfigDerivedValues(t *testing.T) {
	cases := []struct {
		plot, path      int
		section, offset int
		main, alt       bool
	}{
		{7, 3, 10, 2, true, false},
		{7, 5, 12, 3, true, true},
		{7, 0, 7, 1, false, false},
		{7, 2, 9, 2, false, false},
		{101, 9, 110, 5, true, true},
		{4, 4, 8, 3, true, false},
	}
	for _, tc := range cases {
		c := mustConfig(t, tc.plot, tc.path, 0, 0)
		if c.SectionSize() != tc.section || c.PathOffset() != tc.offset {
			t.Fatalf("plot=%d path=%d: section=%d offset=%d want %d %d",
				tc.plot, tc.path, c.SectionSize(), c.PathOffset(), tc.section, tc.offset)
		}
		if c.MakePathMain() != tc.main || c.MakePathAlt() != tc.alt {
			t.Fatalf("plot=%d path=%d: main=%v alt=%v", tc.plot, tc.path, c.MakePathMain(), c.MakePathAlt())
		}
	}
}

func TestNewConfigRejectsInvalid(t *testing.T) {
	bad := []Settings{
		{PlotSize: 0, PathSize: 3, FloorHeight: 64},
		{PlotSize: -4, PathSize: 3, FloorHeight: 64},
		{PlotSize: 7, PathSize: -1, FloorHeight: 64},
		{PlotSize: 7, PathSize: 3, FloorHeight: -1},
		{PlotSize: 7, PathSize: 3, FloorHeight: 254},
	}
	for _, s := range bad {
		if _, err := NewConfig(s); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("NewConfig(%+v): expected ErrInvalidConfig, got %v", s, err)
		}
	}
}

func TestClassifyNarrowPaths(t *testing.T) {
	c := mustConfig(t, 7, 3, 0, 0)
	corner := c.BottomCorner(PlotCoord{})

	if p, ok := c.PlotAt(corner.X, corner.Z); !ok || p != (PlotCoord{}) {
		t.Fatalf("corner: got %v,%v want plot 0:0", p, ok)
	}
	if col, h := c.ClassifyWorld(corner.X, corner.Z); col != Floor || h != 64 {
		t.Fatalf("corner: got %v@%d want FLOOR@64", col, h)
	}
	if col, h := c.ClassifyWorld(corner.X-1, corner.Z); col != Wall || h != 65 {
		t.Fatalf("one before corner: got %v@%d want WALL@65", col, h)
	}
	if col, h := c.ClassifyWorld(corner.X-2, corner.Z); col != PathMain || h != 64 {
		t.Fatalf("two before corner: got %v@%d want PATH_MAIN@64", col, h)
	}
}

func TestClassifyWidePaths(t *testing.T) {
	c := mustConfig(t, 7, 5, 0, 0)
	if c.SectionSize() != 12 || c.PathOffset() != 3 || !c.MakePathAlt() {
		t.Fatalf("unexpected derived values")
	}
	if col, _ := c.Classify(-2, -2); col != PathAlt {
		t.Fatalf("(-2,-2): got %v want PATH_ALT", col)
	}
	if col, _ := c.Classify(-3, -3); col != PathMain {
		t.Fatalf("(-3,-3): got %v want PATH_MAIN", col)
	}
	if col, _ := c.Classify(8, 0); col != PathAlt {
		t.Fatalf("(8,0): got %v want PATH_ALT", col)
	}
	if col, h := c.Classify(7, 7); col != Wall || h != 65 {
		t.Fatalf("(7,7): got %v@%d want WALL@65", col, h)
	}
}

func TestClassifyFallsBackToWallWithoutPath(t *testing.T) {
	for _, path := range []int{0, 1, 2} {
		c := mustConfig(t, 5, path, 0, 0)
		for x := -c.PathOffset(); x < c.SectionSize()-c.PathOffset(); x++ {
			for z := -c.PathOffset(); z < c.SectionSize()-c.PathOffset(); z++ {
				col, h := c.Classify(x, z)
				inPlot := x >= 0 && x < 5 && z >= 0 && z < 5
				if inPlot && col != Floor {
					t.Fatalf("path=%d (%d,%d): got %v want FLOOR", path, x, z, col)
				}
				if !inPlot && (col != Wall || h != 65) {
					t.Fatalf("path=%d (%d,%d): got %v@%d want WALL@65", path, x, z, col, h)
				}
			}
		}
	}
}

func TestOutsidePlotIsNeverFloor(t *testing.T) {
	for _, path := range []int{1, 2, 3, 5, 8, 9} {
		c := mustConfig(t, 6, path, 13, -7)
		for px := -3; px <= 3; px++ {
			for pz := -3; pz <= 3; pz++ {
				b := c.BottomCorner(PlotCoord{X: px, Z: pz})
				for i := -1; i <= c.PlotSize(); i++ {
					ring := [][2]int{
						{b.X - 1, b.Z + i},
						{b.X + c.PlotSize(), b.Z + i},
						{b.X + i, b.Z - 1},
						{b.X + i, b.Z + c.PlotSize()},
					}
					for _, p := range ring {
						if col, _ := c.ClassifyWorld(p[0], p[1]); col == Floor {
							t.Fatalf("path=%d plot %d:%d: %v is FLOOR", path, px, pz, p)
						}
						if _, ok := c.PlotAt(p[0], p[1]); ok {
							t.Fatalf("path=%d plot %d:%d: %v mapped to a plot", path, px, pz, p)
						}
					}
				}
			}
		}
	}
}

func TestPlotAtRoundTrip(t *testing.T) {
	configs := []*Config{
		mustConfig(t, 7, 3, 0, 0),
		mustConfig(t, 7, 5, -3, 11),
		mustConfig(t, 4, 1, 5, 5),
		mustConfig(t, 10, 9, -1000, 77),
	}
	for _, c := range configs {
		for px := -4; px <= 4; px++ {
			for pz := -4; pz <= 4; pz++ {
				want := PlotCoord{X: px, Z: pz}
				b := c.BottomCorner(want)
				for dx := 0; dx < c.PlotSize(); dx++ {
					for dz := 0; dz < c.PlotSize(); dz++ {
						got, ok := c.PlotAt(b.X+dx, b.Z+dz)
						if !ok || got != want {
							t.Fatalf("section=%d: PlotAt(corner(%v)+(%d,%d)) = %v,%v", c.SectionSize(), want, dx, dz, got, ok)
						}
						if col, _ := c.ClassifyWorld(b.X+dx, b.Z+dz); col != Floor {
							t.Fatalf("section=%d: plot column %v+(%d,%d) classified %v", c.SectionSize(), want, dx, dz, col)
						}
					}
				}
			}
		}
	}
}

func TestZeroPathKeepsMappingButWallsLastColumn(t *testing.T) {
	// With no path the one-block wall ring overlaps the neighbouring plot's last column.
	c := mustConfig(t, 6, 0, 0, 0)
	b := c.BottomCorner(PlotCoord{X: 2, Z: -1})
	if got, ok := c.PlotAt(b.X, b.Z); !ok || got != (PlotCoord{X: 2, Z: -1}) {
		t.Fatalf("PlotAt(corner) = %v,%v", got, ok)
	}
	if col, _ := c.ClassifyWorld(b.X+5, b.Z); col != Wall {
		t.Fatalf("last column: got %v want WALL", col)
	}
	if got, ok := c.PlotAt(b.X+5, b.Z); !ok || got.X != 2 {
		t.Fatalf("last column still belongs to the plot: got %v,%v", got, ok)
	}
}

func TestSpawnOffset(t *testing.T) {
	if got := mustConfig(t, 8, 3, 0, 0).SpawnOffset(); got != 0.5 {
		t.Fatalf("even plot size: got %v want 0.5", got)
	}
	if got := mustConfig(t, 7, 3, 0, 0).SpawnOffset(); got != 0 {
		t.Fatalf("odd plot size: got %v want 0", got)
	}
}

type cell struct {
	x, y, z int
	v       blocks.Type
}

func rasterizeAll(c *Config, cx, cz int) []cell {
	var out []cell
	Rasterize(c, cx, cz, c.Palette(), func(x, y, z int, v blocks.Type) {
		out = append(out, cell{x, y, z, v})
	})
	return out
}

func TestRasterizeMatchesClassify(t *testing.T) {
	c := mustConfig(t, 7, 5, 3, -9)
	pal := c.Palette()
	for _, chunk := range [][2]int{{0, 0}, {-1, -1}, {5, -3}, {-17, 22}} {
		top := map[[2]int]cell{}
		fills := map[[2]int]int{}
		for _, e := range rasterizeAll(c, chunk[0], chunk[1]) {
			k := [2]int{e.x, e.z}
			if prev, ok := top[k]; !ok || e.y > prev.y {
				top[k] = e
			}
			if e.v == pal.Fill {
				fills[k]++
			}
		}
		if len(top) != 256 {
			t.Fatalf("chunk %v: expected 256 columns, got %d", chunk, len(top))
		}
		for k, e := range top {
			wx := chunk[0]*16 + k[0]
			wz := chunk[1]*16 + k[1]
			col, h := c.ClassifyWorld(wx, wz)
			if e.y != h || e.v != pal.For(col) {
				t.Fatalf("chunk %v col %v: got %v@%d want %v@%d", chunk, k, e.v, e.y, pal.For(col), h)
			}
			if fills[k] != h {
				t.Fatalf("chunk %v col %v: %d fill blocks want %d", chunk, k, fills[k], h)
			}
		}
	}
}

func TestRasterizeIsDeterministic(t *testing.T) {
	c := mustConfig(t, 9, 6, 1, 2)
	a := rasterizeAll(c, -3, 4)
	b := rasterizeAll(c, -3, 4)
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestMapPalette(t *testing.T) {
	pal := testPalette()
	pal.Wall.Data = 5
	data := Map(pal, func(b blocks.Type) byte { return b.Data })
	if data.Wall != 5 || data.Floor != 0 {
		t.Fatalf("unexpected mapped palette: %+v", data)
	}
}

func TestParsePlotCoord(t *testing.T) {
	for _, c := range []PlotCoord{{0, 0}, {-3, 12}, {7, -1}} {
		got, err := ParsePlotCoord(c.String())
		if err != nil || got != c {
			t.Fatalf("parse %q: got %v err=%v", c.String(), got, err)
		}
	}
	for _, bad := range []string{"", "1", "a:1", "1:b", "1;2"} {
		if _, err := ParsePlotCoord(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
