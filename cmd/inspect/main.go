package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"plotcraft.ai/internal/persistence/indexdb"
	gamelog "plotcraft.ai/internal/persistence/log"
	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/multiworld"
	"plotcraft.ai/internal/sim/world/logic/geom"
)

func main() {
	var (
		snapPath  = flag.String("snapshot", "", "path to .snap.zst (default: latest snapshot of -world under -data)")
		dataDir   = flag.String("data", "./data", "runtime data directory")
		worldID   = flag.String("world", "plots", "world id used to locate snapshots and events")
		eventsDir = flag.String("events", "", "events dir containing events-*.jsonl.zst (default: <data>/worlds/<world>/events)")
		indexPath = flag.String("index", "", "sqlite index to read generation digests from instead of the event log")
		verify    = flag.Bool("verify", false, "regenerate chunks and compare digests")
		plotAt    = flag.String("plot_at", "", "x,z world column to look up")
	)
	flag.Parse()

	path := strings.TrimSpace(*snapPath)
	if path == "" {
		p, ok := multiworld.LatestSnapshot(*dataDir, *worldID)
		if !ok {
			fmt.Fprintln(os.Stderr, "no snapshot found; pass -snapshot")
			os.Exit(2)
		}
		path = p
	}

	snap, err := snapshot.ReadSnapshot(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read snapshot:", err)
		os.Exit(1)
	}
	o := snap.Options
	fmt.Printf("snapshot v%d world=%s generator=%s created=%s chunks=%d signs=%d skulls=%d entities=%d\n",
		snap.Header.Version, snap.Header.WorldID, snap.Header.Generator, snap.Header.CreatedAt,
		len(snap.Chunks), len(snap.Signs), len(snap.Skulls), len(snap.Entities))
	fmt.Printf("options plot=%d path=%d floor=%d offset=%d,%d floor_type=%s wall=%s path_main=%s path_alt=%s fill=%s\n",
		o.PlotSize, o.PathSize, o.FloorHeight, o.OffsetX, o.OffsetZ,
		o.FloorType, o.WallType, o.PathMainType, o.PathAltType, o.FillType)

	evDir := strings.TrimSpace(*eventsDir)
	if evDir == "" {
		evDir = gamelog.EventsDir(filepath.Join(*dataDir, "worlds", snap.Header.WorldID))
	}

	if s := strings.TrimSpace(*plotAt); s != "" {
		if err := lookupPlot(snap, s); err != nil {
			fmt.Fprintln(os.Stderr, "plot_at:", err)
			os.Exit(1)
		}
	}

	if !*verify {
		return
	}

	var generated map[[2]int]string
	if p := strings.TrimSpace(*indexPath); p != "" {
		generated, err = indexDigests(p, snap.Header.WorldID)
	} else {
		generated, err = eventDigests(evDir)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "load generation digests:", err)
		os.Exit(1)
	}

	rep, err := multiworld.VerifyGeneration(snap, generated)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify:", err)
		os.Exit(1)
	}
	if !rep.OK() {
		for _, c := range rep.Mismatches {
			fmt.Fprintf(os.Stderr, "digest mismatch at chunk %d,%d\n", c[0], c[1])
		}
		fmt.Fprintf(os.Stderr, "verify failed: %d/%d chunks differ\n", len(rep.Mismatches), rep.Checked)
		os.Exit(1)
	}
	fmt.Printf("verify ok: checked=%d chunks edited_since_generation=%d\n", rep.Checked, rep.Edited)
}

func parseXZ(s string) (int, int, error) {
	xs, zs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want x,z: %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, err
	}
	z, err := strconv.Atoi(strings.TrimSpace(zs))
	if err != nil {
		return 0, 0, err
	}
	return x, z, nil
}

func lookupPlot(snap snapshot.SnapshotV1, s string) error {
	x, z, err := parseXZ(s)
	if err != nil {
		return err
	}
	rt, err := multiworld.RestoreRuntime(snap, nil)
	if err != nil {
		return err
	}
	g := rt.Generator
	col, h := g.Config().ClassifyWorld(x, z)
	p, ok := g.PlotAt(x, z)
	if !ok {
		fmt.Printf("column %d,%d: %s at y=%d (no plot)\n", x, z, col, h)
		return nil
	}
	b := g.BottomCoord(p)
	home := g.HomeLocation(p)
	fmt.Printf("column %d,%d: %s at y=%d plot=%s bottom=%d,%d home=%.1f,%.1f,%.1f\n",
		x, z, col, h, p.ID(), b.X, b.Z, home.X, home.Y, home.Z)

	signAt := geom.BlockPos{X: b.X - 2, Y: g.Config().FloorHeight() + 1, Z: b.Z - 1}
	if sign, ok := rt.World.Sign(signAt); ok {
		fmt.Printf("owner sign: %q\n", sign.Lines[2])
	}
	if ents := g.Entities(p); len(ents) > 0 {
		fmt.Printf("entities: %d\n", len(ents))
	}
	return nil
}

func eventDigests(dir string) (map[[2]int]string, error) {
	files, err := gamelog.EventFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no events files found in %s", dir)
	}
	out := map[[2]int]string{}
	for _, f := range files {
		evs, err := gamelog.ReadEvents(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
		for _, ev := range evs {
			if ev.Chunk != nil && ev.Digest != "" {
				out[*ev.Chunk] = ev.Digest
			}
		}
	}
	return out, nil
}

func indexDigests(path, worldID string) (map[[2]int]string, error) {
	r, err := indexdb.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ChunkDigests(context.Background(), worldID)
}
