package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"plotcraft.ai/internal/sim/multiworld"
)

func main() {
	var (
		worldsPath = flag.String("worlds", "./configs/worlds.yaml", "worlds config path (empty for built-in defaults)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		only       = flag.String("world", "", "generate only this world id (default: all configured worlds)")
		radius     = flag.Int("radius", -1, "pregeneration radius in chunks around spawn (-1: use pregen_radius from config)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite index")
		noSnapshot = flag.Bool("no_snapshot", false, "skip writing a snapshot after generation")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[plotgen] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := multiworld.Load(*worldsPath)
	if err != nil {
		logger.Fatalf("load worlds config: %v", err)
	}

	idx, err := openIndex(*dataDir, *disableDB)
	if err != nil {
		logger.Fatalf("open index backend: %v", err)
	}
	if idx != nil {
		defer idx.Close()
	}

	mgr, err := multiworld.NewManager(cfg, multiworld.ManagerOptions{
		DataDir: *dataDir,
		Index:   idx,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatalf("build worlds: %v", err)
	}
	defer mgr.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ids := mgr.WorldIDs()
	if id := strings.TrimSpace(*only); id != "" {
		if _, ok := mgr.Runtime(id); !ok {
			logger.Fatalf("unknown world: %s", id)
		}
		ids = []string{id}
	}

	for _, id := range ids {
		rt, _ := mgr.Runtime(id)
		r := *radius
		if r < 0 {
			r = *rt.Spec.PregenRadius
		}
		c := rt.Generator.Config()
		logger.Printf("world %s: generator=%s plot=%d path=%d floor=%d section=%d radius=%d",
			id, rt.Generator.Kind(), c.PlotSize(), c.PathSize(), c.FloorHeight(), c.SectionSize(), r)

		n, err := mgr.Pregenerate(ctx, id, r)
		if err != nil {
			logger.Printf("world %s: pregenerate stopped after %d chunks: %v", id, n, err)
			return
		}
		logger.Printf("world %s: generated %d chunks", id, n)

		if err := mgr.ApplyPlots(id); err != nil {
			logger.Fatalf("world %s: apply plots: %v", id, err)
		}
		if len(rt.Spec.Plots) > 0 {
			logger.Printf("world %s: applied %d configured plots", id, len(rt.Spec.Plots))
		}

		if *noSnapshot {
			continue
		}
		path, err := mgr.SaveSnapshot(id)
		if err != nil {
			logger.Fatalf("world %s: %v", id, err)
		}
		logger.Printf("world %s: snapshot %s", id, filepath.ToSlash(path))
	}
	if idx != nil {
		st := idx.Stats()
		if st.DropChunkTotal+st.DropPlotTotal+st.DropSnapshotTotal > 0 {
			logger.Printf("index backend dropped rows: chunks=%d plots=%d snapshots=%d",
				st.DropChunkTotal, st.DropPlotTotal, st.DropSnapshotTotal)
		}
	}
}
