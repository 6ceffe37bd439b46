package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plotcraft.ai/internal/persistence/indexdb"
)

// IndexPath is where plotgen keeps the sqlite index under a data dir.
func IndexPath(dataDir string) string {
	return filepath.Join(dataDir, "index", "plots.sqlite")
}

func openIndex(dataDir string, disableDB bool) (*indexdb.SQLiteIndex, error) {
	if disableDB {
		return nil, nil
	}
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("PLOTGEN_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}
	switch backend {
	case "none", "off", "disabled":
		return nil, nil
	case "sqlite":
		return indexdb.OpenSQLite(IndexPath(dataDir))
	default:
		return nil, fmt.Errorf("unsupported PLOTGEN_INDEX_BACKEND: %s", backend)
	}
}
