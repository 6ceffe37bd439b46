package indexdb

import (
	"context"
	"database/sql"
	"fmt"
)

// Reader answers queries against an index file. It opens its own connection
// so it never waits on a live writer's open transaction.
type Reader struct {
	db *sql.DB
}

func OpenReader(path string) (*Reader, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error { return r.db.Close() }

type WorldRow struct {
	ID        string
	Generator string
	Digest    string
	JSON      string
	UpdatedAt string
}

type SnapshotRow struct {
	WorldID    string
	Path       string
	Generator  string
	Chunks     int
	Signs      int
	Skulls     int
	Entities   int
	RecordedAt string
}

func (r *Reader) World(ctx context.Context, id string) (WorldRow, bool, error) {
	var w WorldRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id,generator,digest,json,updated_at FROM worlds WHERE id=?`, id,
	).Scan(&w.ID, &w.Generator, &w.Digest, &w.JSON, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return WorldRow{}, false, nil
	}
	if err != nil {
		return WorldRow{}, false, err
	}
	return w, true, nil
}

// ChunkDigests returns the last recorded digest of every generated chunk of a world.
func (r *Reader) ChunkDigests(ctx context.Context, worldID string) (map[[2]int]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cx,cz,digest FROM chunks WHERE world_id=?`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[[2]int]string{}
	for rows.Next() {
		var cx, cz int
		var digest string
		if err := rows.Scan(&cx, &cz, &digest); err != nil {
			return nil, err
		}
		out[[2]int{cx, cz}] = digest
	}
	return out, rows.Err()
}

func (r *Reader) PlotEvents(ctx context.Context, worldID, plot string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind FROM plot_events WHERE world_id=? AND plot=? ORDER BY rowid`, worldID, plot)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, err
		}
		out = append(out, kind)
	}
	return out, rows.Err()
}

// Snapshots lists a world's recorded snapshots, newest first.
func (r *Reader) Snapshots(ctx context.Context, worldID string) ([]SnapshotRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT world_id,path,generator,chunks,signs,skulls,entities,recorded_at
		 FROM snapshots WHERE world_id=? ORDER BY recorded_at DESC`, worldID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SnapshotRow
	for rows.Next() {
		var s SnapshotRow
		if err := rows.Scan(&s.WorldID, &s.Path, &s.Generator, &s.Chunks, &s.Signs, &s.Skulls, &s.Entities, &s.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
