package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"plotcraft.ai/internal/persistence/snapshot"
	"plotcraft.ai/internal/sim/world"
)

const schemaVersion = "1"

// SQLiteIndex is a queryable read model of what has been generated.
// The JSONL event logs and snapshots stay the source of truth; writes are
// queued and dropped when the writer falls behind.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropChunk    atomic.Uint64
	dropPlot     atomic.Uint64
	dropSnapshot atomic.Uint64
}

type reqKind int

const (
	reqChunk reqKind = iota + 1
	reqPlot
	reqSnapshot
)

type req struct {
	kind reqKind

	chunk    chunkRow
	plot     plotRow
	snapshot snapshotRow
}

type chunkRow struct {
	WorldID     string
	CX, CZ      int
	Digest      string
	GeneratedAt string
}

type plotRow struct {
	WorldID string
	Plot    string
	Kind    string
	Details string
	At      string
}

type snapshotRow struct {
	WorldID    string
	Path       string
	Generator  string
	Chunks     int
	Signs      int
	Skulls     int
	Entities   int
	RecordedAt string
}

type Stats struct {
	QueueDepth        int
	QueueCapacity     int
	DropChunkTotal    uint64
	DropPlotTotal     uint64
	DropSnapshotTotal uint64
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		// Pregeneration emits one row per chunk in bursts.
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS worlds (
			id TEXT PRIMARY KEY,
			generator TEXT NOT NULL,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			world_id TEXT NOT NULL,
			cx INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			digest TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			PRIMARY KEY (world_id, cx, cz)
		);`,
		`CREATE TABLE IF NOT EXISTS plot_events (
			world_id TEXT NOT NULL,
			plot TEXT NOT NULL,
			kind TEXT NOT NULL,
			details TEXT NOT NULL,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plot_events_plot ON plot_events(world_id, plot);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			world_id TEXT NOT NULL,
			path TEXT NOT NULL,
			generator TEXT NOT NULL,
			chunks INTEGER NOT NULL,
			signs INTEGER NOT NULL,
			skulls INTEGER NOT NULL,
			entities INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (world_id, path)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	_, err := db.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version',?)`, schemaVersion)
	return err
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		QueueDepth:        len(s.ch),
		QueueCapacity:     cap(s.ch),
		DropChunkTotal:    s.dropChunk.Load(),
		DropPlotTotal:     s.dropPlot.Load(),
		DropSnapshotTotal: s.dropSnapshot.Load(),
	}
}

func (s *SQLiteIndex) enqueue(r req, drops *atomic.Uint64) {
	select {
	case s.ch <- r:
	default:
		drops.Add(1)
	}
}

// WriteEvent indexes generation events. It implements world.EventSink.
func (s *SQLiteIndex) WriteEvent(ev world.Event) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	at := ev.Time
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339Nano)
	}
	switch ev.Kind {
	case world.EventChunkGenerated:
		if ev.Chunk == nil {
			return nil
		}
		s.enqueue(req{kind: reqChunk, chunk: chunkRow{
			WorldID:     ev.World,
			CX:          ev.Chunk[0],
			CZ:          ev.Chunk[1],
			Digest:      ev.Digest,
			GeneratedAt: at,
		}}, &s.dropChunk)
	case world.EventOwnerUpdated, world.EventBiomeSet:
		details := "{}"
		if len(ev.Details) > 0 {
			b, err := json.Marshal(ev.Details)
			if err != nil {
				return err
			}
			details = string(b)
		}
		s.enqueue(req{kind: reqPlot, plot: plotRow{
			WorldID: ev.World,
			Plot:    ev.Plot,
			Kind:    ev.Kind,
			Details: details,
			At:      at,
		}}, &s.dropPlot)
	}
	return nil
}

func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	s.enqueue(req{kind: reqSnapshot, snapshot: snapshotRow{
		WorldID:    snap.Header.WorldID,
		Path:       path,
		Generator:  snap.Header.Generator,
		Chunks:     len(snap.Chunks),
		Signs:      len(snap.Signs),
		Skulls:     len(snap.Skulls),
		Entities:   len(snap.Entities),
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}}, &s.dropSnapshot)
}

// UpsertWorld stores the generator options a world was configured with.
// It runs synchronously on the shared connection, so call it before events
// start flowing; the writer loop holds that connection while a batch is open.
func (s *SQLiteIndex) UpsertWorld(id string, opts snapshot.OptionsV1) error {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(b)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO worlds(id,generator,digest,json,updated_at) VALUES(?,?,?,?,?)`,
		id, opts.Kind, hex.EncodeToString(sum[:]), string(b), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertChunk, _ := s.db.Prepare(`INSERT OR REPLACE INTO chunks(world_id,cx,cz,digest,generated_at) VALUES(?,?,?,?,?)`)
	insertPlot, _ := s.db.Prepare(`INSERT INTO plot_events(world_id,plot,kind,details,at) VALUES(?,?,?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(world_id,path,generator,chunks,signs,skulls,entities,recorded_at) VALUES(?,?,?,?,?,?,?,?)`)
	defer func() {
		for _, st := range []*sql.Stmt{insertChunk, insertPlot, insertSnapshot} {
			if st != nil {
				_ = st.Close()
			}
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	exec := func(st *sql.Stmt, args ...any) {
		if st == nil || tx == nil {
			return
		}
		if _, err := tx.Stmt(st).Exec(args...); err != nil {
			rollback()
			return
		}
		opCount++
	}

	for r := range s.ch {
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqChunk:
			c := r.chunk
			exec(insertChunk, c.WorldID, c.CX, c.CZ, c.Digest, c.GeneratedAt)
		case reqPlot:
			p := r.plot
			exec(insertPlot, p.WorldID, p.Plot, p.Kind, p.Details, p.At)
		case reqSnapshot:
			sn := r.snapshot
			exec(insertSnapshot, sn.WorldID, sn.Path, sn.Generator, sn.Chunks, sn.Signs, sn.Skulls, sn.Entities, sn.RecordedAt)
		}
		if tx != nil && (opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait) {
			commit()
		}
	}

	commit()
}
