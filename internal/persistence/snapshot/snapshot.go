package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

type Header struct {
	Version   int    `json:"version"`
	WorldID   string `json:"world_id"`
	Generator string `json:"generator"`
	CreatedAt string `json:"created_at,omitempty"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	// Generator options the chunks were produced with (needed to re-verify them).
	Options OptionsV1 `json:"options"`

	Chunks   []ChunkV1  `json:"chunks"`
	Signs    []SignV1   `json:"signs,omitempty"`
	Skulls   []SkullV1  `json:"skulls,omitempty"`
	Entities []EntityV1 `json:"entities,omitempty"`
}

type OptionsV1 struct {
	Kind        string `json:"kind"`
	PlotSize    int    `json:"plot_size"`
	PathSize    int    `json:"path_size"`
	FloorHeight int    `json:"floor_height"`
	OffsetX     int    `json:"offset_x"`
	OffsetZ     int    `json:"offset_z"`

	FloorType    string `json:"floor_type"`
	WallType     string `json:"wall_type"`
	PathMainType string `json:"path_main_type"`
	PathAltType  string `json:"path_alt_type"`
	FillType     string `json:"fill_type"`
}

type ChunkV1 struct {
	CX        int         `json:"cx"`
	CZ        int         `json:"cz"`
	Populated bool        `json:"populated"`
	Sections  []SectionV1 `json:"sections"`
	Biomes    []byte      `json:"biomes"`
	Digest    string      `json:"digest,omitempty"`
}

// SectionV1 is one non-empty 16x16x16 slice; Y is the section index (0..15).
type SectionV1 struct {
	Y      int      `json:"y"`
	Blocks []uint16 `json:"blocks"`
}

type SignV1 struct {
	Pos   [3]int    `json:"pos"`
	Lines [4]string `json:"lines"`
}

type SkullV1 struct {
	Pos       [3]int `json:"pos"`
	Owner     string `json:"owner,omitempty"`
	OwnerUUID string `json:"owner_uuid,omitempty"`
	Rotation  int    `json:"rotation"`
}

type EntityV1 struct {
	ID   string     `json:"id"`
	Kind string     `json:"kind"`
	Pos  [3]float64 `json:"pos"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is for tools that only peek; gob carries it too.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}

// ReadHeader decodes only the leading JSON header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	return h, nil
}
