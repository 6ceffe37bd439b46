package store

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	ChunkWidth       = 16
	SectionHeight    = 16
	SectionsPerChunk = 16
	Height           = SectionHeight * SectionsPerChunk
	SectionVolume    = ChunkWidth * ChunkWidth * SectionHeight
)

type ChunkKey struct {
	CX int
	CZ int
}

// Section is a 16x16x16 slice of block states (id<<4 | data).
type Section struct {
	Blocks [SectionVolume]uint16
}

func sectionIndex(x, y, z int) int {
	return (y&(SectionHeight-1))*ChunkWidth*ChunkWidth + z*ChunkWidth + x
}

// Chunk is one 16x256x16 column. Sections are allocated on first non-air write.
type Chunk struct {
	CX, CZ    int
	Sections  [SectionsPerChunk]*Section
	Biomes    [ChunkWidth * ChunkWidth]byte // z*16 + x
	Populated bool

	dirty bool
	hash  [32]byte
}

func NewChunk(cx, cz int) *Chunk {
	return &Chunk{CX: cx, CZ: cz}
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkWidth && z >= 0 && z < ChunkWidth && y >= 0 && y < Height
}

func (c *Chunk) Get(x, y, z int) uint16 {
	if !inChunk(x, y, z) {
		return 0
	}
	sec := c.Sections[y/SectionHeight]
	if sec == nil {
		return 0
	}
	return sec.Blocks[sectionIndex(x, y, z)]
}

func (c *Chunk) Set(x, y, z int, state uint16) {
	if !inChunk(x, y, z) {
		return
	}
	sec := c.Sections[y/SectionHeight]
	if sec == nil {
		if state == 0 {
			return
		}
		sec = &Section{}
		c.Sections[y/SectionHeight] = sec
	}
	i := sectionIndex(x, y, z)
	if sec.Blocks[i] == state {
		return
	}
	sec.Blocks[i] = state
	c.dirty = true
}

// SetData replaces only the 4-bit data value, keeping the block id.
func (c *Chunk) SetData(x, y, z int, data byte) {
	cur := c.Get(x, y, z)
	c.Set(x, y, z, cur&^0xF|uint16(data&0xF))
}

func (c *Chunk) Biome(x, z int) byte {
	return c.Biomes[z*ChunkWidth+x]
}

func (c *Chunk) SetBiome(x, z int, b byte) {
	i := z*ChunkWidth + x
	if c.Biomes[i] == b {
		return
	}
	c.Biomes[i] = b
	c.dirty = true
}

func (c *Chunk) Digest() [32]byte {
	if c.dirty || c.hash == ([32]byte{}) {
		h := sha256.New()
		var tmp [2]byte
		for i, sec := range c.Sections {
			if sec == nil {
				continue
			}
			h.Write([]byte{byte(i)})
			for _, v := range sec.Blocks {
				binary.LittleEndian.PutUint16(tmp[:], v)
				h.Write(tmp[:])
			}
		}
		h.Write(c.Biomes[:])
		copy(c.hash[:], h.Sum(nil))
		c.dirty = false
	}
	return c.hash
}

// Generator performs the bulk fill of a freshly created chunk.
type Generator interface {
	GenerateChunk(cx, cz int, ch *Chunk)
}

// Populator runs after generation over the already filled chunk.
type Populator interface {
	Populate(ch *Chunk)
}

type ChunkStore struct {
	Gen        Generator
	Populators []Populator
	Chunks     map[ChunkKey]*Chunk

	// OnGenerated is called once per chunk after generation and population.
	OnGenerated func(ch *Chunk)
}

func NewChunkStore(gen Generator, pops ...Populator) *ChunkStore {
	return &ChunkStore{
		Gen:        gen,
		Populators: pops,
		Chunks:     map[ChunkKey]*Chunk{},
	}
}
