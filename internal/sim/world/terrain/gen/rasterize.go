package gen

import "plotcraft.ai/internal/sim/world/logic/mathx"

const ChunkWidth = 16

// Rasterize fills the 16x16 columns of chunk (chunkX, chunkZ). Every column gets
// palette.Fill for y in [0,h) and the classified surface value at y=h. set
// receives chunk-local x/z.
func Rasterize[T any](c *Config, chunkX, chunkZ int, palette Palette[T], set func(x, y, z int, v T)) {
	sectionSize := c.sectionSize
	pathOffset := c.pathOffset

	// plot bottom x and z, reduced once per chunk
	pbx := mathx.Mod(chunkX*ChunkWidth-c.s.OffsetX, sectionSize)
	pbz := mathx.Mod(chunkZ*ChunkWidth-c.s.OffsetZ, sectionSize)

	for cx := 0; cx < ChunkWidth; cx++ {
		for cz := 0; cz < ChunkWidth; cz++ {
			x := (pbx+cx)%sectionSize - pathOffset
			z := (pbz+cz)%sectionSize - pathOffset
			col, h := c.Classify(x, z)

			for y := 0; y < h; y++ {
				set(cx, y, cz, palette.Fill)
			}
			set(cx, h, cz, palette.For(col))
		}
	}
}
