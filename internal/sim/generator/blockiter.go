package generator

import (
	"plotcraft.ai/internal/sim/world"
	"plotcraft.ai/internal/sim/world/logic/geom"
	"plotcraft.ai/internal/sim/world/logic/mathx"
)

const (
	MinY = 0
	MaxY = 255
)

// BlockIter walks every block of a plot's column square, x outermost, then z,
// then y. It holds no resources and may be dropped at any point.
type BlockIter struct {
	host   HostWorld
	corner geom.Vec2i
	size   int
	yMin   int
	ySpan  int

	n, total int
	cur      geom.BlockPos
}

func newBlockIter(host HostWorld, corner geom.Vec2i, size, yMin, yMax int) *BlockIter {
	lo := mathx.Clamp(yMin, MinY, MaxY)
	hi := mathx.Clamp(yMax, MinY, MaxY)
	span := hi - lo + 1
	if yMin > yMax || span < 0 {
		span = 0
	}
	return &BlockIter{
		host:   host,
		corner: corner,
		size:   size,
		yMin:   lo,
		ySpan:  span,
		total:  size * size * span,
	}
}

func (it *BlockIter) Next() bool {
	if it.n >= it.total {
		return false
	}
	perX := it.size * it.ySpan
	xi := it.n / perX
	rem := it.n % perX
	it.cur = geom.BlockPos{
		X: it.corner.X + xi,
		Y: it.yMin + rem%it.ySpan,
		Z: it.corner.Z + rem/it.ySpan,
	}
	it.n++
	return true
}

func (it *BlockIter) Pos() geom.BlockPos { return it.cur }

func (it *BlockIter) Block() world.BlockRef {
	return it.host.BlockAt(it.cur.X, it.cur.Y, it.cur.Z)
}

// Reset restarts the walk from the first block.
func (it *BlockIter) Reset() {
	it.n = 0
	it.cur = geom.BlockPos{}
}

func (it *BlockIter) Len() int { return it.total }
