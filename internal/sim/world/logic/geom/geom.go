package geom

import "fmt"

// Vec2i is an integer position on the horizontal plane.
type Vec2i struct {
	X, Z int
}

// BlockPos is an absolute block position.
type BlockPos struct {
	X, Y, Z int
}

func (p BlockPos) String() string { return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z) }

type Vec3 struct {
	X, Y, Z float64
}

// Location is a precise position with a view orientation.
type Location struct {
	World string
	X     float64
	Y     float64
	Z     float64
	Yaw   float32
	Pitch float32
}

// Face is a horizontal block face, used for skull and sign rotation.
type Face uint8

const (
	FaceNorth Face = iota
	FaceEast
	FaceSouth
	FaceWest
)

func (f Face) String() string {
	switch f {
	case FaceNorth:
		return "NORTH"
	case FaceEast:
		return "EAST"
	case FaceSouth:
		return "SOUTH"
	case FaceWest:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

// AABB is an axis-aligned box given by its center and half extents.
type AABB struct {
	Center Vec3
	HalfX  float64
	HalfY  float64
	HalfZ  float64
}

func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Center.X-b.HalfX && p.X <= b.Center.X+b.HalfX &&
		p.Y >= b.Center.Y-b.HalfY && p.Y <= b.Center.Y+b.HalfY &&
		p.Z >= b.Center.Z-b.HalfZ && p.Z <= b.Center.Z+b.HalfZ
}
