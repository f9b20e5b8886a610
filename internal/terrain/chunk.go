package terrain

import "math"

// FloorSize is the edge length of one terrain chunk in world units.
const FloorSize = 8

// ChunkCoord identifies a chunk on the infinite XZ grid.
type ChunkCoord struct {
	X, Z int
}

// CoordAt returns the chunk containing the given world X/Z position.
// Uses floor division so negative world coordinates map to contiguous
// negative chunk coordinates (-1.0 belongs to chunk -1, not 0).
func CoordAt(x, z float64) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(x)), FloorSize),
		Z: floorDiv(int(math.Floor(z)), FloorSize),
	}
}

// Add offsets the coordinate by (dx, dz) chunks.
func (c ChunkCoord) Add(dx, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// WorldOrigin returns the world-space XZ position of the chunk's center.
// Chunk geometry spans [-FloorSize/2, FloorSize/2] around this point.
func (c ChunkCoord) WorldOrigin() (float64, float64) {
	return float64(c.X * FloorSize), float64(c.Z * FloorSize)
}

// RenderHandle identifies a drawable owned by the render backend.
type RenderHandle uint64

// BodyHandle identifies a collision body owned by the physics backend.
type BodyHandle uint64

// ChunkHandle pairs the collaborator handles for one spawned chunk.
type ChunkHandle struct {
	Render RenderHandle
	Body   BodyHandle
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
