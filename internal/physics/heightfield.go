package physics

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/terrain"
)

// World holds static heightfield collision bodies, one per terrain
// chunk, and answers ground-height queries against them. It implements
// terrain.PhysicsBackend.
type World struct {
	mu     sync.RWMutex
	bodies map[terrain.BodyHandle]*heightfieldBody
	// spatial index: chunk cell -> body, for point queries
	cells  map[[2]int]terrain.BodyHandle
	nextID uint64
}

// heightfieldBody is a square grid of pre-scaled heights centered on
// origin, extent world units across. Vertical scale is 1.0.
type heightfieldBody struct {
	heights [][]float32
	extent  float32
	origin  mgl32.Vec3
	cell    [2]int
}

// NewWorld creates an empty collision world.
func NewWorld() *World {
	return &World{
		bodies: make(map[terrain.BodyHandle]*heightfieldBody),
		cells:  make(map[[2]int]terrain.BodyHandle),
	}
}

// AddHeightfield registers a static heightfield body. The matrix must be
// square with at least two samples per edge; anything else is a
// generation bug upstream and is rejected.
func (w *World) AddHeightfield(heights [][]float32, extent float32, origin mgl32.Vec3) (terrain.BodyHandle, error) {
	if len(heights) < 2 {
		return 0, fmt.Errorf("heightfield needs at least 2 rows, got %d", len(heights))
	}
	for i, column := range heights {
		if len(column) != len(heights) {
			return 0, fmt.Errorf("heightfield row %d has %d entries, want %d", i, len(column), len(heights))
		}
	}
	if extent <= 0 {
		return 0, fmt.Errorf("heightfield extent must be positive, got %f", extent)
	}

	body := &heightfieldBody{
		heights: heights,
		extent:  extent,
		origin:  origin,
		cell:    cellAt(origin.X(), origin.Z(), extent),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	handle := terrain.BodyHandle(w.nextID)
	w.bodies[handle] = body
	w.cells[body.cell] = handle
	return handle, nil
}

// RemoveHeightfield destroys the body behind the handle. Unknown handles
// are ignored, so removal stays idempotent.
func (w *World) RemoveHeightfield(handle terrain.BodyHandle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	body, ok := w.bodies[handle]
	if !ok {
		return
	}
	delete(w.bodies, handle)
	if w.cells[body.cell] == handle {
		delete(w.cells, body.cell)
	}
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.bodies)
}

// HeightAt returns the terrain surface height at a world XZ position by
// bilinear interpolation over the covering heightfield. The bool is
// false when no body covers the point (the observer is over unloaded
// ground).
func (w *World) HeightAt(x, z float32) (float32, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	// The spatial index assumes bodies are chunk tiles on the FloorSize
	// grid, centered on their origin.
	handle, ok := w.cells[cellAt(x, z, terrain.FloorSize)]
	if !ok {
		return 0, false
	}
	body := w.bodies[handle]
	return body.sample(x, z), true
}

// sample bilinearly interpolates the height grid at a world position.
// Rows are indexed by X and columns by Z, matching the builder's
// x-outer/z-inner generation order.
func (b *heightfieldBody) sample(x, z float32) float32 {
	res := len(b.heights) - 1

	// position within the body footprint, in [0,1]
	u := (x-b.origin.X())/b.extent + 0.5
	v := (z-b.origin.Z())/b.extent + 0.5

	gx := clamp(float64(u)*float64(res), 0, float64(res))
	gz := clamp(float64(v)*float64(res), 0, float64(res))

	x0 := int(math.Floor(gx))
	z0 := int(math.Floor(gz))
	if x0 >= res {
		x0 = res - 1
	}
	if z0 >= res {
		z0 = res - 1
	}
	fx := float32(gx - float64(x0))
	fz := float32(gz - float64(z0))

	h00 := b.heights[x0][z0]
	h10 := b.heights[x0+1][z0]
	h01 := b.heights[x0][z0+1]
	h11 := b.heights[x0+1][z0+1]

	low := h00 + (h10-h00)*fx
	high := h01 + (h11-h01)*fx
	return low + (high-low)*fz
}

// FindGroundLevel returns the surface height under a walker, or a safe
// fallback when the covering chunk has not streamed in yet.
func (w *World) FindGroundLevel(x, z float32) float32 {
	if h, ok := w.HeightAt(x, z); ok {
		return h
	}
	return 1.0
}

// cellAt maps a world position to the covering body's cell key. Bodies
// span [origin-extent/2, origin+extent/2), so the query point is shifted
// by half an extent before flooring.
func cellAt(x, z, extent float32) [2]int {
	return [2]int{
		int(math.Floor(float64(x/extent + 0.5))),
		int(math.Floor(float64(z/extent + 0.5))),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
