package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/terrain"
)

// testGrid is a 3x3 height matrix over one chunk footprint, rows indexed
// by X and columns by Z.
func testGrid() [][]float32 {
	return [][]float32{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	}
}

func addTestBody(t *testing.T, w *World, origin mgl32.Vec3) terrain.BodyHandle {
	t.Helper()
	handle, err := w.AddHeightfield(testGrid(), terrain.FloorSize, origin)
	if err != nil {
		t.Fatalf("AddHeightfield failed: %v", err)
	}
	return handle
}

func TestHeightAtGridNodes(t *testing.T) {
	w := NewWorld()
	addTestBody(t, w, mgl32.Vec3{})

	// grid node i sits at (i/2 - 0.5) * extent from the body center; the
	// +extent/2 edge belongs to the neighboring cell, so only the low edge
	// and center nodes are queried here
	nodes := []float32{-terrain.FloorSize / 2, 0}
	grid := testGrid()
	for xi, x := range nodes {
		for zi, z := range nodes {
			got, ok := w.HeightAt(x, z)
			if !ok {
				t.Fatalf("HeightAt(%v,%v) found no body", x, z)
			}
			if got != grid[xi][zi] {
				t.Errorf("HeightAt(%v,%v) = %v, want %v", x, z, got, grid[xi][zi])
			}
		}
	}
}

func TestHeightAtBilinearMidpoints(t *testing.T) {
	w := NewWorld()
	addTestBody(t, w, mgl32.Vec3{})

	// midpoint of the first cell: average of its four corners
	quarter := float32(terrain.FloorSize) / 4
	got, ok := w.HeightAt(-quarter, -quarter)
	if !ok {
		t.Fatal("HeightAt found no body")
	}
	want := float32(0+1+3+4) / 4
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("cell midpoint = %v, want %v", got, want)
	}

	// halfway along the x edge at z = -extent/2
	got, ok = w.HeightAt(-quarter, -terrain.FloorSize/2)
	if !ok {
		t.Fatal("HeightAt found no body")
	}
	want = float32(0+3) / 2
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("edge midpoint = %v, want %v", got, want)
	}
}

func TestHeightAtOutsideCoverage(t *testing.T) {
	w := NewWorld()
	addTestBody(t, w, mgl32.Vec3{})

	if _, ok := w.HeightAt(terrain.FloorSize * 3, 0); ok {
		t.Errorf("HeightAt reported coverage three chunks away")
	}
	if _, ok := w.HeightAt(0, -terrain.FloorSize*2); ok {
		t.Errorf("HeightAt reported coverage two chunks south")
	}
}

func TestHeightAtNeighboringBodies(t *testing.T) {
	w := NewWorld()
	addTestBody(t, w, mgl32.Vec3{})
	addTestBody(t, w, mgl32.Vec3{terrain.FloorSize, 0, 0})

	// one query in each chunk resolves against the right body
	if _, ok := w.HeightAt(1, 1); !ok {
		t.Errorf("no coverage in first chunk")
	}
	if _, ok := w.HeightAt(terrain.FloorSize+1, 1); !ok {
		t.Errorf("no coverage in second chunk")
	}
	if w.BodyCount() != 2 {
		t.Errorf("BodyCount = %d, want 2", w.BodyCount())
	}
}

func TestRemoveHeightfield(t *testing.T) {
	w := NewWorld()
	handle := addTestBody(t, w, mgl32.Vec3{})

	w.RemoveHeightfield(handle)
	if w.BodyCount() != 0 {
		t.Errorf("BodyCount = %d after removal, want 0", w.BodyCount())
	}
	if _, ok := w.HeightAt(0, 0); ok {
		t.Errorf("HeightAt still reports coverage after removal")
	}

	// removing again is a no-op
	w.RemoveHeightfield(handle)
	w.RemoveHeightfield(terrain.BodyHandle(999))
}

func TestAddHeightfieldRejectsMalformedGrids(t *testing.T) {
	w := NewWorld()

	if _, err := w.AddHeightfield([][]float32{{1}}, terrain.FloorSize, mgl32.Vec3{}); err == nil {
		t.Errorf("single-row grid accepted")
	}
	ragged := [][]float32{{0, 1}, {2}}
	if _, err := w.AddHeightfield(ragged, terrain.FloorSize, mgl32.Vec3{}); err == nil {
		t.Errorf("ragged grid accepted")
	}
	if _, err := w.AddHeightfield(testGrid(), 0, mgl32.Vec3{}); err == nil {
		t.Errorf("zero extent accepted")
	}
	if _, err := w.AddHeightfield(testGrid(), -terrain.FloorSize, mgl32.Vec3{}); err == nil {
		t.Errorf("negative extent accepted")
	}
	if w.BodyCount() != 0 {
		t.Errorf("rejected grids left %d bodies behind", w.BodyCount())
	}
}

func TestFindGroundLevelFallback(t *testing.T) {
	w := NewWorld()
	if got := w.FindGroundLevel(0, 0); got != 1.0 {
		t.Errorf("FindGroundLevel over empty world = %v, want 1.0", got)
	}

	addTestBody(t, w, mgl32.Vec3{})
	if got := w.FindGroundLevel(0, 0); got != 4 {
		t.Errorf("FindGroundLevel at body center = %v, want 4", got)
	}
}
