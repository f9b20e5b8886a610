package terrain

import "testing"

// TestFloorDiv verifies floor (not truncating) division semantics.
func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{0, 8, 0},
		{7, 8, 0},
		{8, 8, 1},
		{-1, 8, -1},
		{-8, 8, -1},
		{-9, 8, -2},
		{15, 8, 1},
		{-16, 8, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// TestCoordAtNegative verifies that a slightly negative world position
// maps to chunk -1, not chunk 0.
func TestCoordAtNegative(t *testing.T) {
	coord := CoordAt(-1.0, -1.0)
	if coord.X != -1 || coord.Z != -1 {
		t.Errorf("CoordAt(-1, -1) = (%d,%d), want (-1,-1)", coord.X, coord.Z)
	}
}

func TestCoordAtBoundaries(t *testing.T) {
	cases := []struct {
		x, z   float64
		wantX  int
		wantZ  int
	}{
		{0, 0, 0, 0},
		{7.99, 7.99, 0, 0},
		{8.0, 0, 1, 0},
		{-0.01, 0, -1, 0},
		{-8.0, -8.0, -1, -1},
		{-8.01, 0, -2, 0},
		{100, -100, 12, -13},
	}
	for _, c := range cases {
		got := CoordAt(c.x, c.z)
		if got.X != c.wantX || got.Z != c.wantZ {
			t.Errorf("CoordAt(%f, %f) = (%d,%d), want (%d,%d)",
				c.x, c.z, got.X, got.Z, c.wantX, c.wantZ)
		}
	}
}

func TestCoordAdd(t *testing.T) {
	c := ChunkCoord{X: 2, Z: -3}.Add(-5, 4)
	if c.X != -3 || c.Z != 1 {
		t.Errorf("Add produced (%d,%d), want (-3,1)", c.X, c.Z)
	}
}

func TestWorldOrigin(t *testing.T) {
	x, z := ChunkCoord{X: -2, Z: 3}.WorldOrigin()
	if x != -16 || z != 24 {
		t.Errorf("WorldOrigin = (%f,%f), want (-16,24)", x, z)
	}
}
