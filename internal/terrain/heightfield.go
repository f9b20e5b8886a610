package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/profiling"
)

// Mesh is an indexed triangle list in chunk-local coordinates. Positions
// span [-FloorSize/2, FloorSize/2] on X/Z; Y carries the terrain height.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HeightfieldBuilder turns a chunk coordinate into a render mesh and a
// matching height matrix for the collision backend.
type HeightfieldBuilder struct {
	noise       *LayeredNoise
	noiseScale  float64
	heightScale float64
}

// NewHeightfieldBuilder creates a builder sampling the given noise field
// with the reference scales (noise 0.02, height 6.0).
func NewHeightfieldBuilder(noise *LayeredNoise) *HeightfieldBuilder {
	return &HeightfieldBuilder{
		noise:       noise,
		noiseScale:  0.02,
		heightScale: 6.0,
	}
}

// Build generates the mesh and height matrix for one chunk at the given
// grid resolution (resolution cells per edge, resolution+1 samples).
//
// Vertices, UVs and the height matrix come out of one x-outer/z-inner
// loop, so the mesh vertex at flattened index x*(resolution+1)+z and
// heights[x][z] are always the same value. Keeping a single pass here is
// load-bearing: the physics backend consumes heights verbatim, and a
// second independently-ordered loop could silently transpose the
// collider relative to the visible surface.
func (b *HeightfieldBuilder) Build(coord ChunkCoord, resolution int) (*Mesh, [][]float32, error) {
	defer profiling.Track("terrain.BuildHeightfield")()

	if resolution <= 0 {
		return nil, nil, fmt.Errorf("heightfield resolution must be positive, got %d", resolution)
	}

	originX, originZ := coord.WorldOrigin()
	verts := resolution + 1

	mesh := &Mesh{
		Positions: make([]mgl32.Vec3, 0, verts*verts),
		UVs:       make([]mgl32.Vec2, 0, verts*verts),
		Indices:   make([]uint32, 0, 6*resolution*resolution),
	}
	heights := make([][]float32, 0, verts)

	for x := 0; x <= resolution; x++ {
		column := make([]float32, 0, verts)
		for z := 0; z <= resolution; z++ {
			xPos := (float64(x)/float64(resolution) - 0.5) * FloorSize
			zPos := (float64(z)/float64(resolution) - 0.5) * FloorSize

			// Noise is sampled at true world coordinates so adjacent
			// chunks line up without sharing border vertices.
			height := float32(b.noise.Height(
				(originX+xPos)*b.noiseScale,
				(originZ+zPos)*b.noiseScale,
			) * b.heightScale)

			mesh.Positions = append(mesh.Positions, mgl32.Vec3{float32(xPos), height, float32(zPos)})
			mesh.UVs = append(mesh.UVs, mgl32.Vec2{
				float32(x) / float32(resolution),
				float32(z) / float32(resolution),
			})
			column = append(column, height)
		}
		heights = append(heights, column)
	}

	// Two triangles per grid cell. Corner index is x*(resolution+1)+z,
	// matching the vertex loop above exactly.
	for x := 0; x < resolution; x++ {
		for z := 0; z < resolution; z++ {
			topLeft := uint32(x*(resolution+1) + z)
			topRight := topLeft + 1
			bottomLeft := uint32((x+1)*(resolution+1) + z)
			bottomRight := bottomLeft + 1

			mesh.Indices = append(mesh.Indices,
				bottomLeft, topLeft, topRight,
				bottomLeft, topRight, bottomRight,
			)
		}
	}

	mesh.Normals = computeSmoothNormals(mesh.Positions, mesh.Indices)

	return mesh, heights, nil
}

// computeSmoothNormals accumulates area-weighted face normals on every
// shared vertex and normalizes the result.
func computeSmoothNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])
		face := e1.Cross(e2)
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if n.Len() == 0 {
			// vertex not referenced by any triangle
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}
