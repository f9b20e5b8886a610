package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/profiling"
)

// StreamingPolicy sets how far around the observer chunks are kept.
// DespawnRadius is intended to be >= SpawnRadius: the gap is the
// hysteresis that stops a chunk from being created and destroyed over
// and over while the observer straddles the spawn boundary. A negative
// DespawnRadius disables despawning entirely.
type StreamingPolicy struct {
	SpawnRadius   int
	DespawnRadius int
}

// DefaultStreamingPolicy returns the reference radii (spawn 3, despawn 5,
// so a 7x7 visible square with an 11x11 retention margin).
func DefaultStreamingPolicy() StreamingPolicy {
	return StreamingPolicy{SpawnRadius: 3, DespawnRadius: 5}
}

// RenderBackend owns the drawable side of a chunk.
type RenderBackend interface {
	// AddTerrain registers a chunk mesh placed at the given world origin
	// and returns a handle for later removal.
	AddTerrain(mesh *Mesh, origin mgl32.Vec3) (RenderHandle, error)
	// RemoveTerrain destroys the drawable behind the handle.
	RemoveTerrain(handle RenderHandle)
}

// PhysicsBackend owns the collision side of a chunk. Heights arrive
// pre-scaled; the collider applies no further vertical scaling.
type PhysicsBackend interface {
	// AddHeightfield registers a square heightfield of the given
	// horizontal extent centered on origin.
	AddHeightfield(heights [][]float32, extent float32, origin mgl32.Vec3) (BodyHandle, error)
	// RemoveHeightfield destroys the body behind the handle.
	RemoveHeightfield(handle BodyHandle)
}

// ChunkStreamer keeps the chunk index consistent with the observer's
// position. All work happens synchronously inside Tick: a tick that
// needs N chunks pays the full generation cost of all N before
// returning. Known stutter risk for large radii or teleports; background
// generation would need the index to track in-flight keys and is left as
// an extension.
type ChunkStreamer struct {
	policy     StreamingPolicy
	resolution int

	builder   *HeightfieldBuilder
	index     *ChunkIndex
	observers ObserverSource
	render    RenderBackend
	physics   PhysicsBackend

	generated uint64
}

// NewChunkStreamer wires a streamer from its collaborators. The index is
// injected rather than owned globally so tests can inspect it directly.
func NewChunkStreamer(
	policy StreamingPolicy,
	resolution int,
	builder *HeightfieldBuilder,
	index *ChunkIndex,
	observers ObserverSource,
	render RenderBackend,
	physics PhysicsBackend,
) *ChunkStreamer {
	return &ChunkStreamer{
		policy:     policy,
		resolution: resolution,
		builder:    builder,
		index:      index,
		observers:  observers,
		render:     render,
		physics:    physics,
	}
}

// SetPolicy replaces the streaming radii. Takes effect on the next Tick.
func (cs *ChunkStreamer) SetPolicy(policy StreamingPolicy) {
	cs.policy = policy
}

// Index returns the streamer's chunk index.
func (cs *ChunkStreamer) Index() *ChunkIndex {
	return cs.index
}

// GeneratedCount returns how many chunks have been generated since
// construction. Useful for idempotence checks and the debug overlay.
func (cs *ChunkStreamer) GeneratedCount() uint64 {
	return cs.generated
}

// Tick runs one streaming update: spawn every missing chunk within
// SpawnRadius of the observer, then despawn every registered chunk
// outside DespawnRadius. Both passes see the same position snapshot.
// With zero or multiple observers the tick is a no-op.
//
// A collaborator rejecting a generated chunk aborts the tick with an
// error: a silently skipped chunk would leave a hole in the collision
// surface, which is worse than failing loudly.
func (cs *ChunkStreamer) Tick() error {
	defer profiling.Track("terrain.StreamTick")()

	pos, ok := cs.observers.ObserverPosition()
	if !ok {
		return nil
	}
	center := CoordAt(float64(pos.X()), float64(pos.Z()))

	for dz := -cs.policy.SpawnRadius; dz <= cs.policy.SpawnRadius; dz++ {
		for dx := -cs.policy.SpawnRadius; dx <= cs.policy.SpawnRadius; dx++ {
			key := center.Add(dx, dz)
			if cs.index.Contains(key) {
				continue
			}
			if err := cs.spawnChunk(key); err != nil {
				return err
			}
		}
	}

	if cs.policy.DespawnRadius >= 0 {
		for _, entry := range cs.index.Snapshot() {
			dx := entry.Coord.X - center.X
			dz := entry.Coord.Z - center.Z
			if abs(dx) > cs.policy.DespawnRadius || abs(dz) > cs.policy.DespawnRadius {
				cs.despawnChunk(entry.Coord)
			}
		}
	}

	return nil
}

// spawnChunk generates one chunk, registers it with both collaborators
// and records it in the index.
func (cs *ChunkStreamer) spawnChunk(key ChunkCoord) error {
	mesh, heights, err := cs.builder.Build(key, cs.resolution)
	if err != nil {
		return fmt.Errorf("generate chunk (%d,%d): %w", key.X, key.Z, err)
	}
	cs.generated++

	ox, oz := key.WorldOrigin()
	origin := mgl32.Vec3{float32(ox), 0, float32(oz)}

	renderHandle, err := cs.render.AddTerrain(mesh, origin)
	if err != nil {
		return fmt.Errorf("register chunk (%d,%d) mesh: %w", key.X, key.Z, err)
	}

	bodyHandle, err := cs.physics.AddHeightfield(heights, FloorSize, origin)
	if err != nil {
		cs.render.RemoveTerrain(renderHandle)
		return fmt.Errorf("register chunk (%d,%d) heightfield: %w", key.X, key.Z, err)
	}

	return cs.index.Insert(key, ChunkHandle{Render: renderHandle, Body: bodyHandle})
}

// despawnChunk removes a chunk from the index and destroys its resources.
func (cs *ChunkStreamer) despawnChunk(key ChunkCoord) {
	handle, ok := cs.index.Remove(key)
	if !ok {
		return
	}
	cs.render.RemoveTerrain(handle.Render)
	cs.physics.RemoveHeightfield(handle.Body)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
