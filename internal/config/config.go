package config

import "sync"

// StreamingSettings holds runtime-tunable chunk streaming configuration
type StreamingSettings struct {
	mu            sync.RWMutex
	spawnRadius   int
	despawnRadius int
	fpsLimit      int
}

var globalStreamingSettings = &StreamingSettings{
	spawnRadius:   3,
	despawnRadius: 5,
	fpsLimit:      120,
}

// GetSpawnRadius returns the radius (in chunks) kept generated around the observer
func GetSpawnRadius() int {
	globalStreamingSettings.mu.RLock()
	defer globalStreamingSettings.mu.RUnlock()
	return globalStreamingSettings.spawnRadius
}

// SetSpawnRadius sets the spawn radius in chunks
func SetSpawnRadius(radius int) {
	globalStreamingSettings.mu.Lock()
	defer globalStreamingSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < 0 {
		radius = 0
	}
	if radius > 16 {
		radius = 16
	}

	globalStreamingSettings.spawnRadius = radius
}

// GetDespawnRadius returns the radius beyond which chunks are torn down.
// Negative means despawning is disabled.
func GetDespawnRadius() int {
	globalStreamingSettings.mu.RLock()
	defer globalStreamingSettings.mu.RUnlock()
	return globalStreamingSettings.despawnRadius
}

// SetDespawnRadius sets the despawn radius in chunks. Any negative value
// is stored as -1, the disabled sentinel. Values below the spawn radius
// cause spawn/despawn churn at the boundary; they are accepted but
// should be avoided.
func SetDespawnRadius(radius int) {
	globalStreamingSettings.mu.Lock()
	defer globalStreamingSettings.mu.Unlock()

	if radius < 0 {
		radius = -1
	}
	if radius > 32 {
		radius = 32
	}

	globalStreamingSettings.despawnRadius = radius
}

// GetFPSLimit returns the frame rate cap (0 disables the limiter)
func GetFPSLimit() int {
	globalStreamingSettings.mu.RLock()
	defer globalStreamingSettings.mu.RUnlock()
	return globalStreamingSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalStreamingSettings.mu.Lock()
	defer globalStreamingSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}

	globalStreamingSettings.fpsLimit = limit
}
