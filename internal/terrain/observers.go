package terrain

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ObserverSource yields the world position the streamer should center on.
// The bool is false when no position is available this tick.
type ObserverSource interface {
	ObserverPosition() (mgl32.Vec3, bool)
}

// PositionFunc reads the current world position of one observer entity.
type PositionFunc func() mgl32.Vec3

// ObserverSet is a capability registry for entities carrying the
// chunk-observer role. Exactly one registered observer is expected; with
// zero or several the set reports no position and the streamer idles,
// which is a valid state rather than an error.
type ObserverSet struct {
	mu      sync.RWMutex
	sources []PositionFunc
}

// NewObserverSet creates an empty observer registry.
func NewObserverSet() *ObserverSet {
	return &ObserverSet{}
}

// Add registers an observer position source.
func (os *ObserverSet) Add(src PositionFunc) {
	os.mu.Lock()
	defer os.mu.Unlock()
	os.sources = append(os.sources, src)
}

// ObserverPosition returns the single observer's position, or false when
// the registry holds zero or more than one observer.
func (os *ObserverSet) ObserverPosition() (mgl32.Vec3, bool) {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if len(os.sources) != 1 {
		return mgl32.Vec3{}, false
	}
	return os.sources[0](), true
}
