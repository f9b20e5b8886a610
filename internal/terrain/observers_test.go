package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestObserverSetEmpty(t *testing.T) {
	os := NewObserverSet()
	if _, ok := os.ObserverPosition(); ok {
		t.Errorf("empty set reported an observer position")
	}
}

func TestObserverSetSingle(t *testing.T) {
	os := NewObserverSet()
	want := mgl32.Vec3{4, 0, -12}
	os.Add(func() mgl32.Vec3 { return want })

	got, ok := os.ObserverPosition()
	if !ok || got != want {
		t.Errorf("ObserverPosition = %v (ok=%v), want %v", got, ok, want)
	}
}

// TestObserverSetAmbiguous verifies that with more than one observer the
// set yields nothing: the streamer must idle rather than guess.
func TestObserverSetAmbiguous(t *testing.T) {
	os := NewObserverSet()
	os.Add(func() mgl32.Vec3 { return mgl32.Vec3{1, 0, 1} })
	os.Add(func() mgl32.Vec3 { return mgl32.Vec3{2, 0, 2} })

	if _, ok := os.ObserverPosition(); ok {
		t.Errorf("set with two observers reported a position")
	}
}
