package game

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"terrain-stream/internal/config"
	"terrain-stream/internal/graphics"
	"terrain-stream/internal/player"
	"terrain-stream/internal/profiling"
	"terrain-stream/internal/terrain"
)

// Session owns the per-frame loop: input, player movement, one streaming
// tick, then rendering.
type Session struct {
	window   *glfw.Window
	player   *player.Player
	streamer *terrain.ChunkStreamer
	renderer *graphics.TerrainRenderer
	camera   *graphics.Camera

	fpsLimiter *FPSLimiter
	lastTime   time.Time

	titleTimer float64
	keyHeld    map[glfw.Key]bool
}

// NewSession wires a session from its parts and installs input callbacks.
func NewSession(
	window *glfw.Window,
	p *player.Player,
	streamer *terrain.ChunkStreamer,
	renderer *graphics.TerrainRenderer,
	camera *graphics.Camera,
) *Session {
	s := &Session{
		window:     window,
		player:     p,
		streamer:   streamer,
		renderer:   renderer,
		camera:     camera,
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
		keyHeld:    make(map[glfw.Key]bool),
	}

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		p.HandleMouseMovement(xpos, ypos)
	})

	return s
}

// Run drives the frame loop until the window closes. A streaming error
// is fatal: a chunk the collaborators rejected means the configuration
// is broken, and continuing would leave holes in the collision surface.
func (s *Session) Run() {
	for !s.window.ShouldClose() {
		s.tick()
		s.fpsLimiter.Wait()
	}
}

func (s *Session) tick() {
	profiling.ResetFrame()

	now := time.Now()
	dt := now.Sub(s.lastTime).Seconds()
	s.lastTime = now

	glfw.PollEvents()
	s.handleStreamingKeys()

	s.player.UpdatePosition(dt, s.window)

	s.streamer.SetPolicy(terrain.StreamingPolicy{
		SpawnRadius:   config.GetSpawnRadius(),
		DespawnRadius: config.GetDespawnRadius(),
	})
	if err := s.streamer.Tick(); err != nil {
		log.Fatalf("terrain streaming failed: %v", err)
	}

	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := s.player.GetViewMatrix()
	proj := s.camera.GetProjectionMatrix()
	s.renderer.Draw(view, proj)

	s.window.SwapBuffers()
	s.updateTitle(dt)
}

// handleStreamingKeys adjusts the streaming radii: [ and ] for spawn,
// - and = for despawn.
func (s *Session) handleStreamingKeys() {
	if s.justPressed(glfw.KeyLeftBracket) {
		config.SetSpawnRadius(config.GetSpawnRadius() - 1)
	}
	if s.justPressed(glfw.KeyRightBracket) {
		config.SetSpawnRadius(config.GetSpawnRadius() + 1)
	}
	if s.justPressed(glfw.KeyMinus) {
		config.SetDespawnRadius(config.GetDespawnRadius() - 1)
	}
	if s.justPressed(glfw.KeyEqual) {
		config.SetDespawnRadius(config.GetDespawnRadius() + 1)
	}
	if s.window.GetKey(glfw.KeyEscape) == glfw.Press {
		s.window.SetShouldClose(true)
	}
}

func (s *Session) justPressed(key glfw.Key) bool {
	pressed := s.window.GetKey(key) == glfw.Press
	was := s.keyHeld[key]
	s.keyHeld[key] = pressed
	return pressed && !was
}

// updateTitle refreshes the window title with streaming stats twice a second.
func (s *Session) updateTitle(dt float64) {
	s.titleTimer += dt
	if s.titleTimer < 0.5 {
		return
	}
	s.titleTimer = 0

	s.window.SetTitle(fmt.Sprintf(
		"terrainview | chunks:%d gen:%d r:%d/%d | %s",
		s.streamer.Index().Len(),
		s.streamer.GeneratedCount(),
		config.GetSpawnRadius(),
		config.GetDespawnRadius(),
		profiling.TopN(3),
	))
}
