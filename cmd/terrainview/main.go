package main

import (
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"terrain-stream/internal/game"
	"terrain-stream/internal/graphics"
	"terrain-stream/internal/physics"
	"terrain-stream/internal/player"
	"terrain-stream/internal/terrain"
)

const (
	winW = 1280
	winH = 720

	noiseLayers     = 8
	chunkResolution = 100
)

func init() { runtime.LockOSThread() }

func main() {
	defer closer.Close()

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	closer.Bind(glfw.Terminate)

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "terrainview", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		log.Fatalf("gl init: %v", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	renderer, err := graphics.NewTerrainRenderer("assets/textures/grass.png")
	if err != nil {
		log.Fatalf("terrain renderer: %v", err)
	}
	closer.Bind(renderer.Close)

	collisionWorld := physics.NewWorld()
	gamePlayer := player.New(collisionWorld)

	observers := terrain.NewObserverSet()
	observers.Add(gamePlayer.ObserverPosition)

	noise := terrain.NewLayeredNoise(noiseLayers)
	builder := terrain.NewHeightfieldBuilder(noise)
	streamer := terrain.NewChunkStreamer(
		terrain.DefaultStreamingPolicy(),
		chunkResolution,
		builder,
		terrain.NewChunkIndex(),
		observers,
		renderer,
		collisionWorld,
	)

	// Stream the spawn area before the first frame, then drop the player
	// onto the generated surface.
	if err := streamer.Tick(); err != nil {
		log.Fatalf("initial terrain generation: %v", err)
	}
	ground := collisionWorld.FindGroundLevel(0, 0)
	gamePlayer.Position[1] = ground + 2

	session := game.NewSession(window, gamePlayer, streamer, renderer, graphics.NewCamera(winW, winH))
	session.Run()
}
