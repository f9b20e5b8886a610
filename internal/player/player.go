package player

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"terrain-stream/internal/physics"
	"terrain-stream/internal/profiling"
)

const (
	EyeHeight = 1.6

	WalkSpeed    = 6.0
	Gravity      = 20.0
	JumpVelocity = 7.5
)

// Player is the first-person walker whose position drives chunk
// streaming. It rides the physics heightfield rather than a block grid.
type Player struct {
	Position  mgl32.Vec3
	VelocityY float32
	OnGround  bool

	CamYaw   float64
	CamPitch float64

	lastMouseX float64
	lastMouseY float64
	firstMouse bool

	world *physics.World
}

// New creates a player standing at the world origin.
func New(world *physics.World) *Player {
	return &Player{
		Position:   mgl32.Vec3{0, 10, 0},
		CamYaw:     -90.0,
		CamPitch:   -15.0,
		firstMouse: true,
		world:      world,
	}
}

// ObserverPosition satisfies the streamer's observer capability.
func (p *Player) ObserverPosition() mgl32.Vec3 {
	return p.Position
}

// HandleMouseMovement updates the look direction from a cursor callback.
func (p *Player) HandleMouseMovement(xpos, ypos float64) {
	if p.firstMouse {
		p.lastMouseX = xpos
		p.lastMouseY = ypos
		p.firstMouse = false
		return
	}

	xoffset := xpos - p.lastMouseX
	yoffset := p.lastMouseY - ypos
	p.lastMouseX = xpos
	p.lastMouseY = ypos

	sensitivity := 0.1
	p.CamYaw += xoffset * sensitivity
	p.CamPitch += yoffset * sensitivity

	// Constrain pitch
	if p.CamPitch > 89.0 {
		p.CamPitch = 89.0
	}
	if p.CamPitch < -89.0 {
		p.CamPitch = -89.0
	}
}

// UpdatePosition advances the walker one frame: WASD movement in the
// camera's horizontal plane, gravity, and a snap onto the heightfield
// surface when falling through it.
func (p *Player) UpdatePosition(dt float64, window *glfw.Window) {
	defer profiling.Track("player.UpdatePosition")()

	front := p.FrontVector()
	flatFront := mgl32.Vec3{front.X(), 0, front.Z()}
	if flatFront.Len() > 0 {
		flatFront = flatFront.Normalize()
	}
	right := flatFront.Cross(mgl32.Vec3{0, 1, 0})

	moveDir := mgl32.Vec3{}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		moveDir = moveDir.Add(flatFront)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		moveDir = moveDir.Sub(flatFront)
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		moveDir = moveDir.Sub(right)
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		moveDir = moveDir.Add(right)
	}
	if moveDir.Len() > 0 {
		moveDir = moveDir.Normalize().Mul(WalkSpeed * float32(dt))
	}

	if p.OnGround && window.GetKey(glfw.KeySpace) == glfw.Press {
		p.VelocityY = JumpVelocity
		p.OnGround = false
	}

	p.VelocityY -= Gravity * float32(dt)

	next := p.Position.Add(mgl32.Vec3{moveDir.X(), p.VelocityY * float32(dt), moveDir.Z()})

	ground := p.world.FindGroundLevel(next.X(), next.Z())
	if next.Y() <= ground {
		next[1] = ground
		p.VelocityY = 0
		p.OnGround = true
	} else {
		p.OnGround = false
	}

	p.Position = next
}

// FrontVector returns the camera's forward direction.
func (p *Player) FrontVector() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(p.CamYaw))
	pitch := mgl32.DegToRad(float32(p.CamPitch))
	fx := float32(math.Cos(float64(yaw)) * math.Cos(float64(pitch)))
	fy := float32(math.Sin(float64(pitch)))
	fz := float32(math.Sin(float64(yaw)) * math.Cos(float64(pitch)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// GetViewMatrix returns the camera view matrix at eye height.
func (p *Player) GetViewMatrix() mgl32.Mat4 {
	eye := p.Position.Add(mgl32.Vec3{0, EyeHeight, 0})
	return mgl32.LookAtV(eye, eye.Add(p.FrontVector()), mgl32.Vec3{0, 1, 0})
}
