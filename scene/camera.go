package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard-driven camera direction.
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
	MoveLeft
	MoveRight
)

const (
	defaultYaw         = -90.0
	defaultSpeed       = 2.5
	defaultSensitivity = 0.1
	defaultZoom        = 45.0
	maxPitch           = 89.0
	minZoom            = 1.0
)

// Camera is a first-person camera driven by Euler angles (degrees).
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	Zoom        float32 // vertical field of view

	NearPlane float32
	FarPlane  float32
}

func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         defaultYaw,
		Speed:       defaultSpeed,
		Sensitivity: defaultSensitivity,
		Zoom:        defaultZoom,
		NearPlane:   0.1,
		FarPlane:    100,
	}
	c.updateVectors()
	return c
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, c.NearPlane, c.FarPlane)
}

// ProcessKeyboard flies the camera along its own axes.
func (c *Camera) ProcessKeyboard(dir Movement, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch dir {
	case MoveForward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case MoveBackward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case MoveLeft:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case MoveRight:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by a cursor offset in pixels.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	c.Yaw += xOffset * c.Sensitivity
	c.Pitch += yOffset * c.Sensitivity

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll zooms by narrowing the field of view.
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-yOffset, minZoom, defaultZoom)
}

// Forward is Front flattened onto the ground plane, for walking.
func (c *Camera) Forward() mgl32.Vec3 {
	f := mgl32.Vec3{c.Front[0], 0, c.Front[2]}
	if f.Len() == 0 {
		return f
	}
	return f.Normalize()
}

func (c *Camera) UpdatePosition(p mgl32.Vec3) {
	c.Position = p
}

func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
