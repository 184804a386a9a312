package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"tilegl/core"
	"tilegl/input"
	"tilegl/scene"
)

// moveKeys binds each movement to a QWERTY key and its Dvorak position
// (, O A E).
var moveKeys = []struct {
	dir  scene.Movement
	keys []int
}{
	{scene.MoveForward, []int{core.KeyW, core.KeyComma, core.KeyUp}},
	{scene.MoveBackward, []int{core.KeyS, core.KeyO, core.KeyDown}},
	{scene.MoveLeft, []int{core.KeyA, core.KeyLeft}},
	{scene.MoveRight, []int{core.KeyD, core.KeyE, core.KeyRight}},
}

func watchMovement(in *input.Manager) {
	for _, mk := range moveKeys {
		in.Watch(mk.keys...)
	}
}

func movementHeld(in *input.Manager, dir scene.Movement) bool {
	for _, mk := range moveKeys {
		if mk.dir != dir {
			continue
		}
		for _, k := range mk.keys {
			if in.IsKeyDown(k) {
				return true
			}
		}
	}
	return false
}

// look applies this frame's mouse motion and scroll to cam.
func look(in *input.Manager, cam *scene.Camera) {
	if in.MouseDeltaX != 0 || in.MouseDeltaY != 0 {
		cam.ProcessMouseMovement(float32(in.MouseDeltaX), float32(in.MouseDeltaY), true)
	}
	if in.ScrollDelta != 0 {
		cam.ProcessMouseScroll(float32(in.ScrollDelta))
	}
}

// fly moves a free camera along its own axes.
func fly(in *input.Manager, cam *scene.Camera, dt float32) {
	for _, mk := range moveKeys {
		if movementHeld(in, mk.dir) {
			cam.ProcessKeyboard(mk.dir, dt)
		}
	}
}

// walkDirection sums the held movement keys into a direction on the
// ground plane. The result is not normalised; zero means stand still.
func walkDirection(in *input.Manager, cam *scene.Camera) mgl32.Vec3 {
	forward := cam.Forward()
	right := mgl32.Vec3{cam.Right[0], 0, cam.Right[2]}

	var dir mgl32.Vec3
	if movementHeld(in, scene.MoveForward) {
		dir = dir.Add(forward)
	}
	if movementHeld(in, scene.MoveBackward) {
		dir = dir.Sub(forward)
	}
	if movementHeld(in, scene.MoveLeft) {
		dir = dir.Sub(right)
	}
	if movementHeld(in, scene.MoveRight) {
		dir = dir.Add(right)
	}
	return dir
}
