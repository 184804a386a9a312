package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Flashlight is a camera-mounted spot light that fades in and out when
// toggled instead of snapping.
type Flashlight struct {
	Light *SpotLight
	// FadeTime is the length of a full fade from off to on in seconds.
	FadeTime float32

	on    bool
	level float32 // 0 = dark, 1 = full intensity
	fade  *gween.Tween

	ambient, diffuse, specular float32
}

// NewFlashlight wraps light; its current intensities are the "on" levels.
func NewFlashlight(light *SpotLight) *Flashlight {
	return &Flashlight{
		Light:    light,
		FadeTime: 0.2,
		ambient:  light.AmbientIntensity,
		diffuse:  light.DiffuseIntensity,
		specular: light.SpecularIntensity,
	}
}

func (f *Flashlight) On() bool { return f.on }

// Level is the current brightness in [0,1].
func (f *Flashlight) Level() float32 { return f.level }

// Toggle flips the switch and starts a fade from the current level.
func (f *Flashlight) Toggle() {
	f.on = !f.on
	target := float32(0)
	if f.on {
		target = 1
	}
	duration := f.FadeTime * abs32(target-f.level)
	if duration <= 0 {
		f.level = target
		f.fade = nil
		return
	}
	f.fade = gween.New(f.level, target, duration, ease.OutQuad)
}

// Update advances the fade and aims the light from pos along dir.
func (f *Flashlight) Update(dt float32, pos, dir mgl32.Vec3) {
	if f.fade != nil {
		level, done := f.fade.Update(dt)
		f.level = level
		if done {
			f.fade = nil
		}
	}
	f.Light.Follow(pos, dir)
	f.Light.AmbientIntensity = f.ambient * f.level
	f.Light.DiffuseIntensity = f.diffuse * f.level
	f.Light.SpecularIntensity = f.specular * f.level
}

// Spot returns the light to render with, or nil while fully dark.
func (f *Flashlight) Spot() *SpotLight {
	if f.level <= 0 {
		return nil
	}
	return f.Light
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
