package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights must match the pointLights array size in the lit shader.
const MaxPointLights = 8

// Uniforms is the part of a shader program lights write into.
type Uniforms interface {
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
}

// DirectionLight lights the whole scene from one direction, like the sun.
type DirectionLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3

	AmbientIntensity  float32
	DiffuseIntensity  float32
	SpecularIntensity float32
}

func NewDirectionLight(color, direction mgl32.Vec3) *DirectionLight {
	return &DirectionLight{
		Direction:         direction,
		Color:             color,
		AmbientIntensity:  0.05,
		DiffuseIntensity:  0.4,
		SpecularIntensity: 0.5,
	}
}

func (l *DirectionLight) Apply(u Uniforms, name string) {
	u.SetVec3(name+".direction", l.Direction)
	u.SetVec3(name+".ambient", l.Color.Mul(l.AmbientIntensity))
	u.SetVec3(name+".diffuse", l.Color.Mul(l.DiffuseIntensity))
	u.SetVec3(name+".specular", l.Color.Mul(l.SpecularIntensity))
}

// Attenuation holds the constant/linear/quadratic falloff terms.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

func (a Attenuation) apply(u Uniforms, name string) {
	u.SetFloat(name+".constant", a.Constant)
	u.SetFloat(name+".linear", a.Linear)
	u.SetFloat(name+".quadratic", a.Quadratic)
}

// PointLight radiates in every direction from Position and fades with
// distance. It is also drawn as a small lamp cube.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3

	AmbientIntensity  float32
	DiffuseIntensity  float32
	SpecularIntensity float32
	Attenuation
}

func NewPointLight(position, color mgl32.Vec3) *PointLight {
	return &PointLight{
		Position:          position,
		Color:             color,
		AmbientIntensity:  0.1,
		DiffuseIntensity:  0.8,
		SpecularIntensity: 1,
		Attenuation:       Attenuation{Constant: 1, Linear: 0.35, Quadratic: 0.44},
	}
}

func (l *PointLight) Apply(u Uniforms, name string) {
	u.SetVec3(name+".position", l.Position)
	u.SetVec3(name+".ambient", l.Color.Mul(l.AmbientIntensity))
	u.SetVec3(name+".diffuse", l.Color.Mul(l.DiffuseIntensity))
	u.SetVec3(name+".specular", l.Color.Mul(l.SpecularIntensity))
	l.Attenuation.apply(u, name)
}

// LampColor is the flat colour the light's marker cube is drawn with.
func (l *PointLight) LampColor() mgl32.Vec3 {
	return l.Color.Mul(l.DiffuseIntensity)
}

// SpotLight is a cone of light. CutOff and OuterCutOff are half-angles in
// degrees; between them the light fades out smoothly.
type SpotLight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3

	AmbientIntensity  float32
	DiffuseIntensity  float32
	SpecularIntensity float32
	CutOff            float32
	OuterCutOff       float32
	Attenuation
}

func NewSpotLight(color mgl32.Vec3, cutOff, outerCutOff float32) *SpotLight {
	return &SpotLight{
		Color:             color,
		AmbientIntensity:  0.1,
		DiffuseIntensity:  0.8,
		SpecularIntensity: 1,
		CutOff:            cutOff,
		OuterCutOff:       outerCutOff,
		Attenuation:       Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
	}
}

func (l *SpotLight) Apply(u Uniforms, name string) {
	u.SetBool("isSpotLightSetup", true)
	u.SetVec3(name+".position", l.Position)
	u.SetVec3(name+".direction", l.Direction)
	u.SetVec3(name+".ambient", l.Color.Mul(l.AmbientIntensity))
	u.SetVec3(name+".diffuse", l.Color.Mul(l.DiffuseIntensity))
	u.SetVec3(name+".specular", l.Color.Mul(l.SpecularIntensity))
	u.SetFloat(name+".cutOff", cosDeg(l.CutOff))
	u.SetFloat(name+".outerCutOff", cosDeg(l.OuterCutOff))
	l.Attenuation.apply(u, name)
}

// Follow points the light from pos along dir, e.g. a camera flashlight.
func (l *SpotLight) Follow(pos, dir mgl32.Vec3) {
	l.Position = pos
	l.Direction = dir
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// Lights is the full lighting rig of a lit shader.
type Lights struct {
	Direction *DirectionLight
	Points    []*PointLight
	Spot      *SpotLight // nil disables the spot light
}

// Apply writes every light. Point lights beyond MaxPointLights are dropped.
func (ls *Lights) Apply(u Uniforms) {
	if ls.Direction != nil {
		ls.Direction.Apply(u, "dirLight")
	}

	n := len(ls.Points)
	if n > MaxPointLights {
		n = MaxPointLights
	}
	u.SetInt("pointLightCount", int32(n))
	for i := 0; i < n; i++ {
		ls.Points[i].Apply(u, fmt.Sprintf("pointLights[%d]", i))
	}

	if ls.Spot != nil {
		ls.Spot.Apply(u, "spotLight")
	} else {
		u.SetBool("isSpotLightSetup", false)
	}
}
