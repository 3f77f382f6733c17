// Package transform provides the scale/rotation/position transform owned by every
// placed object and by the camera.
package transform

import "github.com/Faultbox/shaderbasics/pkg/math"

// Transform places an object in the world.
//
// The world matrix is derived on every call to World, so a mutation is visible to the
// next reader immediately. Rotation must be kept unit length by the owner; renormalize
// after composing incremental rotations.
type Transform struct {
	Scale    math.Vec3
	Position math.Vec3
	Rotation math.Quat
}

// New returns a transform with unit scale, identity rotation and origin position.
func New() Transform {
	return Transform{
		Scale:    math.Vec3One(),
		Rotation: math.QuatIdentity(),
	}
}

// At returns a default transform positioned at p.
func At(p math.Vec3) Transform {
	t := New()
	t.Position = p
	return t
}

// World returns the object-to-world matrix: scale first, then rotation, then translation.
func (t Transform) World() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(t.Rotation.ToMat4()).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// FromWorld rebuilds a transform from a TRS world matrix.
func FromWorld(m math.Mat4) Transform {
	s, r, p := m.Decompose()
	return Transform{Scale: s, Rotation: r, Position: p}
}

// Degenerate reports whether the world matrix cannot be inverted.
func (t Transform) Degenerate() bool {
	_, ok := t.World().Invert()
	return !ok
}
