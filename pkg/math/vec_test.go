package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Cross(t *testing.T) {
	assert.Equal(t, float32(1), Vec2{1, 0}.Cross(Vec2{0, 1}))
	assert.Equal(t, float32(-1), Vec2{0, 1}.Cross(Vec2{1, 0}))
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	assert.InDelta(t, 1, v.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	assert.InDelta(t, 1, Vec3{3, 4, 12}.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3Directions(t *testing.T) {
	assert.Equal(t, Vec3Forward().Neg(), Vec3Backward())
	assert.Equal(t, Vec3Left().Neg(), Vec3Right())
	assert.Equal(t, Vec3Up().Neg(), Vec3Down())
	assert.Equal(t, Vec3Right().Cross(Vec3Up()), Vec3Backward())
}

func TestColorVec4(t *testing.T) {
	assert.Equal(t, Vec4{1, 1, 1, 1}, White.Vec4())
	assert.Equal(t, Vec4{0, 0, 0, 0}, Transparent.Vec4())

	n := FlatNormal.Vec4()
	assert.InDelta(t, 0.502, n[0], 1e-3)
	assert.InDelta(t, 1, n[2], 1e-6)
}
