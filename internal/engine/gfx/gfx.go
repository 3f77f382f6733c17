// Package gfx declares the backend-neutral GPU handles and interfaces the engine draws with.
package gfx

import (
	"github.com/Faultbox/shaderbasics/internal/engine/mesh"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// TextureKind distinguishes 2D textures from cube maps.
type TextureKind int

// Texture kinds.
const (
	Texture2D TextureKind = iota
	TextureCube
)

func (k TextureKind) String() string {
	if k == TextureCube {
		return "cube"
	}
	return "2d"
}

// Texture is an opaque texture handle. The zero value is "no texture".
type Texture struct {
	ID   uint32
	Kind TextureKind
}

// Valid reports whether the handle refers to a texture.
func (t Texture) Valid() bool { return t.ID != 0 }

// Location is a program parameter slot index.
type Location int32

// Program is a linked shader program.
//
// Locate is meant to be called when the program is resolved, not per frame.
// Set* calls act on the program and require Use to have been called first.
type Program interface {
	Locate(name string) (Location, bool)
	Use()
	SetMat4(loc Location, m math.Mat4)
	SetVec3(loc Location, v math.Vec3)
	SetVec4(loc Location, v math.Vec4)
	SetFloat(loc Location, f float32)
	SetTexture(loc Location, unit int, tex Texture)
	Delete()
}

// RenderState is the rasterizer configuration for a draw call.
type RenderState struct {
	Wireframe  bool
	CullingOff bool
}

// Buffers identifies uploaded vertex and index data.
type Buffers struct {
	VertexArray  uint32
	VertexBuffer uint32
	IndexBuffer  uint32
	IndexCount   int
}

// Valid reports whether the buffers were created.
func (b Buffers) Valid() bool { return b.VertexArray != 0 }

// Device creates GPU resources and issues draw calls.
type Device interface {
	NewBuffers(vertices []float32, layout mesh.Layout, indices []uint32) (Buffers, error)
	DeleteBuffers(b Buffers)
	// DrawIndexed draws b as a triangle list with the program last made current.
	DrawIndexed(b Buffers, state RenderState)
	// NewSwatch creates a 1x1 texture (every face for cube maps) of colour c.
	NewSwatch(kind TextureKind, c math.Color) (Texture, error)
	DeleteTexture(t Texture)
}
