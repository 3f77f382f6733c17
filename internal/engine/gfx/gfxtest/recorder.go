// Package gfxtest provides a recording gfx.Device and gfx.Program for tests.
package gfxtest

import (
	"errors"
	"maps"
	"slices"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/mesh"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected failure")

// TextureParam is the recorded value of a texture parameter.
type TextureParam struct {
	Unit    int
	Texture gfx.Texture
}

// DrawCall is one recorded DrawIndexed call with the state it would have rendered with.
type DrawCall struct {
	Program  string
	Buffers  gfx.Buffers
	State    gfx.RenderState
	Vertices []float32
	Layout   mesh.Layout
	Indices  []uint32
	Params   map[string]any
}

// Recorder is an in-memory device. It is not safe for concurrent use.
type Recorder struct {
	Draws    []DrawCall
	Swatches map[gfx.Texture]math.Color
	Deleted  []gfx.Texture

	// FailBuffers makes NewBuffers return ErrInjected.
	FailBuffers bool

	nextID  uint32
	current *Program
	uploads map[uint32]upload
}

type upload struct {
	vertices []float32
	layout   mesh.Layout
	indices  []uint32
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Swatches: make(map[gfx.Texture]math.Color),
		uploads:  make(map[uint32]upload),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

// NewBuffers implements gfx.Device.
func (r *Recorder) NewBuffers(vertices []float32, layout mesh.Layout, indices []uint32) (gfx.Buffers, error) {
	if r.FailBuffers {
		return gfx.Buffers{}, ErrInjected
	}
	b := gfx.Buffers{VertexArray: r.id(), VertexBuffer: r.id(), IndexBuffer: r.id(), IndexCount: len(indices)}
	r.uploads[b.VertexArray] = upload{
		vertices: slices.Clone(vertices),
		layout:   layout,
		indices:  slices.Clone(indices),
	}
	return b, nil
}

// DeleteBuffers implements gfx.Device.
func (r *Recorder) DeleteBuffers(b gfx.Buffers) {
	delete(r.uploads, b.VertexArray)
}

// Live returns the number of buffer sets not yet deleted.
func (r *Recorder) Live() int { return len(r.uploads) }

// DrawIndexed implements gfx.Device.
func (r *Recorder) DrawIndexed(b gfx.Buffers, state gfx.RenderState) {
	u := r.uploads[b.VertexArray]
	call := DrawCall{
		Buffers:  b,
		State:    state,
		Vertices: u.vertices,
		Layout:   u.layout,
		Indices:  u.indices,
	}
	if r.current != nil {
		call.Program = r.current.Name
		call.Params = maps.Clone(r.current.Values)
	}
	r.Draws = append(r.Draws, call)
}

// NewSwatch implements gfx.Device.
func (r *Recorder) NewSwatch(kind gfx.TextureKind, c math.Color) (gfx.Texture, error) {
	t := gfx.Texture{ID: r.id(), Kind: kind}
	r.Swatches[t] = c
	return t, nil
}

// DeleteTexture implements gfx.Device.
func (r *Recorder) DeleteTexture(t gfx.Texture) {
	r.Deleted = append(r.Deleted, t)
	delete(r.Swatches, t)
}

// Texture allocates a handle standing in for a loaded asset.
func (r *Recorder) Texture(kind gfx.TextureKind) gfx.Texture {
	return gfx.Texture{ID: r.id(), Kind: kind}
}

// Program is a recording gfx.Program that declares a fixed set of parameter names.
type Program struct {
	Name string

	// Values holds the last value written to each declared parameter.
	Values map[string]any
	// Writes counts Set* calls per parameter name.
	Writes map[string]int
	// Lookups counts Locate calls per name, declared or not.
	Lookups map[string]int
	Deleted bool

	rec   *Recorder
	names []string
}

// NewProgram creates a program declaring exactly the given parameter names.
func (r *Recorder) NewProgram(name string, params ...string) *Program {
	return &Program{
		Name:    name,
		Values:  make(map[string]any),
		Writes:  make(map[string]int),
		Lookups: make(map[string]int),
		rec:     r,
		names:   params,
	}
}

// Locate implements gfx.Program.
func (p *Program) Locate(name string) (gfx.Location, bool) {
	p.Lookups[name]++
	i := slices.Index(p.names, name)
	if i < 0 {
		return -1, false
	}
	return gfx.Location(i), true
}

// Use implements gfx.Program.
func (p *Program) Use() { p.rec.current = p }

func (p *Program) set(loc gfx.Location, v any) {
	if p.rec.current != p {
		panic("gfxtest: parameter set on a program that is not in use")
	}
	name := p.names[loc]
	p.Values[name] = v
	p.Writes[name]++
}

// SetMat4 implements gfx.Program.
func (p *Program) SetMat4(loc gfx.Location, m math.Mat4) { p.set(loc, m) }

// SetVec3 implements gfx.Program.
func (p *Program) SetVec3(loc gfx.Location, v math.Vec3) { p.set(loc, v) }

// SetVec4 implements gfx.Program.
func (p *Program) SetVec4(loc gfx.Location, v math.Vec4) { p.set(loc, v) }

// SetFloat implements gfx.Program.
func (p *Program) SetFloat(loc gfx.Location, f float32) { p.set(loc, f) }

// SetTexture implements gfx.Program.
func (p *Program) SetTexture(loc gfx.Location, unit int, tex gfx.Texture) {
	p.set(loc, TextureParam{Unit: unit, Texture: tex})
}

// Delete implements gfx.Program.
func (p *Program) Delete() { p.Deleted = true }
