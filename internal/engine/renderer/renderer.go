// Package renderer is the OpenGL implementation of gfx.Device.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/mesh"
	"github.com/Faultbox/shaderbasics/internal/engine/shader"
	"github.com/Faultbox/shaderbasics/internal/engine/texture"
	"github.com/Faultbox/shaderbasics/internal/logger"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state of the window's context.
type Renderer struct {
	config Config
	log    *zap.Logger

	// last applied rasterizer state, to skip redundant GL calls
	state   gfx.RenderState
	stateOK bool
}

// New initializes OpenGL and the default pipeline state.
// Must be called after the GL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, log: logger.Named("renderer")}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close releases renderer state.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin(clear math.Color) {
	c := clear.Vec4()
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// NewBuffers implements gfx.Device.
func (r *Renderer) NewBuffers(vertices []float32, layout mesh.Layout, indices []uint32) (gfx.Buffers, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return gfx.Buffers{}, errors.New("renderer: empty vertex or index data")
	}

	var b gfx.Buffers
	gl.GenVertexArrays(1, &b.VertexArray)
	gl.BindVertexArray(b.VertexArray)

	gl.GenBuffers(1, &b.VertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(layout.StrideBytes())
	for _, al := range layout.Attributes {
		loc := uint32(al.Attribute)
		gl.VertexAttribPointerWithOffset(loc, int32(al.Components), gl.FLOAT, false, stride, uintptr(al.Offset*4))
		gl.EnableVertexAttribArray(loc)
	}

	gl.GenBuffers(1, &b.IndexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	b.IndexCount = len(indices)

	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.DeleteBuffers(b)
		return gfx.Buffers{}, fmt.Errorf("renderer: buffer upload failed: GL error 0x%x", code)
	}
	return b, nil
}

// DeleteBuffers implements gfx.Device.
func (r *Renderer) DeleteBuffers(b gfx.Buffers) {
	if b.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &b.IndexBuffer)
	}
	if b.VertexBuffer != 0 {
		gl.DeleteBuffers(1, &b.VertexBuffer)
	}
	if b.VertexArray != 0 {
		gl.DeleteVertexArrays(1, &b.VertexArray)
	}
}

func (r *Renderer) applyState(s gfx.RenderState) {
	if r.stateOK && r.state == s {
		return
	}
	if s.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	if s.CullingOff {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}
	r.state, r.stateOK = s, true
}

// DrawIndexed implements gfx.Device.
func (r *Renderer) DrawIndexed(b gfx.Buffers, state gfx.RenderState) {
	r.applyState(state)
	gl.BindVertexArray(b.VertexArray)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(b.IndexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// NewSwatch implements gfx.Device.
func (r *Renderer) NewSwatch(kind gfx.TextureKind, c math.Color) (gfx.Texture, error) {
	img := texture.Swatch(c)
	if kind == gfx.TextureCube {
		return r.uploadCube(img)
	}
	return r.UploadTexture(img, false)
}

// UploadTexture creates a 2D texture from img, flipping it so the top row lands at v = 1.
func (r *Renderer) UploadTexture(img *image.RGBA, mipmaps bool) (gfx.Texture, error) {
	if img.Bounds().Empty() {
		return gfx.Texture{}, errors.New("renderer: empty texture")
	}
	flipped := texture.FlipVertical(img)
	w, h := int32(flipped.Bounds().Dx()), int32(flipped.Bounds().Dy())

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&flipped.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return gfx.Texture{ID: id, Kind: gfx.Texture2D}, nil
}

// uploadCube creates a cube map with img on every face.
func (r *Renderer) uploadCube(img *image.RGBA) (gfx.Texture, error) {
	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for face := uint32(0); face < 6; face++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return gfx.Texture{ID: id, Kind: gfx.TextureCube}, nil
}

// DeleteTexture implements gfx.Device.
func (r *Renderer) DeleteTexture(t gfx.Texture) {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
	}
}

// NewProgram compiles and links a GL program.
func (r *Renderer) NewProgram(vertexSrc, fragmentSrc string) (gfx.Program, error) {
	p, err := shader.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	r.log.Debug("program linked", zap.Uint32("id", p.ID()), zap.Int("uniforms", p.Uniforms()))
	return p, nil
}
