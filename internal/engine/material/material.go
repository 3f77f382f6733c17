package material

import (
	"fmt"

	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// Default lighting parameters.
var (
	DefaultLightDirection = math.Vec3{X: -0.5, Y: 0.5, Z: 0.5}
	DefaultAmbientColor   = math.CornflowerBlue
)

const (
	DefaultAmbientPower = 0.25
	DefaultUVMultiplier = 1
)

// Textures holds the sampler inputs of a material.
type Textures struct {
	Diffuse     gfx.Texture
	Normal      gfx.Texture
	Occlusion   gfx.Texture
	Specular    gfx.Texture
	Height      gfx.Texture
	Environment gfx.Texture
}

// Material is the per-object semantic state that is not derived from transforms.
type Material struct {
	Textures       Textures
	LightDirection math.Vec3
	AmbientColor   math.Color
	AmbientPower   float32
	UVMultiplier   float32

	owned []gfx.Texture
}

// Default returns a material with the default lighting and no textures.
func Default() *Material {
	return &Material{
		LightDirection: DefaultLightDirection,
		AmbientColor:   DefaultAmbientColor,
		AmbientPower:   DefaultAmbientPower,
		UVMultiplier:   DefaultUVMultiplier,
	}
}

type fallback struct {
	tex   *gfx.Texture
	kind  gfx.TextureKind
	color math.Color
}

func (m *Material) fallbacks() []fallback {
	return []fallback{
		{&m.Textures.Diffuse, gfx.Texture2D, math.White},
		{&m.Textures.Normal, gfx.Texture2D, math.FlatNormal},
		{&m.Textures.Occlusion, gfx.Texture2D, math.White},
		{&m.Textures.Specular, gfx.Texture2D, math.Black},
		{&m.Textures.Height, gfx.Texture2D, math.Transparent},
		{&m.Textures.Environment, gfx.TextureCube, math.Black},
	}
}

// EnsureFallbacks fills every unset texture with a 1x1 swatch so no sampler is ever
// bound to an empty handle. Swatches created here are owned by m and freed by Release.
func (m *Material) EnsureFallbacks(dev gfx.Device) error {
	for _, f := range m.fallbacks() {
		if f.tex.Valid() {
			continue
		}
		t, err := dev.NewSwatch(f.kind, f.color)
		if err != nil {
			m.Release(dev)
			return fmt.Errorf("create %s fallback swatch: %w", f.kind, err)
		}
		*f.tex = t
		m.owned = append(m.owned, t)
	}
	return nil
}

// Release deletes the swatches created by EnsureFallbacks and clears their handles.
// Textures supplied by the caller are left alone.
func (m *Material) Release(dev gfx.Device) {
	for _, f := range m.fallbacks() {
		for _, o := range m.owned {
			if *f.tex == o {
				*f.tex = gfx.Texture{}
			}
		}
	}
	for _, o := range m.owned {
		dev.DeleteTexture(o)
	}
	m.owned = nil
}

// texture returns the handle bound to a sampler slot.
func (m *Material) texture(s Slot) gfx.Texture {
	switch s {
	case TextureMap:
		return m.Textures.Diffuse
	case NormalMap:
		return m.Textures.Normal
	case OcclusionMap:
		return m.Textures.Occlusion
	case SpecularMap:
		return m.Textures.Specular
	case HeightMap:
		return m.Textures.Height
	case EnvironmentMap:
		return m.Textures.Environment
	}
	return gfx.Texture{}
}
