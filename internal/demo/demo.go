// Package demo assembles the content of the sample: the camera, the three
// primitives and the built-in shader program.
package demo

import (
	"embed"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderbasics/internal/assets"
	"github.com/Faultbox/shaderbasics/internal/config"
	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/internal/engine/geometry"
	"github.com/Faultbox/shaderbasics/internal/engine/gfx"
	"github.com/Faultbox/shaderbasics/internal/engine/mesh"
	"github.com/Faultbox/shaderbasics/internal/engine/scene"
	"github.com/Faultbox/shaderbasics/internal/logger"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

//go:embed shaders
var builtin embed.FS

// DefaultProgram is the descriptor of the built-in program.
const DefaultProgram = "shaders/basic.yaml"

// Placement positions one primitive in the scene.
type Placement struct {
	Name     string
	Build    func() *mesh.Data
	Position math.Vec3
}

// Placements are the scene objects in draw order. F3, F4 and F5 toggle them.
var Placements = []Placement{
	{Name: "triangle", Build: mesh.Triangle, Position: math.Vec3{X: -0.5}},
	{Name: "quad", Build: mesh.Quad, Position: math.Vec3{X: 0.5}},
	{Name: "cube", Build: mesh.Cube, Position: math.Vec3{Z: -5}},
}

// NewCamera creates the camera described by cfg for a width x height target.
func NewCamera(cfg *config.Config, width, height int) (*camera.Camera, error) {
	cam, err := camera.New(width, height)
	if err != nil {
		return nil, err
	}
	if err := cam.SetFrustum(cfg.Camera.FieldOfView, cfg.Camera.NearClip, cfg.Camera.FarClip); err != nil {
		return nil, err
	}
	cam.Transform.Position = cfg.CameraPosition()
	cam.ClearColor = cfg.ClearColor()
	return cam, nil
}

// NewScene builds the unloaded sample scene viewed through viewer.
func NewScene(cfg *config.Config, viewer geometry.Viewer) *scene.Scene {
	opts := geometry.Options{
		AutoNormals:  true,
		AutoTangents: true,
		Tangents:     mesh.TangentOptions{Raw: cfg.Material.RawTangents},
	}
	s := scene.New()
	for _, p := range Placements {
		o := geometry.New(p.Name, p.Build(), viewer, opts)
		o.Transform.Position = p.Position
		o.Material = cfg.NewMaterial()
		s.Add(o)
	}
	return s
}

// NewAssets creates an asset manager that reads root on disk first and falls
// back to the built-in files. A missing root is not an error.
func NewAssets(backend assets.Backend, root string) *assets.Manager {
	m := assets.NewManager(backend)
	m.AddSource(builtin)
	if root == "" {
		return m
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		logger.Named("demo").Debug("asset root not found, using built-in assets", zap.String("root", root))
		return m
	}
	m.AddSource(os.DirFS(root))
	return m
}

// TextureLoader loads a texture by asset path.
type TextureLoader interface {
	LoadTexture(name string) (gfx.Texture, error)
}

// ApplyTextures sets the diffuse texture of each named object. Names that match
// no object are skipped with a warning.
func ApplyTextures(s *scene.Scene, loader TextureLoader, textures map[string]string) error {
	log := logger.Named("demo")
	for name, path := range textures {
		o, ok := s.Find(name)
		if !ok {
			log.Warn("texture for unknown object", zap.String("object", name), zap.String("path", path))
			continue
		}
		tex, err := loader.LoadTexture(path)
		if err != nil {
			return fmt.Errorf("texture for %s: %w", name, err)
		}
		o.Material.Textures.Diffuse = tex
	}
	return nil
}

// ProgramPath returns the configured program descriptor or the built-in one.
func ProgramPath(cfg *config.Config) string {
	if cfg.Assets.Program != "" {
		return cfg.Assets.Program
	}
	return DefaultProgram
}

// Load loads every object of s with the program at ProgramPath(cfg).
func Load(cfg *config.Config, s *scene.Scene, m *assets.Manager, dev gfx.Device) (gfx.Program, error) {
	program, err := m.LoadProgram(ProgramPath(cfg))
	if err != nil {
		return nil, err
	}
	if err := ApplyTextures(s, m, cfg.Assets.Textures); err != nil {
		return nil, err
	}
	if err := s.Load(dev, program); err != nil {
		return nil, err
	}
	return program, nil
}
