package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.False(t, cfg.Window.Fullscreen)
	assert.True(t, cfg.Window.VSync)

	assert.Equal(t, float32(0.7583982), cfg.Camera.FieldOfView)
	assert.Equal(t, float32(0.01), cfg.Camera.NearClip)
	assert.Equal(t, float32(10000), cfg.Camera.FarClip)
	assert.Equal(t, math.Vec3{Z: 10}, cfg.CameraPosition())
	assert.Equal(t, math.CornflowerBlue, cfg.ClearColor())
	assert.Equal(t, float32(0.05), cfg.Camera.TranslateSpeed)
	assert.Equal(t, float32(0.01), cfg.Camera.RotateSpeed)

	assert.False(t, cfg.Render.Wireframe)
	assert.False(t, cfg.Render.CullingOff)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)

	assert.NoError(t, cfg.Validate())
}

func TestNewMaterial(t *testing.T) {
	cfg := Default()
	m := cfg.NewMaterial()
	assert.Equal(t, math.Vec3{X: -0.5, Y: 0.5, Z: 0.5}, m.LightDirection)
	assert.Equal(t, math.CornflowerBlue, m.AmbientColor)
	assert.Equal(t, float32(0.25), m.AmbientPower)
	assert.Equal(t, float32(1), m.UVMultiplier)

	cfg.Material.UVMultiplier = 4
	cfg.Material.AmbientColor = [4]uint8{1, 2, 3, 4}
	m = cfg.NewMaterial()
	assert.Equal(t, float32(4), m.UVMultiplier)
	assert.Equal(t, math.Color{R: 1, G: 2, B: 3, A: 4}, m.AmbientColor)
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  title: "demo"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

camera:
  fov: 1.0
  near: 0.1
  far: 500
  position: [1, 2, 3]
  translate_speed: 0.1
  clear_color: [0, 0, 0, 255]

render:
  wireframe: true
  culling_off: true

material:
  uv_multiplier: 2
  raw_tangents: true

assets:
  root: "data"
  program: "shaders/basic.yaml"
  textures:
    cube: "textures/crate.png"

logging:
  level: "debug"
  log_file: "demo.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.True(t, cfg.Window.Fullscreen)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, 144, cfg.Window.FPSLimit)

	assert.Equal(t, float32(1), cfg.Camera.FieldOfView)
	assert.Equal(t, float32(500), cfg.Camera.FarClip)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, cfg.CameraPosition())
	assert.Equal(t, math.Black, cfg.ClearColor())
	// Unset keys keep their defaults.
	assert.Equal(t, float32(0.01), cfg.Camera.RotateSpeed)

	assert.True(t, cfg.Render.Wireframe)
	assert.True(t, cfg.Render.CullingOff)
	assert.Equal(t, float32(2), cfg.Material.UVMultiplier)
	assert.True(t, cfg.Material.RawTangents)
	assert.Equal(t, float32(0.25), cfg.Material.AmbientPower)

	assert.Equal(t, "data", cfg.Assets.Root)
	assert.Equal(t, "shaders/basic.yaml", cfg.Assets.Program)
	assert.Equal(t, map[string]string{"cube": "textures/crate.png"}, cfg.Assets.Textures)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "demo.log", cfg.Logging.LogFile)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))
	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestLoadFromFileWrongArrayLength(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "short.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("camera:\n  position: [1, 2]\n"), 0644))
	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestLoadFromFileMissing(t *testing.T) {
	assert.Error(t, loadFromFile(Default(), "/nonexistent/path/config.yaml"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, camera.ErrInvalidViewport},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, camera.ErrInvalidViewport},
		{"far before near", func(c *Config) { c.Camera.FarClip = 0.001 }, camera.ErrInvalidFrustum},
		{"zero near", func(c *Config) { c.Camera.NearClip = 0 }, camera.ErrInvalidFrustum},
		{"flat fov", func(c *Config) { c.Camera.FieldOfView = 0 }, camera.ErrInvalidFrustum},
		{"negative speed", func(c *Config) { c.Camera.RotateSpeed = -1 }, nil},
		{"negative fps", func(c *Config) { c.Window.FPSLimit = -5 }, nil},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Camera.NearClip = -1
	err := cfg.Validate()
	assert.ErrorIs(t, err, camera.ErrInvalidViewport)
	assert.ErrorIs(t, err, camera.ErrInvalidFrustum)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Window.Title = "saved"
	cfg.Camera.Position = [3]float32{4, 5, 6}
	cfg.Assets.Textures = map[string]string{"quad": "q.png"}
	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	require.NoError(t, loadFromFile(loaded, path))
	assert.Equal(t, cfg, loaded)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should return absolute path, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile("config.yaml", []byte("window:\n  width: 800\n"), 0644))
	assert.NotEmpty(t, findConfigFile())
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:     "debug flag",
			setup:    func() { *flagDebug = true },
			verify:   func(t *testing.T, cfg *Config) { assert.Equal(t, "debug", cfg.Logging.Level) },
			teardown: func() { *flagDebug = false },
		},
		{
			name:     "windowed flag",
			setup:    func() { *flagWindowed = true },
			verify:   func(t *testing.T, cfg *Config) { assert.False(t, cfg.Window.Fullscreen) },
			teardown: func() { *flagWindowed = false },
		},
		{
			name:     "fullscreen flag",
			setup:    func() { *flagFullscreen = true },
			verify:   func(t *testing.T, cfg *Config) { assert.True(t, cfg.Window.Fullscreen) },
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2560, cfg.Window.Width)
				assert.Equal(t, 1440, cfg.Window.Height)
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:     "wireframe flag",
			setup:    func() { *flagWireframe = true },
			verify:   func(t *testing.T, cfg *Config) { assert.True(t, cfg.Render.Wireframe) },
			teardown: func() { *flagWireframe = false },
		},
		{
			name:     "assets flag",
			setup:    func() { *flagAssets = "/srv/assets" },
			verify:   func(t *testing.T, cfg *Config) { assert.Equal(t, "/srv/assets", cfg.Assets.Root) },
			teardown: func() { *flagAssets = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Window.Width, "flag overrides file")
	assert.Equal(t, 900, cfg.Window.Height, "file overrides default")
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("camera:\n  near: 20\n  far: 10\n"), 0644))

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	assert.ErrorIs(t, err, camera.ErrInvalidFrustum)
}
