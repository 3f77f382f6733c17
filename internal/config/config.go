// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/shaderbasics/internal/engine/camera"
	"github.com/Faultbox/shaderbasics/internal/engine/control"
	"github.com/Faultbox/shaderbasics/internal/engine/material"
	"github.com/Faultbox/shaderbasics/pkg/math"
)

// Config holds all application settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Material MaterialConfig `yaml:"material"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// CameraConfig holds the initial camera and its control speeds.
type CameraConfig struct {
	FieldOfView    float32    `yaml:"fov"` // radians
	NearClip       float32    `yaml:"near"`
	FarClip        float32    `yaml:"far"`
	Position       [3]float32 `yaml:"position,flow"`
	TranslateSpeed float32    `yaml:"translate_speed"` // units per 1/60 s
	RotateSpeed    float32    `yaml:"rotate_speed"`    // radians per 1/60 s
	ClearColor     [4]uint8   `yaml:"clear_color,flow"`
}

// RenderConfig holds the initial rasterizer toggles.
type RenderConfig struct {
	Wireframe  bool `yaml:"wireframe"`
	CullingOff bool `yaml:"culling_off"`
}

// MaterialConfig holds the lighting parameters shared by every object.
type MaterialConfig struct {
	LightDirection [3]float32 `yaml:"light_direction,flow"`
	AmbientColor   [4]uint8   `yaml:"ambient_color,flow"`
	AmbientPower   float32    `yaml:"ambient_power"`
	UVMultiplier   float32    `yaml:"uv_multiplier"`
	// RawTangents keeps accumulated tangents unnormalized.
	RawTangents bool `yaml:"raw_tangents"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root string `yaml:"root"`
	// Program is a program descriptor under Root. Empty selects the built-in program.
	Program string `yaml:"program"`
	// Textures maps object names to diffuse texture paths under Root.
	Textures map[string]string `yaml:"textures"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Geometry and Shader Basics",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FieldOfView:    camera.DefaultFieldOfView,
			NearClip:       camera.DefaultNearClip,
			FarClip:        camera.DefaultFarClip,
			Position:       [3]float32{0, 0, 10},
			TranslateSpeed: control.DefaultTranslateSpeed,
			RotateSpeed:    control.DefaultRotateSpeed,
			ClearColor:     colorArray(math.CornflowerBlue),
		},
		Material: MaterialConfig{
			LightDirection: material.DefaultLightDirection.Array(),
			AmbientColor:   colorArray(material.DefaultAmbientColor),
			AmbientPower:   material.DefaultAmbientPower,
			UVMultiplier:   material.DefaultUVMultiplier,
		},
		Assets: AssetsConfig{
			Root: "assets",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: %dx%d: %w", c.Window.Width, c.Window.Height, camera.ErrInvalidViewport))
	}
	if err := camera.ValidateFrustum(c.Camera.FieldOfView, c.Camera.NearClip, c.Camera.FarClip); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	if c.Camera.TranslateSpeed < 0 || c.Camera.RotateSpeed < 0 {
		errs = append(errs, errors.New("camera: speeds must not be negative"))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, errors.New("window: fps_limit must not be negative"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// CameraPosition returns the configured camera position.
func (c *Config) CameraPosition() math.Vec3 {
	p := c.Camera.Position
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// ClearColor returns the configured clear colour.
func (c *Config) ClearColor() math.Color { return arrayColor(c.Camera.ClearColor) }

// NewMaterial returns a material with the configured lighting and no textures.
func (c *Config) NewMaterial() *material.Material {
	m := material.Default()
	d := c.Material.LightDirection
	m.LightDirection = math.Vec3{X: d[0], Y: d[1], Z: d[2]}
	m.AmbientColor = arrayColor(c.Material.AmbientColor)
	m.AmbientPower = c.Material.AmbientPower
	m.UVMultiplier = c.Material.UVMultiplier
	return m
}

func colorArray(c math.Color) [4]uint8 { return [4]uint8{c.R, c.G, c.B, c.A} }

func arrayColor(a [4]uint8) math.Color { return math.Color{R: a[0], G: a[1], B: a[2], A: a[3]} }
